package appstate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"nclx/gymnotetaker/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type userSourceFunc func(ctx context.Context) (*domain.User, error)

func (f userSourceFunc) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	return f(ctx)
}

func TestInit(t *testing.T) {
	user := &domain.User{AccountID: "acc-1", Username: "lifter"}

	s := New()
	require.NoError(t, s.Init(context.Background(), userSourceFunc(func(context.Context) (*domain.User, error) {
		return user, nil
	})))
	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, "lifter", s.User().Username)

	require.NoError(t, s.Init(context.Background(), userSourceFunc(func(context.Context) (*domain.User, error) {
		return nil, nil
	})))
	assert.False(t, s.IsLoggedIn())
	assert.Nil(t, s.User())

	s.SetLoggedIn(user)
	boom := errors.New("boom")
	err := s.Init(context.Background(), userSourceFunc(func(context.Context) (*domain.User, error) {
		return nil, boom
	}))
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.IsLoggedIn())
}

func TestUserIsCopied(t *testing.T) {
	s := New()
	s.SetLoggedIn(&domain.User{Username: "a"})

	u := s.User()
	u.Username = "changed"
	assert.Equal(t, "a", s.User().Username)
}

func TestRun(t *testing.T) {
	s := New(WithTick(5 * time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return s.Elapsed() >= 3 }, time.Second, time.Millisecond)
	cancel()
	<-done

	stopped := s.Elapsed()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, s.Elapsed(), "no ticks after cancel")
}

func TestConsumeTrigger(t *testing.T) {
	s := New()
	assert.False(t, s.ConsumeTrigger())

	s.TriggerTimer()
	s.TriggerTimer()
	assert.True(t, s.ConsumeTrigger())
	assert.False(t, s.ConsumeTrigger())
}

func TestConsumeTrigger_Concurrent(t *testing.T) {
	s := New()
	s.TriggerTimer()

	var wg sync.WaitGroup
	var mu sync.Mutex
	consumed := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.ConsumeTrigger() {
				mu.Lock()
				consumed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, consumed)
}

func TestWeeks(t *testing.T) {
	s := New()
	assert.Equal(t, 1, s.WeekFor("w1"))

	s.SetWeek("w1", 4)
	assert.Equal(t, 4, s.WeekFor("w1"))
	assert.Equal(t, 1, s.WeekFor("w2"))

	s.SetWeek("w2", 0)
	assert.Equal(t, 1, s.WeekFor("w2"))
}
