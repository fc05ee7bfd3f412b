package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestRedisStore_CreateValidateDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := NewRedisStore(db, testSecret, time.Hour)
	store.NewSessionID = func() string { return "sess-1" }

	key := sessionKeyPrefix + "sess-1"
	mock.ExpectSet(key, "acc-1", time.Hour).SetVal("OK")
	token, err := store.Create(context.Background(), "acc-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	mock.ExpectGet(key).SetVal("acc-1")
	accountID, err := store.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", accountID)

	mock.ExpectDel(key).SetVal(1)
	require.NoError(t, store.Delete(context.Background(), token))

	mock.ExpectGet(key).RedisNil()
	_, err = store.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	mock.ExpectDel(key).SetVal(0)
	assert.ErrorIs(t, store.Delete(context.Background(), token), ErrInvalidSession)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_CreateFails(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := NewRedisStore(db, testSecret, time.Hour)
	store.NewSessionID = func() string { return "sess-2" }

	mock.ExpectSet(sessionKeyPrefix+"sess-2", "acc-1", time.Hour).SetErr(errors.New("connection refused"))
	token, err := store.Create(context.Background(), "acc-1")
	assert.Error(t, err)
	assert.Empty(t, token)
}

func TestRedisStore_RejectsForeignTokens(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := NewRedisStore(db, testSecret, time.Hour)
	other := NewMemoryStore("another-secret", time.Hour)
	foreign, err := other.Create(context.Background(), "acc-1")
	require.NoError(t, err)

	_, err = store.Validate(context.Background(), foreign)
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = store.Validate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)

	// no redis round trip for tokens that fail verification
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testSecret, time.Hour)

	token, err := store.Create(ctx, "acc-1")
	require.NoError(t, err)

	accountID, err := store.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", accountID)

	require.NoError(t, store.Delete(ctx, token))
	_, err = store.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.ErrorIs(t, store.Delete(ctx, token), ErrInvalidSession)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testSecret, time.Hour)
	issued := time.Now()
	store.Now = func() time.Time { return issued }

	token, err := store.Create(ctx, "acc-1")
	require.NoError(t, err)

	store.Now = func() time.Time { return issued.Add(30 * time.Minute) }
	_, err = store.Validate(ctx, token)
	require.NoError(t, err)

	store.Now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = store.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestNewSigner_EmptySecretPanics(t *testing.T) {
	assert.Panics(t, func() { NewMemoryStore("", time.Hour) })
}
