package session

import (
	"context"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

type memorySession struct {
	accountID string
	expiresAt time.Time
}

// MemoryStore is the single-process Store used with the memory database driver.
type MemoryStore struct {
	mutex    sync.Mutex
	sessions map[string]memorySession
	signer   signer
	ttl      time.Duration

	NewSessionID func() string
	Now          func() time.Time
}

func NewMemoryStore(secret string, ttl time.Duration) *MemoryStore {
	s := newSigner(secret, ttl)
	return &MemoryStore{
		sessions:     make(map[string]memorySession),
		signer:       s,
		ttl:          s.ttl,
		NewSessionID: newSessionID,
		Now:          time.Now,
	}
}

func (ms *MemoryStore) Create(_ context.Context, accountID string) (string, error) {
	sessionID := ms.NewSessionID()
	now := ms.Now()
	token, err := ms.signer.sign(accountID, sessionID, now)
	if err != nil {
		return "", err
	}

	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.sessions[sessionID] = memorySession{accountID: accountID, expiresAt: now.Add(ms.ttl)}
	return token, nil
}

func (ms *MemoryStore) Validate(_ context.Context, token string) (string, error) {
	c, err := ms.signer.parse(token)
	if err != nil {
		return "", err
	}

	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	s, ok := ms.sessions[c.ID]
	if !ok || s.accountID != c.AccountID {
		return "", ErrInvalidSession
	}
	if ms.Now().After(s.expiresAt) {
		delete(ms.sessions, c.ID)
		return "", ErrInvalidSession
	}
	return s.accountID, nil
}

func (ms *MemoryStore) Delete(_ context.Context, token string) error {
	c, err := ms.signer.parse(token)
	if err != nil {
		return err
	}

	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	if _, ok := ms.sessions[c.ID]; !ok {
		return ErrInvalidSession
	}
	delete(ms.sessions, c.ID)
	return nil
}
