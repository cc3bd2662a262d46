package repository

import (
	"context"
	"sync"
	"time"

	"github.com/top4/calldrivers/internal/models"
)

// MemoryChallengeStore keeps challenges in memory. Used by tests and
// single-process local development; production uses Redis.
type MemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]*memoryChallenge
}

type memoryChallenge struct {
	challenge models.OTPChallenge
	expiresAt time.Time
}

func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		challenges: make(map[string]*memoryChallenge),
	}
}

func (s *MemoryChallengeStore) Put(ctx context.Context, mobile string, challenge models.OTPChallenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[mobile] = &memoryChallenge{
		challenge: challenge,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryChallengeStore) Consume(ctx context.Context, mobile, codeHash string, maxAttempts int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.challenges[mobile]
	if !ok {
		return false, nil
	}

	if time.Now().After(entry.expiresAt) {
		delete(s.challenges, mobile)
		return false, nil
	}

	if entry.challenge.CodeHash == codeHash {
		delete(s.challenges, mobile)
		return true, nil
	}

	entry.challenge.Attempts++
	if entry.challenge.Attempts >= maxAttempts {
		delete(s.challenges, mobile)
	}
	return false, nil
}
