package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/models"
)

// ChallengeStore holds at most one pending OTP challenge per mobile
// number. Put overwrites any pending challenge; Consume performs the
// check-then-consume step atomically so two concurrent verifications
// with the correct code can never both succeed.
type ChallengeStore interface {
	Put(ctx context.Context, mobile string, challenge models.OTPChallenge, ttl time.Duration) error
	// Consume compares codeHash against the pending challenge. A match
	// deletes the challenge and returns true. A mismatch increments the
	// attempt counter, deleting the challenge once maxAttempts is
	// reached, and returns false. A missing or expired challenge
	// returns false.
	Consume(ctx context.Context, mobile, codeHash string, maxAttempts int) (bool, error)
}

// consumeScript compares and deletes inside Redis. HINCRBY on a key
// deleted between HGET and HINCRBY cannot happen because scripts run
// atomically.
var consumeScript = redis.NewScript(`
local hash = redis.call('HGET', KEYS[1], 'code_hash')
if not hash then
  return -1
end
if hash == ARGV[1] then
  redis.call('DEL', KEYS[1])
  return 1
end
local attempts = redis.call('HINCRBY', KEYS[1], 'attempts', 1)
if attempts >= tonumber(ARGV[2]) then
  redis.call('DEL', KEYS[1])
end
return 0
`)

type RedisChallengeStore struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewRedisChallengeStore(client *redis.Client, logger *logrus.Logger) *RedisChallengeStore {
	return &RedisChallengeStore{client: client, logger: logger}
}

func challengeKey(mobile string) string {
	return fmt.Sprintf("otp:%s", mobile)
}

func (s *RedisChallengeStore) Put(ctx context.Context, mobile string, challenge models.OTPChallenge, ttl time.Duration) error {
	key := challengeKey(mobile)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"code_hash", challenge.CodeHash,
		"attempts", challenge.Attempts,
		"created_at", challenge.CreatedAt.Format(time.RFC3339),
	)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to store OTP challenge in Redis")
		return fmt.Errorf("failed to store OTP challenge: %w", err)
	}

	return nil
}

func (s *RedisChallengeStore) Consume(ctx context.Context, mobile, codeHash string, maxAttempts int) (bool, error) {
	res, err := consumeScript.Run(ctx, s.client, []string{challengeKey(mobile)}, codeHash, maxAttempts).Int()
	if err != nil {
		s.logger.WithError(err).Error("Failed to run OTP consume script")
		return false, fmt.Errorf("failed to consume OTP challenge: %w", err)
	}

	return res == 1, nil
}
