package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/config"
	"github.com/top4/calldrivers/internal/models"
	"github.com/top4/calldrivers/internal/repository"
	"github.com/top4/calldrivers/internal/sms"
)

// Indian mobile numbers: ten digits, leading 6-9.
var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

func IsValidMobile(mobile string) bool {
	return mobilePattern.MatchString(mobile)
}

type OTPService struct {
	store  repository.ChallengeStore
	sender sms.Sender
	cfg    *config.OTPConfig
	logger *logrus.Logger
}

func NewOTPService(store repository.ChallengeStore, sender sms.Sender, cfg *config.OTPConfig, logger *logrus.Logger) *OTPService {
	return &OTPService{
		store:  store,
		sender: sender,
		cfg:    cfg,
		logger: logger,
	}
}

type SendResult struct {
	Provider string
	Message  string
	// Code is the plain OTP, exposed to clients only in debug mode.
	Code string
}

// Send issues a fresh challenge for the mobile number, replacing any
// pending one, and dispatches it through the configured SMS provider.
// One attempt, no retry.
func (s *OTPService) Send(ctx context.Context, mobile string) (*SendResult, error) {
	if !IsValidMobile(mobile) {
		return nil, models.NewValidationError("mobile number must be a 10-digit Indian number")
	}

	code, err := s.generateCode(s.cfg.Length)
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	now := time.Now()
	challenge := models.OTPChallenge{
		CodeHash:  HashCode(code),
		Mobile:    mobile,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.Expiry),
	}

	if err := s.store.Put(ctx, mobile, challenge, s.cfg.Expiry); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("%s is your TOP4 Call Drivers verification code. Valid for %d minutes.",
		code, int(s.cfg.Expiry.Minutes()))

	if err := s.sender.Send(ctx, mobile, message); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"mobile":   mobile,
		"provider": s.sender.Name(),
	}).Info("OTP sent")

	return &SendResult{
		Provider: s.sender.Name(),
		Message:  "OTP sent successfully",
		Code:     code,
	}, nil
}

// Verify checks the code against the pending challenge and consumes it
// on success. A consumed code can never verify again.
func (s *OTPService) Verify(ctx context.Context, mobile, code string) (bool, error) {
	if !IsValidMobile(mobile) {
		return false, models.NewValidationError("mobile number must be a 10-digit Indian number")
	}

	ok, err := s.store.Consume(ctx, mobile, HashCode(code), s.cfg.MaxAttempts)
	if err != nil {
		return false, err
	}

	if ok {
		s.logger.WithField("mobile", mobile).Info("OTP verified")
	}

	return ok, nil
}

// HashCode is the stored form of an OTP code. SHA-256 is deterministic
// so the challenge store can compare and delete in one atomic step.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func (s *OTPService) generateCode(length int) (string, error) {
	code := ""
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += num.String()
	}
	return code, nil
}
