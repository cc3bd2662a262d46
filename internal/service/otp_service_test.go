package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/config"
	"github.com/top4/calldrivers/internal/models"
	"github.com/top4/calldrivers/internal/repository"
)

type fakeSender struct {
	calls   int
	lastMsg string
	fail    error
}

func (f *fakeSender) Name() string { return "fake" }

func (f *fakeSender) Send(ctx context.Context, mobile, message string) error {
	f.calls++
	f.lastMsg = message
	return f.fail
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestOTPService(sender *fakeSender) *OTPService {
	cfg := &config.OTPConfig{Length: 6, Expiry: time.Minute, MaxAttempts: 5}
	return NewOTPService(repository.NewMemoryChallengeStore(), sender, cfg, testLogger())
}

func TestOTPService_Send_RejectsBadMobiles(t *testing.T) {
	sender := &fakeSender{}
	s := newTestOTPService(sender)

	bad := []string{"", "12345", "1234567890", "98765432100", "987654321a", "+919876543210"}
	for _, mobile := range bad {
		if _, err := s.Send(context.Background(), mobile); err == nil {
			t.Errorf("Send(%q) succeeded, want validation error", mobile)
		} else {
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Send(%q) error = %v, want ValidationError", mobile, err)
			}
		}
	}

	if sender.calls != 0 {
		t.Errorf("provider called %d times for invalid mobiles, want 0", sender.calls)
	}
}

func TestOTPService_SendAndVerify(t *testing.T) {
	sender := &fakeSender{}
	s := newTestOTPService(sender)
	ctx := context.Background()

	result, err := s.Send(ctx, "9876543210")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if sender.calls != 1 {
		t.Fatalf("provider called %d times, want 1", sender.calls)
	}
	if result.Provider != "fake" {
		t.Errorf("Provider = %q, want fake", result.Provider)
	}
	if len(result.Code) != 6 {
		t.Fatalf("Code length = %d, want 6", len(result.Code))
	}

	ok, err := s.Verify(ctx, "9876543210", "000000")
	if err != nil || ok {
		t.Errorf("Verify(wrong code) = %v, %v, want false, nil", ok, err)
	}

	ok, err = s.Verify(ctx, "9876543210", result.Code)
	if err != nil || !ok {
		t.Fatalf("Verify(correct code) = %v, %v, want true, nil", ok, err)
	}
}

func TestOTPService_Verify_NoReplay(t *testing.T) {
	sender := &fakeSender{}
	s := newTestOTPService(sender)
	ctx := context.Background()

	result, err := s.Send(ctx, "9876543210")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if ok, _ := s.Verify(ctx, "9876543210", result.Code); !ok {
		t.Fatal("first verification failed")
	}
	if ok, _ := s.Verify(ctx, "9876543210", result.Code); ok {
		t.Error("second verification of a consumed code succeeded")
	}
}

func TestOTPService_Resend_InvalidatesPrevious(t *testing.T) {
	sender := &fakeSender{}
	s := newTestOTPService(sender)
	ctx := context.Background()

	first, err := s.Send(ctx, "9876543210")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	second, err := s.Send(ctx, "9876543210")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if ok, _ := s.Verify(ctx, "9876543210", first.Code); ok && first.Code != second.Code {
		t.Error("old code verified after a new one was issued")
	}
	if ok, _ := s.Verify(ctx, "9876543210", second.Code); !ok {
		t.Error("latest code failed to verify")
	}
}

func TestOTPService_Send_ProviderFailure(t *testing.T) {
	sender := &fakeSender{fail: &models.UpstreamError{Provider: "fake", StatusCode: 503, Message: "down"}}
	s := newTestOTPService(sender)

	_, err := s.Send(context.Background(), "9876543210")
	var uerr *models.UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("Send() error = %v, want UpstreamError", err)
	}
	if uerr.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", uerr.StatusCode)
	}
}

func TestOTPService_Verify_Expired(t *testing.T) {
	sender := &fakeSender{}
	cfg := &config.OTPConfig{Length: 6, Expiry: -time.Second, MaxAttempts: 5}
	s := NewOTPService(repository.NewMemoryChallengeStore(), sender, cfg, testLogger())
	ctx := context.Background()

	result, err := s.Send(ctx, "9876543210")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if ok, _ := s.Verify(ctx, "9876543210", result.Code); ok {
		t.Error("expired challenge verified")
	}
}
