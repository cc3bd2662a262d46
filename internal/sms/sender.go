package sms

import "context"

// Sender delivers a text message to a mobile number. One attempt, no
// retry; a provider failure surfaces as *models.UpstreamError.
type Sender interface {
	Name() string
	Send(ctx context.Context, mobile, message string) error
}
