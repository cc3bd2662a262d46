package sms

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/models"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender is the alternate provider for deployments without
// access to the first-party gateway.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	logger *logrus.Logger
}

func NewTwilioSender(accountSID, authToken, from string, logger *logrus.Logger) (*TwilioSender, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSender{client: client, from: from, logger: logger}, nil
}

func (s *TwilioSender) Name() string { return "twilio" }

func (s *TwilioSender) Send(ctx context.Context, mobile, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo("+91" + mobile)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		s.logger.WithError(err).Error("Failed to send SMS via Twilio")
		return &models.UpstreamError{Provider: "twilio", Message: "message delivery failed"}
	}

	if resp.Sid != nil {
		s.logger.WithFields(logrus.Fields{"sid": *resp.Sid, "mobile": mobile}).Info("SMS sent via Twilio")
	}

	return nil
}
