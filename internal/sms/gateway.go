package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/models"
)

// GatewaySender talks to the TOP4 SMS backend: a fixed base URL behind
// HTTP basic auth.
type GatewaySender struct {
	baseURL    string
	user       string
	password   string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewGatewaySender(baseURL, user, password string, timeout time.Duration, logger *logrus.Logger) *GatewaySender {
	return &GatewaySender{
		baseURL:    baseURL,
		user:       user,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (s *GatewaySender) Name() string { return "gateway" }

type gatewayRequest struct {
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
}

type gatewayResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *GatewaySender) Send(ctx context.Context, mobile, message string) error {
	body, err := json.Marshal(gatewayRequest{Mobile: mobile, Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal SMS request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/sendSMS", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.user, s.password)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("SMS gateway request failed")
		return &models.UpstreamError{Provider: "gateway", Message: "request failed"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.WithField("status", resp.StatusCode).Error("SMS gateway returned non-2xx")
		return &models.UpstreamError{Provider: "gateway", StatusCode: resp.StatusCode, Message: "provider rejected the request"}
	}

	var gw gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gw); err != nil {
		s.logger.WithError(err).Error("SMS gateway returned malformed JSON")
		return &models.UpstreamError{Provider: "gateway", StatusCode: resp.StatusCode, Message: "malformed provider response"}
	}

	if gw.Status != "success" {
		return &models.UpstreamError{Provider: "gateway", StatusCode: resp.StatusCode, Message: gw.Message}
	}

	return nil
}
