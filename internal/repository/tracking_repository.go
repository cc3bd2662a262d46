package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/models"
)

// trackingTTL bounds how long a reported driver position stays
// readable. A stale record is indistinguishable from a missing one.
const trackingTTL = 30 * time.Minute

type TrackingRepository struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewTrackingRepository(client *redis.Client, logger *logrus.Logger) *TrackingRepository {
	return &TrackingRepository{client: client, logger: logger}
}

func trackingKey(bookingID string) string {
	return fmt.Sprintf("tracking:%s", bookingID)
}

func (r *TrackingRepository) Set(ctx context.Context, loc models.DriverLocation) error {
	loc.UpdatedAt = time.Now()

	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal driver location: %w", err)
	}

	if err := r.client.Set(ctx, trackingKey(loc.BookingID), data, trackingTTL).Err(); err != nil {
		r.logger.WithError(err).Error("Failed to store driver location in Redis")
		return fmt.Errorf("failed to store driver location: %w", err)
	}

	return nil
}

// Get returns nil, nil when no live record exists for the booking.
func (r *TrackingRepository) Get(ctx context.Context, bookingID string) (*models.DriverLocation, error) {
	data, err := r.client.Get(ctx, trackingKey(bookingID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.logger.WithError(err).Error("Failed to get driver location from Redis")
		return nil, fmt.Errorf("failed to get driver location: %w", err)
	}

	var loc models.DriverLocation
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal driver location: %w", err)
	}

	return &loc, nil
}
