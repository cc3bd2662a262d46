package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/models"
)

var ErrUserExists = errors.New("user already exists")

// BookingRepository stores bookings in the same single table as users,
// keyed under the owning user's partition so history is one Query.
type BookingRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *logrus.Logger
}

func NewBookingRepository(client *dynamodb.Client, tableName string, logger *logrus.Logger) *BookingRepository {
	return &BookingRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	item, err := attributevalue.MarshalMap(booking)
	if err != nil {
		r.logger.WithError(err).Error("Failed to marshal booking for DynamoDB")
		return fmt.Errorf("failed to marshal booking: %w", err)
	}

	item["PK"] = &types.AttributeValueMemberS{Value: booking.GetPK()}
	item["SK"] = &types.AttributeValueMemberS{Value: booking.GetSK()}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to store booking in DynamoDB")
		return fmt.Errorf("failed to store booking: %w", err)
	}

	return nil
}

// ListByMobile returns the user's bookings, newest first.
func (r *BookingRepository) ListByMobile(ctx context.Context, mobile string) ([]models.Booking, error) {
	user := &models.User{Mobile: mobile}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: user.GetPK()},
			":sk": &types.AttributeValueMemberS{Value: "BOOKING#"},
		},
		ScanIndexForward: aws.Bool(false),
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to query bookings from DynamoDB")
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}

	bookings := make([]models.Booking, 0, len(result.Items))
	for _, item := range result.Items {
		var b models.Booking
		if err := attributevalue.UnmarshalMap(item, &b); err != nil {
			r.logger.WithError(err).Error("Failed to unmarshal booking from DynamoDB")
			continue
		}
		bookings = append(bookings, b)
	}

	return bookings, nil
}

func (r *BookingRepository) Get(ctx context.Context, mobile, bookingID string) (*models.Booking, error) {
	booking := &models.Booking{Mobile: mobile, ID: bookingID}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: booking.GetPK()},
			"SK": &types.AttributeValueMemberS{Value: booking.GetSK()},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var b models.Booking
	if err := attributevalue.UnmarshalMap(result.Item, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking: %w", err)
	}

	return &b, nil
}
