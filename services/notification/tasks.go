package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smartpark/config"
	"smartpark/models"

	"github.com/hibiken/asynq"
)

// TypeBookingEmail is the asynq task type for booking emails.
const TypeBookingEmail = "notification:bookingEmail"

// Email kinds.
const (
	KindConfirmation = "confirmation"
	KindCancellation = "cancellation"
)

// EmailPayload is the task payload handed to the worker. It carries
// everything the template needs so the worker does no lookups.
type EmailPayload struct {
	Kind          string    `json:"kind"`
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	BookingID     string    `json:"bookingId"`
	SpotNumber    string    `json:"spotNumber"`
	Floor         string    `json:"floor"`
	VehicleNumber string    `json:"vehicleNumber"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	TotalAmount   float64   `json:"totalAmount"`
}

// AsynqService queues booking emails onto redis for the background
// worker. The client is constructed at startup and injected; there is
// no lazy global transporter.
type AsynqService struct {
	client *asynq.Client
}

var _ Service = (*AsynqService)(nil)

// NewAsynqService builds the queueing notification service from the
// app config.
func NewAsynqService() *AsynqService {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqService{client: client}
}

// Close releases the underlying queue connection.
func (s *AsynqService) Close() error {
	return s.client.Close()
}

func (s *AsynqService) SendBookingConfirmation(ctx context.Context, b models.Booking, u models.User, spot models.ParkingSpot) error {
	return s.enqueue(ctx, KindConfirmation, b, u, spot)
}

func (s *AsynqService) SendBookingCancellation(ctx context.Context, b models.Booking, u models.User, spot models.ParkingSpot) error {
	return s.enqueue(ctx, KindCancellation, b, u, spot)
}

func (s *AsynqService) enqueue(ctx context.Context, kind string, b models.Booking, u models.User, spot models.ParkingSpot) error {
	payload, err := json.Marshal(EmailPayload{
		Kind:          kind,
		UserName:      u.Name,
		UserEmail:     u.Email,
		BookingID:     b.ID,
		SpotNumber:    spot.SpotNumber,
		Floor:         spot.Floor,
		VehicleNumber: b.VehicleNumber,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		TotalAmount:   b.TotalAmount,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	task := asynq.NewTask(TypeBookingEmail, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)); err != nil {
		return fmt.Errorf("failed to enqueue %s email: %w", kind, err)
	}
	return nil
}
