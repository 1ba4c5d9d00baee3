package models

import "time"

// Booking status values. A booking starts active and ends in exactly
// one of the terminal states; terminal states absorb.
const (
	BookingActive    = "active"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
	BookingNoShow    = "no-show"
)

// Payment status values. Recorded on the booking; no gateway is called.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Booking represents a reservation of one spot for one time window.
// It holds only foreign keys; spot and user details are joined at the
// API boundary.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	SpotID        string    `bson:"spotId" json:"spotId"`
	VehicleNumber string    `bson:"vehicleNumber" json:"vehicleNumber"`
	StartTime     time.Time `bson:"startTime" json:"startTime"`
	EndTime       time.Time `bson:"endTime" json:"endTime"`
	TotalAmount   float64   `bson:"totalAmount" json:"totalAmount"`
	PaymentStatus string    `bson:"paymentStatus" json:"paymentStatus"`
	BookingStatus string    `bson:"bookingStatus" json:"bookingStatus"`
	QRCode        string    `bson:"qrCode" json:"qrCode"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// IsTerminal reports whether the booking has reached a terminal state.
func (b *Booking) IsTerminal() bool {
	return b.BookingStatus != BookingActive
}

// Overlaps reports whether the booking's window intersects [start, end).
// Adjacent windows (end == start) do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// CreateBookingInput is the client payload for creating a booking.
type CreateBookingInput struct {
	SpotID        string    `json:"spotId" binding:"required"`
	VehicleNumber string    `json:"vehicleNumber" binding:"required"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required"`
}

// SpotSummary is the denormalized spot view embedded in booking
// responses at read time.
type SpotSummary struct {
	ID         string `json:"id"`
	SpotNumber string `json:"spotNumber"`
	Floor      string `json:"floor"`
	Section    string `json:"section"`
	Type       string `json:"type"`
}

// BookingView is a booking joined with its spot summary for API
// responses.
type BookingView struct {
	Booking
	Spot *SpotSummary `json:"spot,omitempty"`
}

// QRPayload is the JSON document encoded into the proof-of-booking
// token presented at the entrance.
type QRPayload struct {
	BookingID     string    `json:"bookingId"`
	SpotNumber    string    `json:"spotNumber"`
	VehicleNumber string    `json:"vehicleNumber"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}
