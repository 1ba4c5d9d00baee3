package models

import "time"

// Spot status values. Status is the single source of truth for whether
// a spot can accept a new booking.
const (
	SpotAvailable   = "available"
	SpotOccupied    = "occupied"
	SpotReserved    = "reserved"
	SpotMaintenance = "maintenance"
)

// Spot categories.
const (
	SpotTypeRegular    = "regular"
	SpotTypeAccessible = "accessible"
	SpotTypeEVCharging = "ev-charging"
	SpotTypeVIP        = "vip"
)

// ParkingSpot represents a single parking spot document.
type ParkingSpot struct {
	ID           string    `bson:"id" json:"id"`
	SpotNumber   string    `bson:"spotNumber" json:"spotNumber"`
	Floor        string    `bson:"floor" json:"floor"`
	Section      string    `bson:"section" json:"section"`
	Type         string    `bson:"type" json:"type"`
	Status       string    `bson:"status" json:"status"`
	PricePerHour float64   `bson:"pricePerHour" json:"pricePerHour"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// ValidSpotType reports whether t is a known spot category.
func ValidSpotType(t string) bool {
	switch t {
	case SpotTypeRegular, SpotTypeAccessible, SpotTypeEVCharging, SpotTypeVIP:
		return true
	}
	return false
}

// ValidSpotStatus reports whether s is a known spot status.
func ValidSpotStatus(s string) bool {
	switch s {
	case SpotAvailable, SpotOccupied, SpotReserved, SpotMaintenance:
		return true
	}
	return false
}

// CreateSpotInput is the admin payload for registering a new spot.
type CreateSpotInput struct {
	SpotNumber   string  `json:"spotNumber" binding:"required"`
	Floor        string  `json:"floor" binding:"required"`
	Section      string  `json:"section" binding:"required"`
	Type         string  `json:"type"`
	PricePerHour float64 `json:"pricePerHour"`
}

// UpdateSpotInput carries partial updates; nil fields are left untouched.
type UpdateSpotInput struct {
	Floor        *string  `json:"floor"`
	Section      *string  `json:"section"`
	Type         *string  `json:"type"`
	Status       *string  `json:"status"`
	PricePerHour *float64 `json:"pricePerHour"`
}

// SpotFilter narrows spot listings.
type SpotFilter struct {
	Status string
	Type   string
	Floor  string
}
