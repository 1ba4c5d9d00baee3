package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every handler the router registers.
type HandlerBundle struct {
	// Auth endpoints.
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc

	// Spot endpoints.
	ListSpotsHandler  gin.HandlerFunc
	GetSpotHandler    gin.HandlerFunc
	CreateSpotHandler gin.HandlerFunc
	UpdateSpotHandler gin.HandlerFunc
	DeleteSpotHandler gin.HandlerFunc

	// Booking endpoints.
	CreateBookingHandler   gin.HandlerFunc
	ListBookingsHandler    gin.HandlerFunc
	GetBookingHandler      gin.HandlerFunc
	CancelBookingHandler   gin.HandlerFunc
	CompleteBookingHandler gin.HandlerFunc
}
