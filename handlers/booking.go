package handlers

import (
	"errors"
	"net/http"

	"smartpark/middleware"
	"smartpark/models"
	"smartpark/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Svc    booking.Service
	Logger *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	view, err := h.Svc.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": view,
	})
}

// ListBookings handles GET /api/bookings. Admins see everything, users
// see their own.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	views, err := h.Svc.List(c.Request.Context(), principal)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	view, err := h.Svc.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CancelBooking handles PUT /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	b, err := h.Svc.Cancel(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "booking": b})
}

// CompleteBooking handles PUT /api/bookings/:id/complete (admin only).
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	b, err := h.Svc.Complete(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking marked as completed", "booking": b})
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Fatal errors surface distinctly since they indicate a violated
// system invariant, not a client mistake.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var se *booking.Error
	if !errors.As(err, &se) {
		h.Logger.Error("booking operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	status := http.StatusInternalServerError
	switch se.Code {
	case booking.CodeNotFound:
		status = http.StatusNotFound
	case booking.CodeValidation:
		status = http.StatusBadRequest
	case booking.CodeForbidden:
		status = http.StatusForbidden
	case booking.CodeConflict:
		status = http.StatusConflict
	case booking.CodeFatal:
		h.Logger.Error("booking invariant violated", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": se.Message,
			"code":  se.Code,
		})
		return
	}

	body := gin.H{"error": se.Message, "code": se.Code}
	if se.Reason != "" {
		body["reason"] = se.Reason
	}
	c.JSON(status, body)
}
