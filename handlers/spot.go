package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	bookingRepo "smartpark/database/repository/booking"
	spotRepo "smartpark/database/repository/spot"
	"smartpark/models"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	spotListCacheKey = "spots:all"
	spotListCacheTTL = 10 * time.Second
)

// SpotHandler exposes the spot registry over HTTP. Reads are public;
// mutations are admin-gated at the route level.
type SpotHandler struct {
	Spots    spotRepo.SpotRepository
	Bookings bookingRepo.BookingRepository
	Cache    *redis.Client
	Logger   *zap.Logger
}

// NewSpotHandler creates a SpotHandler.
func NewSpotHandler(spots spotRepo.SpotRepository, bookings bookingRepo.BookingRepository, cache *redis.Client, logger *zap.Logger) *SpotHandler {
	return &SpotHandler{Spots: spots, Bookings: bookings, Cache: cache, Logger: logger}
}

// ListSpots handles GET /api/spots with optional status/type/floor
// filters. The unfiltered listing is served from a short-lived redis
// cache.
func (h *SpotHandler) ListSpots(c *gin.Context) {
	filter := models.SpotFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Floor:  c.Query("floor"),
	}

	ctx := c.Request.Context()
	unfiltered := filter == (models.SpotFilter{})

	if unfiltered && h.Cache != nil {
		if cached, err := h.Cache.Get(ctx, spotListCacheKey).Result(); err == nil {
			var spots []models.ParkingSpot
			if json.Unmarshal([]byte(cached), &spots) == nil {
				c.JSON(http.StatusOK, spots)
				return
			}
		}
	}

	spots, err := h.Spots.List(ctx, filter)
	if err != nil {
		h.Logger.Error("failed to list spots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if unfiltered && h.Cache != nil {
		if raw, err := json.Marshal(spots); err == nil {
			if err := h.Cache.Set(ctx, spotListCacheKey, raw, spotListCacheTTL).Err(); err != nil {
				h.Logger.Warn("failed to cache spot list", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, spots)
}

// GetSpot handles GET /api/spots/:id.
func (h *SpotHandler) GetSpot(c *gin.Context) {
	spot, err := h.Spots.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, spotRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parking spot not found"})
			return
		}
		h.Logger.Error("failed to fetch spot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, spot)
}

// CreateSpot handles POST /api/spots (admin only).
func (h *SpotHandler) CreateSpot(c *gin.Context) {
	var input models.CreateSpotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if input.Type == "" {
		input.Type = models.SpotTypeRegular
	}
	if !models.ValidSpotType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown spot type"})
		return
	}
	if input.PricePerHour <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price per hour must be positive"})
		return
	}

	spot := &models.ParkingSpot{
		SpotNumber:   input.SpotNumber,
		Floor:        input.Floor,
		Section:      input.Section,
		Type:         input.Type,
		Status:       models.SpotAvailable,
		PricePerHour: input.PricePerHour,
	}

	if err := h.Spots.Create(c.Request.Context(), spot); err != nil {
		if errors.Is(err, spotRepo.ErrDuplicateSpotNumber) {
			c.JSON(http.StatusConflict, gin.H{"error": "Spot number already exists"})
			return
		}
		h.Logger.Error("failed to create spot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	h.invalidateListCache(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"message": "Parking spot created successfully", "spot": spot})
}

// UpdateSpot handles PUT /api/spots/:id (admin only, partial update).
func (h *SpotHandler) UpdateSpot(c *gin.Context) {
	var input models.UpdateSpotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if input.Status != nil && !models.ValidSpotStatus(*input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown spot status"})
		return
	}
	if input.Type != nil && !models.ValidSpotType(*input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown spot type"})
		return
	}
	if input.PricePerHour != nil && *input.PricePerHour <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price per hour must be positive"})
		return
	}

	spot, err := h.Spots.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, spotRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parking spot not found"})
			return
		}
		h.Logger.Error("failed to update spot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	h.invalidateListCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Parking spot updated successfully", "spot": spot})
}

// DeleteSpot handles DELETE /api/spots/:id (admin only). A spot with a
// non-terminal booking cannot be removed.
func (h *SpotHandler) DeleteSpot(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	active, err := h.Bookings.CountActiveBySpot(ctx, id)
	if err != nil {
		h.Logger.Error("failed to count active bookings for spot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if active > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Spot has active bookings and cannot be deleted"})
		return
	}

	if err := h.Spots.Delete(ctx, id); err != nil {
		if errors.Is(err, spotRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parking spot not found"})
			return
		}
		h.Logger.Error("failed to delete spot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	h.invalidateListCache(ctx)
	c.JSON(http.StatusOK, gin.H{"message": "Parking spot deleted successfully"})
}

func (h *SpotHandler) invalidateListCache(ctx context.Context) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Del(ctx, spotListCacheKey).Err(); err != nil {
		h.Logger.Warn("failed to invalidate spot list cache", zap.Error(err))
	}
}
