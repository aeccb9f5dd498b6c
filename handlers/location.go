package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	locationRepo "stayhub/database/repository/location"
	"stayhub/middleware"
	"stayhub/models"
	"stayhub/services/booking"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// locationCacheTTL bounds staleness of the cached catalog entries.
const locationCacheTTL = 10 * time.Minute

// LocationHandler exposes the location catalog and its availability.
// Catalog reads by ID go through the cache when one is configured;
// availability and ratings always hit the engine.
type LocationHandler struct {
	Locations locationRepo.LocationRepository
	Booking   booking.BookingService
	Cache     *redis.Client
}

// NewLocationHandler constructs a location handler. cache may be nil.
func NewLocationHandler(locations locationRepo.LocationRepository, svc booking.BookingService, cache *redis.Client) *LocationHandler {
	return &LocationHandler{Locations: locations, Booking: svc, Cache: cache}
}

func (h *LocationHandler) cachedLocation(ctx context.Context, id string) *models.Location {
	if h.Cache == nil {
		return nil
	}
	raw, err := h.Cache.Get(ctx, "location:"+id).Result()
	if err != nil {
		return nil
	}
	var loc models.Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return nil
	}
	return &loc
}

func (h *LocationHandler) cacheLocation(ctx context.Context, loc *models.Location) {
	if h.Cache == nil {
		return
	}
	raw, err := json.Marshal(loc)
	if err != nil {
		return
	}
	h.Cache.Set(ctx, "location:"+loc.ID, raw, locationCacheTTL)
}

type createLocationRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Address       string  `json:"address"`
	PricePerNight float64 `json:"pricePerNight" binding:"required,gt=0"`
	MaxPersons    int     `json:"maxPersons"`
}

// CreateLocationHandler handles POST /api/locations.
func (h *LocationHandler) CreateLocationHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	loc := &models.Location{
		ID:            uuid.New().String(),
		OwnerID:       actor.UserID,
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		PricePerNight: req.PricePerNight,
		MaxPersons:    req.MaxPersons,
		CreatedAt:     time.Now(),
	}
	if err := h.Locations.Create(c.Request.Context(), loc); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create location", err.Error())
		return
	}
	h.cacheLocation(c.Request.Context(), loc)
	c.JSON(http.StatusCreated, loc)
}

// ListLocationsHandler handles GET /api/locations.
func (h *LocationHandler) ListLocationsHandler(c *gin.Context) {
	list, err := h.Locations.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list locations", err.Error())
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetLocationHandler handles GET /api/locations/:id.
func (h *LocationHandler) GetLocationHandler(c *gin.Context) {
	if loc := h.cachedLocation(c.Request.Context(), c.Param("id")); loc != nil {
		c.JSON(http.StatusOK, loc)
		return
	}

	loc, err := h.Locations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == locationRepo.ErrNotFound {
			utils.JSONError(c, http.StatusNotFound, "location not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch location", err.Error())
		return
	}
	h.cacheLocation(c.Request.Context(), loc)
	c.JSON(http.StatusOK, loc)
}

// MyLocationsHandler handles GET /api/locations/mine: the caller's own
// rentals for the management view.
func (h *LocationHandler) MyLocationsHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required", "")
		return
	}
	list, err := h.Locations.ListByOwner(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list locations", err.Error())
		return
	}
	c.JSON(http.StatusOK, list)
}

// BlockedRangesHandler handles GET /api/locations/:id/blocked-ranges.
func (h *LocationHandler) BlockedRangesHandler(c *gin.Context) {
	windows, err := h.Booking.BlockedRanges(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blockedRanges": windows})
}

// LocationRatingHandler handles GET /api/locations/:id/rating.
func (h *LocationHandler) LocationRatingHandler(c *gin.Context) {
	rating, err := h.Booking.LocationRating(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": rating})
}

// LocationReservationsHandler handles GET /api/locations/:id/reservations
// (owner's rental management view).
func (h *LocationHandler) LocationReservationsHandler(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	list, err := h.Booking.ReservationsForLocation(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
