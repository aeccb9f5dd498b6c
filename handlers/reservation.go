package handlers

import (
	"context"
	"errors"
	"net/http"

	"stayhub/middleware"
	"stayhub/models"
	"stayhub/services/booking"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler exposes the booking lifecycle over HTTP.
type ReservationHandler struct {
	Booking booking.BookingService
	Logger  *zap.Logger
}

// NewReservationHandler constructs a reservation handler.
func NewReservationHandler(svc booking.BookingService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Booking: svc, Logger: logger}
}

// CreateReservationHandler handles POST /api/reservations.
func (h *ReservationHandler) CreateReservationHandler(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	var req booking.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := h.Booking.RequestBooking(c.Request.Context(), actor, req)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GetReservationHandler handles GET /api/reservations/:id.
func (h *ReservationHandler) GetReservationHandler(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	res, err := h.Booking.GetReservation(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type transitionRequest struct {
	State models.ReservationState `json:"state" binding:"required"`
}

// TransitionHandler handles PUT /api/reservations/:id/state.
func (h *ReservationHandler) TransitionHandler(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := h.Booking.Transition(c.Request.Context(), actor, c.Param("id"), req.State)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	h.Logger.Info("reservation transitioned",
		zap.String("reservationId", res.ID), zap.String("state", string(res.State)))
	c.JSON(http.StatusOK, res)
}

type ratingRequest struct {
	Star    int    `json:"star" binding:"required"`
	Comment string `json:"comment"`
}

// ClientRatingHandler handles PUT /api/reservations/:id/rating/client.
func (h *ReservationHandler) ClientRatingHandler(c *gin.Context) {
	h.submitRating(c, h.Booking.SubmitClientRating)
}

// HostRatingHandler handles PUT /api/reservations/:id/rating/host.
func (h *ReservationHandler) HostRatingHandler(c *gin.Context) {
	h.submitRating(c, h.Booking.SubmitHostRating)
}

func (h *ReservationHandler) submitRating(
	c *gin.Context,
	submit func(ctx context.Context, actor models.Actor, id string, star int, comment string) (*models.Reservation, error),
) {
	actor, _ := middleware.CurrentActor(c)

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := submit(c.Request.Context(), actor, c.Param("id"), req.Star, req.Comment)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func writeBookingError(c *gin.Context, err error) {
	var berr *booking.BookingError
	if errors.As(err, &berr) {
		utils.JSONError(c, berr.HTTPStatus(), berr.Message, berr.Code)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "booking operation failed", err.Error())
}

// MyTripsHandler handles GET /api/reservations/mine.
func (h *ReservationHandler) MyTripsHandler(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	trips, err := h.Booking.TripsForUser(c.Request.Context(), actor.UserID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// AllReservationsHandler handles GET /api/admin/reservations.
func (h *ReservationHandler) AllReservationsHandler(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	list, err := h.Booking.AllReservations(c.Request.Context(), actor)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
