package booking

import (
	"context"
	"time"

	locationRepo "stayhub/database/repository/location"
	reservationRepo "stayhub/database/repository/reservation"
	"stayhub/models"
)

// BookingRequest is the input for a new booking.
type BookingRequest struct {
	LocationID string    `json:"locationId" binding:"required"`
	StartDate  time.Time `json:"startDate" binding:"required"`
	EndDate    time.Time `json:"endDate" binding:"required"`
	NbPersons  int       `json:"nbPersons" binding:"required,min=1"`
	Message    string    `json:"message"`
}

// BookingService is the booking lifecycle and availability engine exposed
// to the glue layer.
type BookingService interface {
	// RequestBooking validates a candidate range and creates a PENDING
	// reservation; the overlap check and the insert are one atomic unit.
	RequestBooking(ctx context.Context, actor models.Actor, req BookingRequest) (*models.Reservation, error)

	// Transition moves a reservation along the state machine on behalf of
	// the actor.
	Transition(ctx context.Context, actor models.Actor, reservationID string, target models.ReservationState) (*models.Reservation, error)

	// BlockedRanges returns the ordered blocked windows for a location.
	BlockedRanges(ctx context.Context, locationID string) ([]models.AvailabilityWindow, error)

	// SubmitClientRating fills the requesting user's write-once rating slot.
	SubmitClientRating(ctx context.Context, actor models.Actor, reservationID string, star int, comment string) (*models.Reservation, error)

	// SubmitHostRating fills the location owner's write-once rating slot.
	SubmitHostRating(ctx context.Context, actor models.Actor, reservationID string, star int, comment string) (*models.Reservation, error)

	// LocationRating returns the location's aggregate client rating,
	// recomputed on read.
	LocationRating(ctx context.Context, locationID string) (float64, error)

	GetReservation(ctx context.Context, actor models.Actor, reservationID string) (*models.Reservation, error)
	TripsForUser(ctx context.Context, userID string) ([]models.Reservation, error)
	ReservationsForLocation(ctx context.Context, actor models.Actor, locationID string) ([]models.Reservation, error)
	AllReservations(ctx context.Context, actor models.Actor) ([]models.Reservation, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo      reservationRepo.ReservationRepository
	Locations locationRepo.LocationRepository

	// Now is the clock used by date-gated policies. Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
