package booking

import (
	"context"
	"errors"

	locationRepo "stayhub/database/repository/location"
	reservationRepo "stayhub/database/repository/reservation"
	"stayhub/models"
	"stayhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestBooking validates the candidate range and creates a PENDING
// reservation. The repository commits the overlap check and the insert as
// one serializable unit, so under concurrent requests for intersecting
// ranges the first insert wins and the loser fails with dateRangeConflict.
func (s *DefaultBookingService) RequestBooking(ctx context.Context, actor models.Actor, req BookingRequest) (*models.Reservation, error) {
	if req.LocationID == "" {
		return nil, newError(CodeValidationError, "locationId is required")
	}
	if req.NbPersons < 1 {
		return nil, newError(CodeValidationError, "nbPersons must be at least 1")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, newError(CodeValidationError, "startDate and endDate are required")
	}

	start := NormalizeDay(req.StartDate)
	end := NormalizeDay(req.EndDate)
	if end.Before(start) {
		return nil, newError(CodeValidationError, "endDate must not precede startDate")
	}

	loc, err := s.Locations.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "location %s not found", req.LocationID)
		}
		return nil, wrapCollaborator(err, "load location")
	}
	if loc.MaxPersons > 0 && req.NbPersons > loc.MaxPersons {
		return nil, newError(CodeValidationError, "location accommodates at most %d persons", loc.MaxPersons)
	}

	res := &models.Reservation{
		ID:              uuid.New().String(),
		UserID:          actor.UserID,
		LocationID:      req.LocationID,
		NbPersons:       req.NbPersons,
		ReservationDate: s.now(),
		StartDate:       start,
		EndDate:         end,
		MessageRequest:  req.Message,
		State:           models.StatePending,
	}

	if err := s.Repo.Create(ctx, res); err != nil {
		if errors.Is(err, reservationRepo.ErrDateRangeConflict) {
			return nil, newError(CodeDateRangeConflict, "the requested dates are no longer available")
		}
		return nil, wrapCollaborator(err, "create reservation")
	}

	utils.GetLogger().Info("reservation created",
		zap.String("reservationId", res.ID),
		zap.String("locationId", res.LocationID),
		zap.String("userId", res.UserID))
	return res, nil
}

// GetReservation loads a reservation the actor is allowed to see: the
// requesting user, the location owner, or an admin.
func (s *DefaultBookingService) GetReservation(ctx context.Context, actor models.Actor, reservationID string) (*models.Reservation, error) {
	res, err := s.Repo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "reservation %s not found", reservationID)
		}
		return nil, wrapCollaborator(err, "load reservation")
	}
	if actor.IsAdmin || actor.UserID == res.UserID {
		return res, nil
	}
	owner, err := s.locationOwner(ctx, res.LocationID)
	if err != nil {
		return nil, err
	}
	if actor.UserID != owner {
		return nil, newError(CodeForbidden, "not a party to this reservation")
	}
	return res, nil
}

// TripsForUser lists the reservations requested by a user.
func (s *DefaultBookingService) TripsForUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	trips, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapCollaborator(err, "list reservations by user")
	}
	return trips, nil
}

// ReservationsForLocation lists a location's reservations for its owner
// (rental management view).
func (s *DefaultBookingService) ReservationsForLocation(ctx context.Context, actor models.Actor, locationID string) ([]models.Reservation, error) {
	owner, err := s.locationOwner(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && actor.UserID != owner {
		return nil, newError(CodeForbidden, "only the location owner may list its reservations")
	}
	list, err := s.Repo.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, wrapCollaborator(err, "list reservations by location")
	}
	return list, nil
}

// AllReservations lists every reservation. Admin only.
func (s *DefaultBookingService) AllReservations(ctx context.Context, actor models.Actor) ([]models.Reservation, error) {
	if !actor.IsAdmin {
		return nil, newError(CodeForbidden, "admin access required")
	}
	list, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, wrapCollaborator(err, "list reservations")
	}
	return list, nil
}
