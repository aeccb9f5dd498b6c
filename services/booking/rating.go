package booking

import (
	"context"
	"errors"
	"math"

	reservationRepo "stayhub/database/repository/reservation"
	"stayhub/models"
)

// The rating exchange: two independent write-once slots per reservation,
// one per side. Submitting one never requires nor hides the other.

// SubmitClientRating records the requesting user's rating of the location.
// Allowed only once, only by the requesting user, and only after the
// reservation has left the PENDING/CONFIRMED phase.
func (s *DefaultBookingService) SubmitClientRating(ctx context.Context, actor models.Actor, reservationID string, star int, comment string) (*models.Reservation, error) {
	if star < 1 || star > 5 {
		return nil, newError(CodeInvalidRating, "star rating must be between 1 and 5")
	}

	res, err := s.loadForRating(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if actor.UserID != res.UserID {
		return nil, newError(CodeForbidden, "only the requesting user may rate this stay")
	}
	if res.State.Occupying() {
		return nil, newError(CodeForbidden, "the reservation is not resolved yet")
	}
	if res.RatingClientStar > 0 {
		return nil, newError(CodeAlreadyRated, "client rating already submitted")
	}

	updated, err := s.Repo.SetClientRating(ctx, reservationID, star, comment)
	return s.ratingResult(updated, err)
}

// SubmitHostRating records the location owner's rating of the client.
// Allowed once the reservation is resolved or the stay's end date has
// passed, independent of client action.
func (s *DefaultBookingService) SubmitHostRating(ctx context.Context, actor models.Actor, reservationID string, star int, comment string) (*models.Reservation, error) {
	if star < 1 || star > 5 {
		return nil, newError(CodeInvalidRating, "star rating must be between 1 and 5")
	}

	res, err := s.loadForRating(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	owner, err := s.locationOwner(ctx, res.LocationID)
	if err != nil {
		return nil, err
	}
	if actor.UserID != owner {
		return nil, newError(CodeForbidden, "only the location owner may rate this client")
	}
	if !res.State.Terminal() && NormalizeDay(s.now()).Before(NormalizeDay(res.EndDate)) {
		return nil, newError(CodeForbidden, "the stay has not ended yet")
	}
	if res.RatingHostStar > 0 {
		return nil, newError(CodeAlreadyRated, "host rating already submitted")
	}

	updated, err := s.Repo.SetHostRating(ctx, reservationID, star, comment)
	return s.ratingResult(updated, err)
}

func (s *DefaultBookingService) loadForRating(ctx context.Context, reservationID string) (*models.Reservation, error) {
	res, err := s.Repo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "reservation %s not found", reservationID)
		}
		return nil, wrapCollaborator(err, "load reservation")
	}
	return res, nil
}

// ratingResult maps the conditional-write outcome. The repo guard is the
// authoritative write-once check; the service precheck only shortcuts the
// common case.
func (s *DefaultBookingService) ratingResult(updated *models.Reservation, err error) (*models.Reservation, error) {
	if err != nil {
		if errors.Is(err, reservationRepo.ErrRatingAlreadySet) {
			return nil, newError(CodeAlreadyRated, "rating already submitted")
		}
		return nil, wrapCollaborator(err, "submit rating")
	}
	return updated, nil
}

// AggregateClientRating computes the arithmetic mean of the set client
// star values across a reservation set, rounded to one decimal place.
// Returns 0 when no rating exists.
func AggregateClientRating(reservations []models.Reservation) float64 {
	var sum, n int
	for _, res := range reservations {
		if res.RatingClientStar > 0 {
			sum += res.RatingClientStar
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}

// LocationRating returns the location's aggregate client rating. It is
// recomputed on every read, never cached.
func (s *DefaultBookingService) LocationRating(ctx context.Context, locationID string) (float64, error) {
	reservations, err := s.Repo.ListByLocation(ctx, locationID)
	if err != nil {
		return 0, wrapCollaborator(err, "list reservations by location")
	}
	return AggregateClientRating(reservations), nil
}
