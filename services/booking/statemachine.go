package booking

import (
	"context"
	"errors"

	locationRepo "stayhub/database/repository/location"
	reservationRepo "stayhub/database/repository/reservation"
	"stayhub/models"
)

// actorRole identifies who may invoke a transition.
type actorRole int

const (
	roleRequester actorRole = iota // the user who requested the booking
	roleOwner                      // the owner of the booked location
)

type transitionKey struct {
	from, to models.ReservationState
}

// transitionTable is the complete set of legal transitions. Anything not
// listed fails with invalidTransition regardless of actor. The graph is
// acyclic: REFUSED, CANCELED and COMPLETED are terminal.
var transitionTable = map[transitionKey]actorRole{
	{models.StatePending, models.StateConfirmed}:   roleOwner,
	{models.StatePending, models.StateRefused}:     roleOwner,
	{models.StatePending, models.StateCanceled}:    roleRequester,
	{models.StateConfirmed, models.StateCanceled}:  roleRequester,
	{models.StateConfirmed, models.StateCompleted}: roleOwner,
}

// Transition applies a state change on behalf of the actor. The write is a
// compare-and-set against the state observed here; a concurrent transition
// surfaces as a conflict the caller may retry.
func (s *DefaultBookingService) Transition(ctx context.Context, actor models.Actor, reservationID string, target models.ReservationState) (*models.Reservation, error) {
	if !target.Valid() {
		return nil, newError(CodeValidationError, "unknown reservation state %q", target)
	}

	res, err := s.Repo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "reservation %s not found", reservationID)
		}
		return nil, wrapCollaborator(err, "load reservation")
	}

	role, ok := transitionTable[transitionKey{res.State, target}]
	if !ok {
		return nil, newError(CodeInvalidTransition, "cannot move reservation from %s to %s", res.State, target)
	}

	if err := s.checkRole(ctx, actor, res, role); err != nil {
		return nil, err
	}

	// A host may only complete a stay once it has ended.
	if res.State == models.StateConfirmed && target == models.StateCompleted {
		if NormalizeDay(s.now()).Before(NormalizeDay(res.EndDate)) {
			return nil, newError(CodeInvalidTransition, "stay has not ended yet")
		}
	}

	updated, err := s.Repo.UpdateState(ctx, reservationID, res.State, target)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrStateConflict) {
			return nil, newError(CodeConflict, "reservation state changed concurrently, retry")
		}
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "reservation %s not found", reservationID)
		}
		return nil, wrapCollaborator(err, "update reservation state")
	}
	return updated, nil
}

// checkRole verifies the actor holds the required role for a reservation.
func (s *DefaultBookingService) checkRole(ctx context.Context, actor models.Actor, res *models.Reservation, role actorRole) error {
	switch role {
	case roleRequester:
		if actor.UserID != res.UserID {
			return newError(CodeForbidden, "only the requesting user may perform this action")
		}
	case roleOwner:
		owner, err := s.locationOwner(ctx, res.LocationID)
		if err != nil {
			return err
		}
		if actor.UserID != owner {
			return newError(CodeForbidden, "only the location owner may perform this action")
		}
	}
	return nil
}

func (s *DefaultBookingService) locationOwner(ctx context.Context, locationID string) (string, error) {
	loc, err := s.Locations.GetByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrNotFound) {
			return "", newError(CodeNotFound, "location %s not found", locationID)
		}
		return "", wrapCollaborator(err, "load location")
	}
	return loc.OwnerID, nil
}
