package reservationRepo

import (
	"context"
	"errors"

	"stayhub/models"
)

// Sentinel errors surfaced by conditional writes. The booking service maps
// these onto its caller-facing error codes.
var (
	// ErrNotFound indicates the reservation does not exist.
	ErrNotFound = errors.New("reservation not found")
	// ErrDateRangeConflict indicates the insert lost the race for a date
	// range: an occupying reservation already overlaps the candidate.
	ErrDateRangeConflict = errors.New("date range conflicts with an existing reservation")
	// ErrStateConflict indicates the reservation's current state no longer
	// matches the expected state (a concurrent transition won).
	ErrStateConflict = errors.New("reservation state changed concurrently")
	// ErrRatingAlreadySet indicates the write-once rating slot is occupied.
	ErrRatingAlreadySet = errors.New("rating already submitted")
)

// ReservationRepository is the source of truth for reservation records.
// All writes are conditional: state transitions and rating submissions
// compare-and-set against the current document, and Create checks date
// overlap and inserts as a single transactional unit.
type ReservationRepository interface {
	// Create inserts a new reservation after verifying, atomically, that no
	// occupying reservation overlaps its date range. First insert wins;
	// the loser receives ErrDateRangeConflict.
	Create(ctx context.Context, res *models.Reservation) error

	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	ListByLocation(ctx context.Context, locationID string) ([]models.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	ListAll(ctx context.Context) ([]models.Reservation, error)

	// ListOccupyingByLocation returns reservations whose state blocks the
	// location's calendar (PENDING, CONFIRMED).
	ListOccupyingByLocation(ctx context.Context, locationID string) ([]models.Reservation, error)

	// UpdateState moves a reservation from an expected state to a new one.
	// Returns ErrStateConflict when the stored state no longer matches from.
	UpdateState(ctx context.Context, id string, from, to models.ReservationState) (*models.Reservation, error)

	// SetClientRating fills the client-side write-once rating slot.
	// Returns ErrRatingAlreadySet when the slot is already occupied.
	SetClientRating(ctx context.Context, id string, star int, comment string) (*models.Reservation, error)

	// SetHostRating fills the host-side write-once rating slot.
	SetHostRating(ctx context.Context, id string, star int, comment string) (*models.Reservation, error)
}
