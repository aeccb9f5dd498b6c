package locationRepo

import (
	"context"
	"errors"

	"stayhub/models"
)

// ErrNotFound indicates the location does not exist.
var ErrNotFound = errors.New("location not found")

// LocationRepository provides access to bookable locations. The booking
// engine reads it for owner-role checks; the glue layer also creates and
// lists locations for the catalog.
type LocationRepository interface {
	Create(ctx context.Context, loc *models.Location) error
	GetByID(ctx context.Context, id string) (*models.Location, error)
	List(ctx context.Context) ([]models.Location, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Location, error)
}
