package booking

import (
	"context"
	"sync"

	locationRepo "stayhub/database/repository/location"
	reservationRepo "stayhub/database/repository/reservation"
	"stayhub/models"
)

// fakeReservationRepo is an in-memory ReservationRepository with the same
// atomicity contract as the Mongo implementation: Create checks overlap and
// inserts under one lock, and state/rating writes are compare-and-set.
type fakeReservationRepo struct {
	mu    sync.Mutex
	items map[string]models.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{items: make(map[string]models.Reservation)}
}

func (f *fakeReservationRepo) put(res models.Reservation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[res.ID] = res
}

func (f *fakeReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.items {
		if r.LocationID != res.LocationID || !r.State.Occupying() {
			continue
		}
		if !res.StartDate.After(r.EndDate) && !res.EndDate.Before(r.StartDate) {
			return reservationRepo.ErrDateRangeConflict
		}
	}
	f.items[res.ID] = *res
	return nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.items[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	return &res, nil
}

func (f *fakeReservationRepo) list(match func(models.Reservation) bool) []models.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.items {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeReservationRepo) ListByLocation(ctx context.Context, locationID string) ([]models.Reservation, error) {
	return f.list(func(r models.Reservation) bool { return r.LocationID == locationID }), nil
}

func (f *fakeReservationRepo) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return f.list(func(r models.Reservation) bool { return r.UserID == userID }), nil
}

func (f *fakeReservationRepo) ListAll(ctx context.Context) ([]models.Reservation, error) {
	return f.list(func(models.Reservation) bool { return true }), nil
}

func (f *fakeReservationRepo) ListOccupyingByLocation(ctx context.Context, locationID string) ([]models.Reservation, error) {
	return f.list(func(r models.Reservation) bool {
		return r.LocationID == locationID && r.State.Occupying()
	}), nil
}

func (f *fakeReservationRepo) UpdateState(ctx context.Context, id string, from, to models.ReservationState) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.items[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	if res.State != from {
		return nil, reservationRepo.ErrStateConflict
	}
	res.State = to
	f.items[id] = res
	return &res, nil
}

func (f *fakeReservationRepo) SetClientRating(ctx context.Context, id string, star int, comment string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.items[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	if res.RatingClientStar > 0 {
		return nil, reservationRepo.ErrRatingAlreadySet
	}
	res.RatingClientStar = star
	res.RatingClientComment = comment
	f.items[id] = res
	return &res, nil
}

func (f *fakeReservationRepo) SetHostRating(ctx context.Context, id string, star int, comment string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.items[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	if res.RatingHostStar > 0 {
		return nil, reservationRepo.ErrRatingAlreadySet
	}
	res.RatingHostStar = star
	res.RatingHostComment = comment
	f.items[id] = res
	return &res, nil
}

// fakeLocationRepo is an in-memory LocationRepository.
type fakeLocationRepo struct {
	mu    sync.Mutex
	items map[string]models.Location
}

func newFakeLocationRepo(locations ...models.Location) *fakeLocationRepo {
	f := &fakeLocationRepo{items: make(map[string]models.Location)}
	for _, loc := range locations {
		f.items[loc.ID] = loc
	}
	return f
}

func (f *fakeLocationRepo) Create(ctx context.Context, loc *models.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[loc.ID] = *loc
	return nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string) (*models.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loc, ok := f.items[id]
	if !ok {
		return nil, locationRepo.ErrNotFound
	}
	return &loc, nil
}

func (f *fakeLocationRepo) List(ctx context.Context) ([]models.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Location
	for _, loc := range f.items {
		out = append(out, loc)
	}
	return out, nil
}

func (f *fakeLocationRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Location
	for _, loc := range f.items {
		if loc.OwnerID == ownerID {
			out = append(out, loc)
		}
	}
	return out, nil
}
