package reservationRepo

import (
	"context"
	"errors"
	"fmt"

	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a reservation document by ID.
func (r *MongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching reservation %s: %w", id, err)
	}
	return &res, nil
}

func (r *MongoReservationRepo) list(ctx context.Context, filter bson.M) ([]models.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return out, nil
}

// ListByLocation retrieves all reservations for a location.
func (r *MongoReservationRepo) ListByLocation(ctx context.Context, locationID string) ([]models.Reservation, error) {
	return r.list(ctx, bson.M{"location_id": locationID})
}

// ListByUser retrieves all reservations requested by a user.
func (r *MongoReservationRepo) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

// ListAll retrieves every reservation. Admin use only.
func (r *MongoReservationRepo) ListAll(ctx context.Context) ([]models.Reservation, error) {
	return r.list(ctx, bson.M{})
}

// ListOccupyingByLocation retrieves the reservations that block the
// location's calendar.
func (r *MongoReservationRepo) ListOccupyingByLocation(ctx context.Context, locationID string) ([]models.Reservation, error) {
	return r.list(ctx, bson.M{
		"location_id": locationID,
		"state":       bson.M{"$in": models.OccupyingStates},
	})
}

// UpdateState applies a compare-and-set on the reservation state. The filter
// pins the expected current state so a concurrent transition cannot be
// silently overwritten.
func (r *MongoReservationRepo) UpdateState(ctx context.Context, id string, from, to models.ReservationState) (*models.Reservation, error) {
	filter := bson.M{"id": id, "state": from}
	update := bson.M{"$set": bson.M{"state": to}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Reservation
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error updating reservation %s state: %w", id, err)
	}

	// No match: either the reservation is gone or its state moved under us.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrStateConflict
}

// setRating fills a write-once rating slot. The filter requires the star
// field to be unset or zero, so a second submission matches nothing.
func (r *MongoReservationRepo) setRating(ctx context.Context, id, starField, commentField string, star int, comment string) (*models.Reservation, error) {
	filter := bson.M{
		"id": id,
		"$or": bson.A{
			bson.M{starField: bson.M{"$exists": false}},
			bson.M{starField: 0},
		},
	}
	update := bson.M{"$set": bson.M{starField: star, commentField: comment}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Reservation
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error setting rating on reservation %s: %w", id, err)
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrRatingAlreadySet
}

// SetClientRating fills the client-side rating slot.
func (r *MongoReservationRepo) SetClientRating(ctx context.Context, id string, star int, comment string) (*models.Reservation, error) {
	return r.setRating(ctx, id, "rating_client_star", "rating_client_comment", star, comment)
}

// SetHostRating fills the host-side rating slot.
func (r *MongoReservationRepo) SetHostRating(ctx context.Context, id string, star int, comment string) (*models.Reservation, error) {
	return r.setRating(ctx, id, "rating_host_star", "rating_host_comment", star, comment)
}
