package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const createTxnAttempts = 3

// occupyingOverlapFilter matches reservations that block the candidate
// range for a location. Bounds are inclusive whole days: a reservation
// ending on day D blocks a candidate starting on day D.
func occupyingOverlapFilter(locationID string, start, end time.Time) bson.M {
	return bson.M{
		"location_id": locationID,
		"state":       bson.M{"$in": models.OccupyingStates},
		"start_date":  bson.M{"$lte": end},
		"end_date":    bson.M{"$gte": start},
	}
}

// Create inserts a reservation inside a transaction. The overlap check is
// a snapshot read and inserts of distinct documents never write-conflict,
// so the transaction first bumps a booking version on the shared location
// document. Two concurrent bookers for the same location collide on that
// write and the transaction layer aborts one of them; the retry then sees
// the winner's reservation and fails with ErrDateRangeConflict.
func (r *MongoReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		upd, err := r.locations.UpdateOne(sc,
			bson.M{"id": res.LocationID},
			bson.M{"$inc": bson.M{"booking_version": 1}})
		if err != nil {
			return fmt.Errorf("location version bump failed: %w", err)
		}
		if upd.MatchedCount == 0 {
			return fmt.Errorf("location %s not found", res.LocationID)
		}

		n, err := r.coll.CountDocuments(sc, occupyingOverlapFilter(res.LocationID, res.StartDate, res.EndDate))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return ErrDateRangeConflict
		}
		if _, err := r.coll.InsertOne(sc, res); err != nil {
			return fmt.Errorf("insert reservation failed: %w", err)
		}
		return nil
	}

	runTxn := func() error {
		return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sc.StartTransaction(); err != nil {
				return err
			}
			if err := txnFn(sc); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
			return sc.CommitTransaction(sc)
		})
	}

	var lastErr error
	for attempt := 0; attempt < createTxnAttempts; attempt++ {
		lastErr = runTxn()
		if lastErr == nil || errors.Is(lastErr, ErrDateRangeConflict) {
			return lastErr
		}
		if !isTransientTxnError(lastErr) {
			break
		}
	}
	return fmt.Errorf("reservation transaction failed: %w", lastErr)
}

// isTransientTxnError reports whether the server asked for a transaction
// retry, which is how a write conflict on the location document surfaces
// to the losing booker.
func isTransientTxnError(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.HasErrorLabel("TransientTransactionError") {
		return true
	}
	var wErr mongo.WriteException
	if errors.As(err, &wErr) && wErr.HasErrorLabel("TransientTransactionError") {
		return true
	}
	return false
}
