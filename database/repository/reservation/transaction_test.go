package reservationRepo

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestOccupyingOverlapFilter(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	filter := occupyingOverlapFilter("loc-1", start, end)

	if filter["location_id"] != "loc-1" {
		t.Errorf("location_id = %v", filter["location_id"])
	}
	states := filter["state"].(bson.M)["$in"].([]models.ReservationState)
	if len(states) != 2 || states[0] != models.StatePending || states[1] != models.StateConfirmed {
		t.Errorf("occupying states = %v", states)
	}
	// Inclusive bounds: existing start <= candidate end, existing end >=
	// candidate start, so a stay ending on the candidate's start day matches.
	if got := filter["start_date"].(bson.M)["$lte"]; got != end {
		t.Errorf("start_date bound = %v, want %v", got, end)
	}
	if got := filter["end_date"].(bson.M)["$gte"]; got != start {
		t.Errorf("end_date bound = %v, want %v", got, start)
	}
}

func TestIsTransientTxnError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{
			"labeled command error",
			mongo.CommandError{Code: 112, Labels: []string{"TransientTransactionError"}},
			true,
		},
		{
			"wrapped labeled command error",
			fmt.Errorf("commit: %w", mongo.CommandError{Labels: []string{"TransientTransactionError"}}),
			true,
		},
		{
			"unlabeled command error",
			mongo.CommandError{Code: 11000},
			false,
		},
		{"range conflict", ErrDateRangeConflict, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isTransientTxnError(tc.err); got != tc.want {
				t.Errorf("isTransientTxnError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
