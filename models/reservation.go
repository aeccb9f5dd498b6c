package models

import "time"

// ReservationState is the lifecycle state of a reservation.
type ReservationState string

const (
	StatePending   ReservationState = "PENDING"
	StateConfirmed ReservationState = "CONFIRMED"
	StateRefused   ReservationState = "REFUSED"
	StateCanceled  ReservationState = "CANCELED"
	StateCompleted ReservationState = "COMPLETED"
)

// Valid reports whether s is a known reservation state.
func (s ReservationState) Valid() bool {
	switch s {
	case StatePending, StateConfirmed, StateRefused, StateCanceled, StateCompleted:
		return true
	}
	return false
}

// Occupying reports whether a reservation in this state blocks the
// location's calendar. A pending request already blocks provisionally.
func (s ReservationState) Occupying() bool {
	return s == StatePending || s == StateConfirmed
}

// Terminal reports whether no further transition is defined from s.
func (s ReservationState) Terminal() bool {
	return s == StateRefused || s == StateCanceled || s == StateCompleted
}

// OccupyingStates is the set of states counted by availability queries.
var OccupyingStates = []ReservationState{StatePending, StateConfirmed}

// Reservation is a booking request against a location. Reservations are
// never deleted; refusal and cancellation are terminal states.
type Reservation struct {
	ID                  string           `bson:"id" json:"reservationId"`
	UserID              string           `bson:"user_id" json:"userId"`
	LocationID          string           `bson:"location_id" json:"locationId"`
	NbPersons           int              `bson:"nb_persons" json:"nbPersons"`
	ReservationDate     time.Time        `bson:"reservation_date" json:"reservationDate"`
	StartDate           time.Time        `bson:"start_date" json:"startDate"`
	EndDate             time.Time        `bson:"end_date" json:"endDate"`
	MessageRequest      string           `bson:"message_request,omitempty" json:"messageRequest,omitempty"`
	State               ReservationState `bson:"state" json:"state"`
	RatingClientStar    int              `bson:"rating_client_star,omitempty" json:"ratingClientStar,omitempty"`
	RatingClientComment string           `bson:"rating_client_comment,omitempty" json:"ratingClientComment,omitempty"`
	RatingHostStar      int              `bson:"rating_host_star,omitempty" json:"ratingHostStar,omitempty"`
	RatingHostComment   string           `bson:"rating_host_comment,omitempty" json:"ratingHostComment,omitempty"`
}

// AvailabilityWindow is a blocked date range, inclusive on both ends.
// Windows are ephemeral: recomputed on demand, never persisted.
type AvailabilityWindow struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}
