package models

import "time"

// Location is a bookable rental entity owned by a host user.
type Location struct {
	ID            string    `bson:"id" json:"locationId"`
	OwnerID       string    `bson:"owner_id" json:"ownerId"`
	Name          string    `bson:"name" json:"name"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	Address       string    `bson:"address,omitempty" json:"address,omitempty"`
	PricePerNight float64   `bson:"price_per_night" json:"pricePerNight"`
	MaxPersons    int       `bson:"max_persons,omitempty" json:"maxPersons,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`

	// BookingVersion is bumped inside every booking transaction for this
	// location so concurrent bookers write-conflict and serialize.
	BookingVersion int64 `bson:"booking_version,omitempty" json:"-"`
}
