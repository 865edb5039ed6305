package models

import "time"

// Service is a service category offered on the marketplace. PriceCents is the
// lead unlock price for that category and is the sole source of the checkout
// amount; client-supplied amounts are never trusted.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description,omitempty"`
	PriceCents  int64     `bson:"price_cents" json:"price_cents"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
