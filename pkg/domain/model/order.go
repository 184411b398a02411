package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cannot check out an empty cart")

// Order is an immutable purchase record appended to a user's history at
// checkout. Items maps product id to quantity, a snapshot of the cart.
type Order struct {
	ID         uuid.UUID
	PlacedAt   time.Time
	TotalCents int64
	Items      map[int]int
}
