package model

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock quantity")
	ErrCartExceedsStock  = errors.New("cart quantity would exceed available stock")
	ErrInvalidQuantity   = errors.New("quantity must be a positive number")
)

// Product is one catalog entry. RestockAt is set exactly while a restock is
// pending, i.e. the product was driven to zero stock and the timer has not
// fired yet.
type Product struct {
	ID           int
	Name         string
	PriceCents   int64
	Stock        int
	RestockAt    *time.Time
	RestockDelay time.Duration
}

// RestockPending reports whether the product is out of stock and waiting for
// its restock deadline.
func (p Product) RestockPending() bool {
	return p.Stock == 0 && p.RestockAt != nil
}

type ProductRepository interface {
	Find(id int) (*Product, error)
	List() ([]Product, error)
	Update(product *Product) error
}
