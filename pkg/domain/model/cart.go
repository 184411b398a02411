package model

import "sort"

// Cart holds the desired purchase quantities of one console session. It is
// reset on logout, on a committed checkout and on explicit clear; it never
// outlives the session.
type Cart struct {
	quantities map[int]int
}

func NewCart() *Cart {
	return &Cart{quantities: make(map[int]int)}
}

func (c *Cart) Quantity(productID int) int {
	return c.quantities[productID]
}

func (c *Cart) SetQuantity(productID, quantity int) {
	c.quantities[productID] = quantity
}

func (c *Cart) Clear() {
	c.quantities = make(map[int]int)
}

func (c *Cart) IsEmpty() bool {
	return len(c.quantities) == 0
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	total := 0
	for _, qty := range c.quantities {
		total += qty
	}
	return total
}

// ProductIDs returns the carted product ids in ascending order for stable
// rendering and deterministic checkout application.
func (c *Cart) ProductIDs() []int {
	ids := make([]int, 0, len(c.quantities))
	for id := range c.quantities {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Snapshot returns an independent copy of the quantities, used as the item
// set of a committed order.
func (c *Cart) Snapshot() map[int]int {
	snapshot := make(map[int]int, len(c.quantities))
	for id, qty := range c.quantities {
		snapshot[id] = qty
	}
	return snapshot
}
