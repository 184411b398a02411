package model

import "github.com/google/uuid"

type ProductDepleted struct {
	ProductID int
	Name      string
}

func (e ProductDepleted) Type() string { return "ProductDepleted" }

type ProductRestocked struct {
	ProductID int
	Name      string
	NewStock  int
}

func (e ProductRestocked) Type() string { return "ProductRestocked" }

type UserRegistered struct {
	UserID   uuid.UUID
	Username string
}

func (e UserRegistered) Type() string { return "UserRegistered" }

type UserSignedIn struct {
	UserID   uuid.UUID
	Username string
}

func (e UserSignedIn) Type() string { return "UserSignedIn" }

type OrderPlaced struct {
	OrderID    uuid.UUID
	UserID     uuid.UUID
	TotalCents int64
	Lines      int
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }
