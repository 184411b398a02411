package service

import (
	"time"

	"store/pkg/domain/model"
)

// Line is one rendered cart entry with its live subtotal.
type Line struct {
	Product       model.Product
	Quantity      int
	SubtotalCents int64
}

// CartService guards the path from intent to buy (cart) to committed
// purchase (checkout).
type CartService interface {
	Add(productID, quantity int) error
	Quantity(productID int) int
	Lines() ([]Line, error)
	TotalCents() (int64, error)
	Clear()
	IsEmpty() bool
	ItemCount() int
	Checkout(user *model.User) (*model.Order, error)
}

func NewCartService(products model.ProductRepository, users model.UserRepository, cart *model.Cart, dispatcher EventDispatcher, now func() time.Time) CartService {
	return &cartService{
		products:   products,
		users:      users,
		cart:       cart,
		dispatcher: dispatcher,
		now:        now,
	}
}

type cartService struct {
	products   model.ProductRepository
	users      model.UserRepository
	cart       *model.Cart
	dispatcher EventDispatcher
	now        func() time.Time
}

// Add validates the requested quantity against current stock, including the
// quantity already held in the cart, and stores the new cumulative amount.
// Stock is not checked again until checkout.
func (s *cartService) Add(productID, quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	product, err := s.products.Find(productID)
	if err != nil {
		return err
	}
	if quantity > product.Stock {
		return model.ErrInsufficientStock
	}
	held := s.cart.Quantity(productID)
	if held+quantity > product.Stock {
		return model.ErrCartExceedsStock
	}
	s.cart.SetQuantity(productID, held+quantity)
	return nil
}

func (s *cartService) Quantity(productID int) int {
	return s.cart.Quantity(productID)
}

func (s *cartService) Lines() ([]Line, error) {
	ids := s.cart.ProductIDs()
	lines := make([]Line, 0, len(ids))
	for _, id := range ids {
		product, err := s.products.Find(id)
		if err != nil {
			return nil, err
		}
		qty := s.cart.Quantity(id)
		lines = append(lines, Line{
			Product:       *product,
			Quantity:      qty,
			SubtotalCents: product.PriceCents * int64(qty),
		})
	}
	return lines, nil
}

// TotalCents sums the cart against live catalog prices, not the prices seen
// at add time.
func (s *cartService) TotalCents() (int64, error) {
	lines, err := s.Lines()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, line := range lines {
		total += line.SubtotalCents
	}
	return total, nil
}

func (s *cartService) Clear() {
	s.cart.Clear()
}

func (s *cartService) IsEmpty() bool {
	return s.cart.IsEmpty()
}

func (s *cartService) ItemCount() int {
	return s.cart.ItemCount()
}

// Checkout commits the cart: stock is decremented per line without
// re-validation (it can go negative if a random depletion fired since the
// item was added), products hitting exactly zero arm their restock timer, an
// immutable order is appended to the user, and the cart is cleared.
func (s *cartService) Checkout(user *model.User) (*model.Order, error) {
	if user == nil {
		return nil, model.ErrNotSignedIn
	}
	if s.cart.IsEmpty() {
		return nil, model.ErrEmptyCart
	}

	total, err := s.TotalCents()
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, id := range s.cart.ProductIDs() {
		product, err := s.products.Find(id)
		if err != nil {
			return nil, err
		}
		product.Stock -= s.cart.Quantity(id)
		if product.Stock == 0 {
			deadline := now
			product.RestockAt = &deadline
		}
		if err := s.products.Update(product); err != nil {
			return nil, err
		}
	}

	orderID, err := s.users.NextID()
	if err != nil {
		return nil, err
	}
	order := model.Order{
		ID:         orderID,
		PlacedAt:   now,
		TotalCents: total,
		Items:      s.cart.Snapshot(),
	}
	user.Orders = append(user.Orders, order)
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	s.cart.Clear()

	_ = s.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:    order.ID,
		UserID:     user.ID,
		TotalCents: order.TotalCents,
		Lines:      len(order.Items),
	})
	return &order, nil
}
