package memory

import (
	"time"

	"github.com/google/uuid"

	"store/pkg/domain/model"
)

// ProductCatalog is the fixed in-memory catalog. Products are created once
// at startup and only mutated, never added or removed, so List preserves the
// seed order. Reads return copies so callers cannot bypass Update.
type ProductCatalog struct {
	order []int
	byID  map[int]*model.Product
}

var _ model.ProductRepository = (*ProductCatalog)(nil)

func NewProductCatalog(products []model.Product) *ProductCatalog {
	c := &ProductCatalog{byID: make(map[int]*model.Product, len(products))}
	for _, p := range products {
		stored := p
		c.order = append(c.order, p.ID)
		c.byID[p.ID] = &stored
	}
	return c
}

func (c *ProductCatalog) Find(id int) (*model.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	clone := cloneProduct(*p)
	return &clone, nil
}

func (c *ProductCatalog) List() ([]model.Product, error) {
	out := make([]model.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, cloneProduct(*c.byID[id]))
	}
	return out, nil
}

func (c *ProductCatalog) Update(product *model.Product) error {
	if _, ok := c.byID[product.ID]; !ok {
		return model.ErrProductNotFound
	}
	stored := cloneProduct(*product)
	c.byID[product.ID] = &stored
	return nil
}

func cloneProduct(p model.Product) model.Product {
	if p.RestockAt != nil {
		at := *p.RestockAt
		p.RestockAt = &at
	}
	return p
}

// SeedCatalog returns the stock the store opens with.
func SeedCatalog(restockDelay time.Duration) []model.Product {
	return []model.Product{
		{ID: 1, Name: "Water Bottle", PriceCents: 1500, Stock: 20, RestockDelay: restockDelay},
		{ID: 2, Name: "Healthy Snacks", PriceCents: 599, Stock: 30, RestockDelay: restockDelay},
		{ID: 3, Name: "Toothbrush Set", PriceCents: 850, Stock: 15, RestockDelay: restockDelay},
		{ID: 4, Name: "Notebook and Pen", PriceCents: 1000, Stock: 25, RestockDelay: restockDelay},
		{ID: 5, Name: "First Aid Kit", PriceCents: 2500, Stock: 10, RestockDelay: restockDelay},
	}
}

// UserRegistry is the growable in-memory account store.
type UserRegistry struct {
	byID   map[uuid.UUID]*model.User
	byName map[string]uuid.UUID
}

var _ model.UserRepository = (*UserRegistry)(nil)

func NewUserRegistry() *UserRegistry {
	return &UserRegistry{
		byID:   make(map[uuid.UUID]*model.User),
		byName: make(map[string]uuid.UUID),
	}
}

func (r *UserRegistry) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *UserRegistry) Create(user *model.User) error {
	if _, exists := r.byName[user.Username]; exists {
		return model.ErrUsernameTaken
	}
	stored := cloneUser(*user)
	r.byID[user.ID] = &stored
	r.byName[user.Username] = user.ID
	return nil
}

func (r *UserRegistry) Update(user *model.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	stored := cloneUser(*user)
	r.byID[user.ID] = &stored
	return nil
}

func (r *UserRegistry) FindByUsername(username string) (*model.User, error) {
	id, ok := r.byName[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	clone := cloneUser(*r.byID[id])
	return &clone, nil
}

func cloneUser(u model.User) model.User {
	orders := make([]model.Order, len(u.Orders))
	copy(orders, u.Orders)
	u.Orders = orders
	return u
}
