package tests

import (
	"time"

	"github.com/google/uuid"

	"store/pkg/domain/model"
	"store/pkg/domain/service"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time { return c.current }

func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

var _ model.ProductRepository = &mockProductRepository{}

type mockProductRepository struct {
	order []int
	store map[int]*model.Product
}

func newMockProducts(products ...model.Product) *mockProductRepository {
	repo := &mockProductRepository{store: make(map[int]*model.Product)}
	for _, p := range products {
		stored := p
		repo.order = append(repo.order, p.ID)
		repo.store[p.ID] = &stored
	}
	return repo
}

func (m *mockProductRepository) Find(id int) (*model.Product, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProductRepository) List() ([]model.Product, error) {
	out := make([]model.Product, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.store[id])
	}
	return out, nil
}

func (m *mockProductRepository) Update(p *model.Product) error {
	if _, ok := m.store[p.ID]; !ok {
		return model.ErrProductNotFound
	}
	stored := *p
	m.store[p.ID] = &stored
	return nil
}

var _ model.UserRepository = &mockUserRepository{}

type mockUserRepository struct {
	byID   map[uuid.UUID]*model.User
	byName map[string]uuid.UUID
}

func newMockUsers() *mockUserRepository {
	return &mockUserRepository{
		byID:   make(map[uuid.UUID]*model.User),
		byName: make(map[string]uuid.UUID),
	}
}

func (m *mockUserRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockUserRepository) Create(user *model.User) error {
	if _, exists := m.byName[user.Username]; exists {
		return model.ErrUsernameTaken
	}
	stored := *user
	m.byID[user.ID] = &stored
	m.byName[user.Username] = user.ID
	return nil
}

func (m *mockUserRepository) Update(user *model.User) error {
	if _, ok := m.byID[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	stored := *user
	m.byID[user.ID] = &stored
	return nil
}

func (m *mockUserRepository) FindByUsername(username string) (*model.User, error) {
	id, ok := m.byName[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	clone := *m.byID[id]
	return &clone, nil
}

var _ service.EventDispatcher = &mockEventDispatcher{}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
