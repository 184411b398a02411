package service

import (
	"math/rand"
	"time"

	"store/pkg/domain/model"
)

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

// StockConfig tunes the lifecycle engine. Zero values are replaced with the
// defaults the store has always shipped with.
type StockConfig struct {
	DepleteWindow time.Duration
	RestockMin    int
	RestockMax    int
}

const (
	defaultDepleteWindow = 120 * time.Second
	defaultRestockMin    = 5
	defaultRestockMax    = 20
)

// StockService keeps product availability moving over wall-clock time.
// Depletion and restock are lazy polling checks driven by the control loop,
// not background timers; within one tick depletion must run before restock.
type StockService interface {
	DepleteRandomly() error
	Restock() error
	RestockCountdown(product model.Product) (time.Duration, bool)
}

func NewStockService(repo model.ProductRepository, dispatcher EventDispatcher, now func() time.Time, rng *rand.Rand, cfg StockConfig) StockService {
	if cfg.DepleteWindow <= 0 {
		cfg.DepleteWindow = defaultDepleteWindow
	}
	if cfg.RestockMin <= 0 {
		cfg.RestockMin = defaultRestockMin
	}
	if cfg.RestockMax < cfg.RestockMin {
		cfg.RestockMax = defaultRestockMax
	}
	return &stockService{
		repo:       repo,
		dispatcher: dispatcher,
		now:        now,
		rng:        rng,
		cfg:        cfg,
		lastCheck:  now(),
	}
}

type stockService struct {
	repo       model.ProductRepository
	dispatcher EventDispatcher
	now        func() time.Time
	rng        *rand.Rand
	cfg        StockConfig
	lastCheck  time.Time
}

// DepleteRandomly forces one random in-stock product to zero and arms its
// restock timer, at most once per deplete window. The window is measured from
// the last check, not the last depletion, so it advances even when nothing
// qualifies.
func (s *stockService) DepleteRandomly() error {
	now := s.now()
	if now.Sub(s.lastCheck) < s.cfg.DepleteWindow {
		return nil
	}
	s.lastCheck = now

	products, err := s.repo.List()
	if err != nil {
		return err
	}
	inStock := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Stock > 0 {
			inStock = append(inStock, p)
		}
	}
	if len(inStock) == 0 {
		return nil
	}

	victim := inStock[s.rng.Intn(len(inStock))]
	victim.Stock = 0
	deadline := now
	victim.RestockAt = &deadline
	if err := s.repo.Update(&victim); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductDepleted{ProductID: victim.ID, Name: victim.Name})
	return nil
}

// Restock replenishes every product whose restock deadline has elapsed to a
// random quantity in [RestockMin, RestockMax]. Products are processed
// independently; several may restock in the same call.
func (s *stockService) Restock() error {
	now := s.now()
	products, err := s.repo.List()
	if err != nil {
		return err
	}
	for _, p := range products {
		if !p.RestockPending() {
			continue
		}
		if now.Sub(*p.RestockAt) < p.RestockDelay {
			continue
		}
		p.Stock = s.cfg.RestockMin + s.rng.Intn(s.cfg.RestockMax-s.cfg.RestockMin+1)
		p.RestockAt = nil
		if err := s.repo.Update(&p); err != nil {
			return err
		}
		_ = s.dispatcher.Dispatch(model.ProductRestocked{ProductID: p.ID, Name: p.Name, NewStock: p.Stock})
	}
	return nil
}

// RestockCountdown reports the time left before the product becomes eligible
// for restock. A non-positive remainder with pending=true means the restock
// will be applied on the next tick.
func (s *stockService) RestockCountdown(product model.Product) (time.Duration, bool) {
	if !product.RestockPending() {
		return 0, false
	}
	return product.RestockDelay - s.now().Sub(*product.RestockAt), true
}
