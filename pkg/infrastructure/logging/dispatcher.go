package logging

import (
	log "github.com/sirupsen/logrus"

	"store/pkg/domain/model"
	"store/pkg/domain/service"
)

// Dispatcher records every domain event with structured fields and then
// forwards it to an optional next dispatcher (the console alert feed).
type Dispatcher struct {
	next service.EventDispatcher
}

var _ service.EventDispatcher = (*Dispatcher)(nil)

func NewDispatcher(next service.EventDispatcher) *Dispatcher {
	return &Dispatcher{next: next}
}

func (d *Dispatcher) Dispatch(event service.Event) error {
	entry := log.WithField("event", event.Type())
	switch e := event.(type) {
	case model.ProductDepleted:
		entry.WithFields(log.Fields{"productID": e.ProductID, "name": e.Name}).Info("product stock depleted")
	case model.ProductRestocked:
		entry.WithFields(log.Fields{"productID": e.ProductID, "name": e.Name, "newStock": e.NewStock}).Info("product restocked")
	case model.UserRegistered:
		entry.WithFields(log.Fields{"userID": e.UserID, "username": e.Username}).Info("user registered")
	case model.UserSignedIn:
		entry.WithFields(log.Fields{"userID": e.UserID, "username": e.Username}).Info("user signed in")
	case model.OrderPlaced:
		entry.WithFields(log.Fields{"orderID": e.OrderID, "userID": e.UserID, "totalCents": e.TotalCents, "lines": e.Lines}).Info("order placed")
	default:
		entry.Info("domain event")
	}

	if d.next != nil {
		return d.next.Dispatch(event)
	}
	return nil
}
