package transport

import (
	"fmt"

	"store/pkg/domain/model"
	"store/pkg/domain/service"
)

// AlertFeed buffers restock notifications between ticks so the loop can show
// them on the next render instead of interleaving with a view.
type AlertFeed struct {
	pending []string
}

var _ service.EventDispatcher = (*AlertFeed)(nil)

func NewAlertFeed() *AlertFeed {
	return &AlertFeed{}
}

func (f *AlertFeed) Dispatch(event service.Event) error {
	if e, ok := event.(model.ProductRestocked); ok {
		f.pending = append(f.pending, fmt.Sprintf("Restocked %s!", e.Name))
	}
	return nil
}

// Drain returns and forgets the buffered notifications.
func (f *AlertFeed) Drain() []string {
	msgs := f.pending
	f.pending = nil
	return msgs
}
