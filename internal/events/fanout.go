package events

import (
	"context"
	"errors"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

// Fanout publishes to every sink and joins their errors.
type Fanout []core.EventSink

var _ core.EventSink = Fanout(nil)

func (f Fanout) Publish(ctx context.Context, ev core.Event) error {
	var errs []error
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
