package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatcherDeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	var seen []string

	d.Subscribe(EventQuoteSent, func(_ context.Context, e Event) error {
		seen = append(seen, "first:"+e.QuoteID)
		return errors.New("boom")
	})
	d.Subscribe(EventQuoteSent, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.QuoteID)
		return nil
	})
	d.Subscribe(EventQuoteUpdated, func(context.Context, Event) error {
		seen = append(seen, "unexpected")
		return nil
	})

	d.Publish(context.Background(), NewEvent(EventQuoteSent, "q1", Actor{Admin: true}, nil))

	require.Equal(t, []string{"first:q1", "second:q1"}, seen)
}

func TestNewEventStampsIdentity(t *testing.T) {
	a := NewEvent(EventQuoteSubmitted, "q1", Actor{}, QuoteSubmittedPayload{Guest: true})
	b := NewEvent(EventQuoteSubmitted, "q1", Actor{}, nil)
	require.NotEqual(t, a.ID, b.ID)
	require.False(t, a.Timestamp.IsZero())
}
