package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/chromic/internal/domain/entity"
)

func TestRouter_DeliversInPublishOrder(t *testing.T) {
	r := NewRouter(context.Background())

	var got []entity.ViewID
	r.Subscribe(ViewActivated, func(e Event) error {
		got = append(got, e.ViewID)
		return nil
	})

	r.Activated("w1", "a")
	r.Activated("w1", "b")
	r.Activated("w1", "c")

	assert.Equal(t, []entity.ViewID{"a", "b", "c"}, got)
}

func TestRouter_FailingListenerDoesNotBlockOthers(t *testing.T) {
	r := NewRouter(context.Background())

	delivered := 0
	r.Subscribe(ViewClosed, func(Event) error { return errors.New("ui gone") })
	r.Subscribe(ViewClosed, func(Event) error { panic("bad listener") })
	r.Subscribe(ViewClosed, func(Event) error {
		delivered++
		return nil
	})

	r.Closed("w1", "a")
	r.Closed("w1", "b")

	assert.Equal(t, 2, delivered)
}

func TestRouter_ChannelsAreIsolated(t *testing.T) {
	r := NewRouter(context.Background())

	var updates []Event
	r.Subscribe(ViewUpdated, func(e Event) error {
		updates = append(updates, e)
		return nil
	})

	r.Activated("w1", "a")
	r.Updated("w1", "a", entity.Patch{Loading: entity.Ptr(true)})

	require.Len(t, updates, 1)
	assert.True(t, *updates[0].Patch.Loading)
}

func TestRouter_Unsubscribe(t *testing.T) {
	r := NewRouter(context.Background())

	calls := 0
	unsub := r.SubscribeAll(func(Event) error {
		calls++
		return nil
	})
	r.Focus("w1", "a")
	r.Sync("w1", nil)

	unsub()
	unsub()
	r.Focus("w1", "a")

	assert.Equal(t, 2, calls)
	for _, ch := range Channels {
		assert.Zero(t, r.SubscriberCount(ch), ch)
	}
}

func TestRouter_UnsubscribeDuringDelivery(t *testing.T) {
	r := NewRouter(context.Background())

	var unsub func()
	first, second := 0, 0
	unsub = r.Subscribe(TabsSync, func(Event) error {
		first++
		unsub()
		return nil
	})
	r.Subscribe(TabsSync, func(Event) error {
		second++
		return nil
	})

	r.Sync("w1", nil)
	r.Sync("w1", nil)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}
