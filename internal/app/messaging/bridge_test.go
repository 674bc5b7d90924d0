package messaging

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/ui/events"
)

func TestBridge_TranslatesAndFiltersByWindow(t *testing.T) {
	router := events.NewRouter(context.Background())
	var got []PushEvent
	b := NewBridge(router, "main", func(e PushEvent) { got = append(got, e) })

	router.Updated("main", "v1", entity.Patch{Loading: entity.Ptr(true)})
	router.Activated("main", "v1")
	router.Activated("other", "v9")
	router.Closed("main", "v1")
	router.Sync("main", nil)
	router.Focus("main", "v1")

	require.Len(t, got, 5)
	assert.Equal(t, EventTabsUpdated, got[0].Event)
	assert.Equal(t, UpdatedPayload{ViewID: "v1", Patch: entity.Patch{Loading: entity.Ptr(true)}}, got[0].Payload)
	assert.Equal(t, EventTabsActivated, got[1].Event)
	assert.Equal(t, ViewPayload{ViewID: "v1"}, got[1].Payload)
	assert.Equal(t, EventTabsClosed, got[2].Event)
	assert.Equal(t, EventTabsSync, got[3].Event)
	assert.Equal(t, []entity.ViewInfo{}, got[3].Payload)
	assert.Equal(t, EventFocusRequestAddressBar, got[4].Event)
	for _, e := range got {
		assert.Equal(t, entity.WindowID("main"), e.Window)
	}

	b.Close()
	b.Close()
	router.Activated("main", "v1")
	assert.Len(t, got, 5)
	for _, ch := range events.Channels {
		assert.Equal(t, 0, router.SubscriberCount(ch))
	}
}

func TestBridge_AllWindows(t *testing.T) {
	router := events.NewRouter(context.Background())
	var windows []entity.WindowID
	NewBridge(router, "", func(e PushEvent) { windows = append(windows, e.Window) })

	router.Activated("main", "v1")
	router.Activated("window-2", "v2")

	assert.Equal(t, []entity.WindowID{"main", "window-2"}, windows)
}

func TestPushEvent_JSON(t *testing.T) {
	push, ok := Translate(events.Event{
		Channel:  events.ViewUpdated,
		WindowID: "main",
		ViewID:   "v1",
		Patch:    entity.Patch{Title: entity.Ptr("Docs")},
	})
	require.True(t, ok)

	data, err := json.Marshal(push)
	require.NoError(t, err)
	assert.JSONEq(t, `{"window":"main","event":"tabs.updated","payload":{"viewId":"v1","patch":{"title":"Docs"}}}`, string(data))

	_, ok = Translate(events.Event{Channel: "bogus"})
	assert.False(t, ok)
}
