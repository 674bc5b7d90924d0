package coordinator

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/chromic/internal/application/port/mocks"
	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/domain/geometry"
	"github.com/bnema/chromic/internal/ui/events"
)

func TestViewCoordinator_CreateLaysOutActiveView(t *testing.T) {
	h := newHarness(t)

	a := h.create(MainWindowID, "https://example.com")

	assert.Equal(t, a, h.views.Active(MainWindowID))
	assert.Equal(t, geometry.Rect{X: 0, Y: 118, Width: 1804, Height: 846}, h.surfaceOf(a).Bounds())

	activated := h.eventsOn(events.ViewActivated)
	require.Len(t, activated, 1)
	assert.Equal(t, a, activated[0].ViewID)
	assert.Equal(t, MainWindowID, activated[0].WindowID)
}

func TestViewCoordinator_CreateWithoutURLLoadsHomePage(t *testing.T) {
	h := newHarness(t)

	a := h.create(MainWindowID, "")
	h.drain()

	v, ok := h.views.Get(a)
	require.True(t, ok)
	assert.Equal(t, "chromic://home", v.URL)
	assert.Equal(t, "Home", v.Title)
}

func TestViewCoordinator_CreateInUnknownWindow(t *testing.T) {
	h := newHarness(t)

	_, err := h.views.Create(h.ctx, "nope", "https://example.com")

	assert.ErrorIs(t, err, entity.ErrWindowNotFound)
	assert.Empty(t, h.views.Snapshot(""))
}

func TestViewCoordinator_CreateSurfaceFailure(t *testing.T) {
	factory := mocks.NewMockSurfaceFactory(t)
	factory.EXPECT().Create(mock.Anything).Return(nil, errors.New("engine unavailable"))
	h := newHarnessWith(t, factory)

	_, err := h.views.Create(h.ctx, MainWindowID, "https://example.com")

	require.Error(t, err)
	assert.Empty(t, h.views.Snapshot(""))
	assert.Empty(t, h.eventsOn(events.ViewActivated))
}

func TestViewCoordinator_SurfaceEventsBecomePatches(t *testing.T) {
	h := newHarness(t)

	a := h.create(MainWindowID, "https://www.example.com/docs")
	h.events = nil
	h.drain()

	v, _ := h.views.Get(a)
	assert.Equal(t, "https://www.example.com/docs", v.URL)
	assert.Equal(t, "example.com", v.Title)
	assert.False(t, v.Loading)

	updates := h.eventsOn(events.ViewUpdated)
	require.NotEmpty(t, updates)
	first, last := updates[0].Patch, updates[len(updates)-1].Patch
	require.NotNil(t, first.Loading)
	assert.True(t, *first.Loading)
	require.NotNil(t, last.Loading)
	assert.False(t, *last.Loading)
	require.NotNil(t, last.Title)
	assert.Equal(t, "example.com", *last.Title)
	for _, e := range updates {
		assert.Equal(t, a, e.ViewID)
		assert.Equal(t, MainWindowID, e.WindowID)
	}
}

func TestViewCoordinator_LoadFailureEndsLoading(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://example.com")
	h.drain()
	h.events = nil

	require.NoError(t, h.views.Navigate(h.ctx, a, "https://down.invalid"))
	h.drain()

	v, _ := h.views.Get(a)
	assert.False(t, v.Loading)
	updates := h.eventsOn(events.ViewUpdated)
	require.Len(t, updates, 2)
	assert.True(t, *updates[0].Patch.Loading)
	assert.False(t, *updates[1].Patch.Loading)
	assert.Nil(t, updates[1].Patch.Title)
}

func TestViewCoordinator_FocusRequestedTwice(t *testing.T) {
	h := newHarness(t)

	a := h.create(MainWindowID, "https://example.com")
	assert.Empty(t, h.eventsOn(events.FocusRequest), "focus is deferred to later turns")
	h.drain()

	focus := h.eventsOn(events.FocusRequest)
	require.Len(t, focus, 2)
	for _, e := range focus {
		assert.Equal(t, a, e.ViewID)
		assert.Equal(t, MainWindowID, e.WindowID)
	}
}

func TestViewCoordinator_FocusSkippedForClosedView(t *testing.T) {
	h := newHarness(t)

	a := h.create(MainWindowID, "https://example.com")
	require.NoError(t, h.views.Close(h.ctx, a))
	h.drain()

	assert.Empty(t, h.eventsOn(events.FocusRequest))
}

func TestViewCoordinator_SingleActiveView(t *testing.T) {
	h := newHarness(t)

	ids := []entity.ViewID{
		h.create(MainWindowID, "https://a.example"),
		h.create(MainWindowID, "https://b.example"),
		h.create(MainWindowID, "https://c.example"),
	}
	order := []entity.ViewID{ids[0], ids[2], ids[1], ids[1], ids[0]}

	for _, id := range order {
		require.NoError(t, h.views.Activate(h.ctx, MainWindowID, id))
		assert.Equal(t, []entity.ViewID{id}, h.attachedViews(MainWindowID))
		assert.Equal(t, id, h.views.Active(MainWindowID))
	}

	for _, id := range ids {
		require.NoError(t, h.views.Close(h.ctx, id))
		assert.LessOrEqual(t, len(h.attachedViews(MainWindowID)), 1)
	}
	assert.Empty(t, h.attachedViews(MainWindowID))
	assert.Equal(t, entity.ViewID(""), h.views.Active(MainWindowID))
}

func TestViewCoordinator_ActivateUnknown(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://example.com")

	err := h.views.Activate(h.ctx, MainWindowID, "missing")
	assert.ErrorIs(t, err, entity.ErrViewNotFound)

	err = h.views.Activate(h.ctx, "other", a)
	assert.ErrorIs(t, err, entity.ErrWindowNotFound)
	assert.Equal(t, a, h.views.Active(MainWindowID))
}

func TestViewCoordinator_ActivateViewOfAnotherWindow(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://a.example")
	b := h.create(MainWindowID, "https://b.example")
	w2, err := h.views.TearOff(h.ctx, b)
	require.NoError(t, err)

	err = h.views.Activate(h.ctx, w2, a)

	assert.ErrorIs(t, err, entity.ErrViewNotFound)
	assert.Equal(t, b, h.views.Active(w2))
}

func TestViewCoordinator_CloseIsIdempotent(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://example.com")

	require.NoError(t, h.views.Close(h.ctx, a))
	require.NoError(t, h.views.Close(h.ctx, a))
	h.drain()

	closed := h.eventsOn(events.ViewClosed)
	require.Len(t, closed, 1)
	assert.Equal(t, a, closed[0].ViewID)
	assert.Equal(t, MainWindowID, closed[0].WindowID)
	assert.NotContains(t, h.views.adapters, a)
	assert.Empty(t, h.surfaces.Live())
}

func TestViewCoordinator_NextActiveIsLastCreated(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://a.example")
	b := h.create(MainWindowID, "https://b.example")
	c := h.create(MainWindowID, "https://c.example")

	require.NoError(t, h.views.Activate(h.ctx, MainWindowID, a))
	require.NoError(t, h.views.Close(h.ctx, a))
	assert.Equal(t, c, h.views.Active(MainWindowID))

	require.NoError(t, h.views.Close(h.ctx, c))
	assert.Equal(t, b, h.views.Active(MainWindowID))
	assert.Equal(t, []entity.ViewID{b}, h.attachedViews(MainWindowID))
}

func TestViewCoordinator_CloseInactiveKeepsActive(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://a.example")
	b := h.create(MainWindowID, "https://b.example")
	h.events = nil

	require.NoError(t, h.views.Close(h.ctx, a))

	assert.Equal(t, b, h.views.Active(MainWindowID))
	assert.Empty(t, h.eventsOn(events.ViewActivated))
}

func TestViewCoordinator_HistoryNavigation(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://one.example")
	h.drain()

	require.NoError(t, h.views.GoBack(h.ctx, a), "exhausted history is not an error")
	require.NoError(t, h.views.GoForward(h.ctx, a))

	require.NoError(t, h.views.Navigate(h.ctx, a, "two.example"))
	h.drain()
	v, _ := h.views.Get(a)
	assert.Equal(t, "https://two.example", v.URL)

	require.NoError(t, h.views.GoBack(h.ctx, a))
	h.drain()
	v, _ = h.views.Get(a)
	assert.Equal(t, "https://one.example", v.URL)

	require.NoError(t, h.views.GoForward(h.ctx, a))
	h.drain()
	v, _ = h.views.Get(a)
	assert.Equal(t, "https://two.example", v.URL)

	loads := h.surfaceOf(a).Loads()
	require.NoError(t, h.views.Reload(h.ctx, a))
	assert.Equal(t, loads+1, h.surfaceOf(a).Loads())

	assert.ErrorIs(t, h.views.Navigate(h.ctx, "missing", "x.example"), entity.ErrViewNotFound)
	assert.ErrorIs(t, h.views.GoBack(h.ctx, "missing"), entity.ErrViewNotFound)
}

func TestViewCoordinator_NavigateActive(t *testing.T) {
	h := newHarness(t)

	err := h.views.NavigateActive(h.ctx, MainWindowID, "example.org")
	assert.ErrorIs(t, err, entity.ErrViewNotFound)

	h.create(MainWindowID, "https://a.example")
	b := h.create(MainWindowID, "https://b.example")
	require.NoError(t, h.views.NavigateActive(h.ctx, MainWindowID, "example.org"))
	h.drain()

	v, _ := h.views.Get(b)
	assert.Equal(t, "https://example.org", v.URL)
}

func TestViewCoordinator_ListIsLiveAndRestartable(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://a.example")
	seq := h.views.List()

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, 1, count())

	b := h.create(MainWindowID, "https://b.example")
	assert.Equal(t, 2, count())

	var ids []entity.ViewID
	for info := range seq {
		ids = append(ids, info.ID)
		assert.Equal(t, MainWindowID, info.WindowID)
	}
	assert.Equal(t, []entity.ViewID{a, b}, ids)

	require.NoError(t, h.views.Close(h.ctx, a))
	assert.Equal(t, 1, count())
}

func TestViewCoordinator_TearOff(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://a.example")
	b := h.create(MainWindowID, "https://b.example")
	require.NoError(t, h.views.Activate(h.ctx, MainWindowID, a))
	h.events = nil

	w2, err := h.views.TearOff(h.ctx, a)
	require.NoError(t, err)
	require.NotEqual(t, MainWindowID, w2)

	owner, ok := h.views.WindowOf(a)
	require.True(t, ok)
	assert.Equal(t, w2, owner)

	for info := range h.views.List() {
		if info.WindowID == MainWindowID {
			assert.NotEqual(t, a, info.ID)
		}
	}
	assert.Equal(t, a, h.views.Active(w2))
	assert.Equal(t, []entity.ViewID{a}, h.attachedViews(w2))
	assert.Equal(t, b, h.views.Active(MainWindowID))
	assert.Equal(t, []entity.ViewID{b}, h.attachedViews(MainWindowID))

	syncs := h.eventsOn(events.TabsSync)
	require.Len(t, syncs, 1)
	assert.Equal(t, w2, syncs[0].WindowID)
	require.Len(t, syncs[0].Snapshot, 1)
	assert.Equal(t, a, syncs[0].Snapshot[0].ID)
	assert.Equal(t, w2, syncs[0].Snapshot[0].WindowID)

	closed := h.eventsOn(events.ViewClosed)
	require.Len(t, closed, 1)
	assert.Equal(t, MainWindowID, closed[0].WindowID)
	assert.Equal(t, a, closed[0].ViewID)

	assert.Equal(t, geometry.Rect{X: 0, Y: 118, Width: 1804, Height: 846}, h.surfaceOf(a).Bounds())
}

func TestViewCoordinator_TearOffLastViewLeavesWindowEmpty(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://a.example")

	w2, err := h.views.TearOff(h.ctx, a)
	require.NoError(t, err)

	assert.Equal(t, entity.ViewID(""), h.views.Active(MainWindowID))
	assert.Empty(t, h.attachedViews(MainWindowID))
	assert.Equal(t, a, h.views.Active(w2))
	assert.ElementsMatch(t, []entity.WindowID{MainWindowID, w2}, h.windows.IDs())
}

func TestViewCoordinator_AbortTearOffRestoresView(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://a.example")
	b := h.create(MainWindowID, "https://b.example")
	require.NoError(t, h.views.Activate(h.ctx, MainWindowID, a))
	require.NoError(t, h.panels.Open(h.ctx, a, entity.URLSource("https://reader.example.com")))

	nw, err := h.windows.Open(h.ctx)
	require.NoError(t, err)
	_, err = h.views.viewsUC.Move(h.ctx, h.views.views, a, nw.ID())
	require.NoError(t, err)
	h.panels.hideIn(MainWindowID, a)
	h.window(MainWindowID).Detach(h.surfaceOf(a))
	require.NoError(t, h.views.Activate(h.ctx, nw.ID(), a))

	h.views.abortTearOff(h.ctx, a, MainWindowID, nw, true)
	h.drain()

	assert.Equal(t, []entity.WindowID{MainWindowID}, h.windows.IDs())
	assert.True(t, h.window(nw.ID()).IsClosed())
	assert.False(t, h.lastClosed)

	owner, ok := h.views.WindowOf(a)
	require.True(t, ok)
	assert.Equal(t, MainWindowID, owner)
	assert.Equal(t, a, h.views.Active(MainWindowID))
	assert.Equal(t, []entity.ViewID{a}, h.attachedViews(MainWindowID))
	assert.True(t, h.panels.IsAttached(a))
	assert.Len(t, h.views.Snapshot(MainWindowID), 2)

	_, ok = h.views.Get(b)
	assert.True(t, ok)
}

func TestViewCoordinator_TearOffWindowFailureKeepsView(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://a.example")
	h.windows.idGenerator = func() string { return "dup" }
	_, err := h.windows.Open(h.ctx)
	require.NoError(t, err)

	_, err = h.views.TearOff(h.ctx, a)

	require.Error(t, err)
	owner, _ := h.views.WindowOf(a)
	assert.Equal(t, MainWindowID, owner)
	assert.Equal(t, a, h.views.Active(MainWindowID))
	assert.Equal(t, []entity.ViewID{a}, h.attachedViews(MainWindowID))
	assert.Equal(t, 2, h.windows.Count())
}

func TestViewCoordinator_TearOffUnknown(t *testing.T) {
	h := newHarness(t)

	_, err := h.views.TearOff(h.ctx, "missing")

	assert.ErrorIs(t, err, entity.ErrViewNotFound)
	assert.Equal(t, 1, h.windows.Count())
}

func TestViewCoordinator_SnapshotPerWindow(t *testing.T) {
	h := newHarness(t)
	a := h.create(MainWindowID, "https://a.example")
	b := h.create(MainWindowID, "https://b.example")
	w2, err := h.views.TearOff(h.ctx, b)
	require.NoError(t, err)

	ids := func(infos []entity.ViewInfo) []entity.ViewID {
		var out []entity.ViewID
		for _, info := range infos {
			out = append(out, info.ID)
		}
		return out
	}
	assert.Equal(t, []entity.ViewID{a}, ids(h.views.Snapshot(MainWindowID)))
	assert.Equal(t, []entity.ViewID{b}, ids(h.views.Snapshot(w2)))
	all := ids(h.views.Snapshot(""))
	assert.True(t, slices.Contains(all, a) && slices.Contains(all, b))
}
