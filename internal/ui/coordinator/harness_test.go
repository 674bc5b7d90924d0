package coordinator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/chromic/internal/application/port"
	"github.com/bnema/chromic/internal/application/usecase"
	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/domain/geometry"
	"github.com/bnema/chromic/internal/infrastructure/headless"
	"github.com/bnema/chromic/internal/ui/events"
	"github.com/bnema/chromic/internal/ui/mainloop"
)

type harness struct {
	t   *testing.T
	ctx context.Context

	loop          *mainloop.Loop
	router        *events.Router
	surfaces      *headless.SurfaceFactory
	windowFactory *headless.WindowFactory
	windows       *WindowController
	views         *ViewCoordinator
	panels        *PanelCoordinator

	events     []events.Event
	lastClosed bool
}

func sequentialIDs() usecase.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, nil)
}

func newHarnessWith(t *testing.T, surfaces port.SurfaceFactory) *harness {
	t.Helper()
	ctx := context.Background()

	h := &harness{t: t, ctx: ctx}
	h.loop = mainloop.New(ctx)
	h.router = events.NewRouter(ctx)
	h.surfaces = headless.NewSurfaceFactory(h.loop.Post, "")
	h.windowFactory = headless.NewWindowFactory(geometry.Bounds{Width: 2560, Height: 1440})
	if surfaces == nil {
		surfaces = h.surfaces
	}

	ids := sequentialIDs()
	h.windows = NewWindowController(ctx, WindowControllerConfig{
		Factory:     h.windowFactory,
		IDGenerator: ids,
		Options: port.WindowOptions{
			Bounds:    geometry.Bounds{Width: 1820, Height: 980},
			MinBounds: geometry.Bounds{Width: 640, Height: 640},
		},
		Post: h.loop.Post,
	})
	h.panels = NewPanelCoordinator(ctx, PanelCoordinatorConfig{
		PanelsUC: usecase.NewManagePanelsUseCase(usecase.DefaultPanelLimits()),
		Surfaces: surfaces,
		Windows:  h.windows,
		Post:     h.loop.Post,
	})
	h.views = NewViewCoordinator(ctx, ViewCoordinatorConfig{
		ViewsUC:           usecase.NewManageViewsUseCase(ids, "chromic://home"),
		Surfaces:          surfaces,
		Windows:           h.windows,
		Panels:            h.panels,
		Router:            h.router,
		Post:              h.loop.Post,
		Chrome:            geometry.DefaultChrome(),
		FocusOnFirstPaint: true,
	})
	h.windows.SetRelayout(h.views.Relayout)
	h.windows.SetOnClosed(h.views.CloseWindowViews)
	h.windows.SetOnLastClosed(func() { h.lastClosed = true })

	h.router.SubscribeAll(func(e events.Event) error {
		h.events = append(h.events, e)
		return nil
	})

	_, err := h.windows.OpenMain(ctx)
	require.NoError(t, err)
	return h
}

func (h *harness) drain() {
	h.loop.RunUntilIdle(100)
}

func (h *harness) create(windowID entity.WindowID, rawURL string) entity.ViewID {
	h.t.Helper()
	id, err := h.views.Create(h.ctx, windowID, rawURL)
	require.NoError(h.t, err)
	return id
}

func (h *harness) window(id entity.WindowID) *headless.Window {
	h.t.Helper()
	w := h.windowFactory.Get(id)
	require.NotNil(h.t, w)
	return w
}

func (h *harness) surfaceOf(viewID entity.ViewID) *headless.Surface {
	h.t.Helper()
	a, ok := h.views.adapters[viewID]
	require.True(h.t, ok, "view %s has no surface", viewID)
	return a.Surface().(*headless.Surface)
}

func (h *harness) panelSurfaces(viewID entity.ViewID) (panel, separator *headless.Surface) {
	h.t.Helper()
	ps, ok := h.panels.live[viewID]
	require.True(h.t, ok, "view %s has no panel", viewID)
	return ps.panel.Surface().(*headless.Surface), ps.separator.Surface().(*headless.Surface)
}

// attachedViews returns the views whose surface is composited in windowID.
func (h *harness) attachedViews(windowID entity.WindowID) []entity.ViewID {
	w := h.windowFactory.Get(windowID)
	var out []entity.ViewID
	for id, a := range h.views.adapters {
		if w.IsAttached(a.Surface()) {
			out = append(out, id)
		}
	}
	return out
}

func (h *harness) eventsOn(ch events.Channel) []events.Event {
	var out []events.Event
	for _, e := range h.events {
		if e.Channel == ch {
			out = append(out, e)
		}
	}
	return out
}
