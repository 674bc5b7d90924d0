package messaging

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bnema/chromic/internal/domain/entity"
)

// Command names.
const (
	CmdTabsCreate          = "tabs.create"
	CmdTabsActivate        = "tabs.activate"
	CmdTabsClose           = "tabs.close"
	CmdTabsNavigate        = "tabs.navigate"
	CmdTabsBack            = "tabs.back"
	CmdTabsForward         = "tabs.forward"
	CmdTabsReload          = "tabs.reload"
	CmdTabsTearOff         = "tabs.tearOff"
	CmdTabsNavigateCurrent = "tabs.navigateCurrent"
	CmdTabsList            = "tabs.list"
	CmdTabsActive          = "tabs.active"

	CmdSidebarOpen   = "sidebar.open"
	CmdSidebarClose  = "sidebar.close"
	CmdSidebarResize = "sidebar.resize"
	CmdSidebarDrag   = "sidebar.drag"
	CmdSidebarToggle = "sidebar.toggle"
	CmdSidebarHas    = "sidebar.has"
)

// ViewService is the view registry as seen by commands.
type ViewService interface {
	Create(ctx context.Context, windowID entity.WindowID, rawURL string) (entity.ViewID, error)
	Activate(ctx context.Context, windowID entity.WindowID, viewID entity.ViewID) error
	Close(ctx context.Context, viewID entity.ViewID) error
	Navigate(ctx context.Context, viewID entity.ViewID, rawURL string) error
	NavigateActive(ctx context.Context, windowID entity.WindowID, rawURL string) error
	GoBack(ctx context.Context, viewID entity.ViewID) error
	GoForward(ctx context.Context, viewID entity.ViewID) error
	Reload(ctx context.Context, viewID entity.ViewID) error
	TearOff(ctx context.Context, viewID entity.ViewID) (entity.WindowID, error)
	Snapshot(windowID entity.WindowID) []entity.ViewInfo
	Active(windowID entity.WindowID) entity.ViewID
}

// PanelService is the side panel manager as seen by commands.
type PanelService interface {
	Open(ctx context.Context, viewID entity.ViewID, source entity.PanelSource) error
	Close(ctx context.Context, viewID entity.ViewID)
	Toggle(ctx context.Context, viewID entity.ViewID, source entity.PanelSource) (bool, error)
	Resize(ctx context.Context, viewID entity.ViewID, width int) (int, error)
	Drag(ctx context.Context, viewID entity.ViewID, deltaX int) (int, error)
	Has(viewID entity.ViewID) bool
}

type viewArgs struct {
	ViewID entity.ViewID `json:"viewId"`
	URL    string        `json:"url"`
}

type panelArgs struct {
	ViewID        entity.ViewID `json:"viewId"`
	URL           string        `json:"url"`
	LocalResource string        `json:"localResource"`
	Width         int           `json:"width"`
	DeltaX        int           `json:"deltaX"`
}

// source prefers a remote address over a local resource.
func (a panelArgs) source() (entity.PanelSource, error) {
	switch {
	case a.URL != "":
		return entity.URLSource(a.URL), nil
	case a.LocalResource != "":
		return entity.ResourceSource(a.LocalResource), nil
	}
	return entity.PanelSource{}, errors.New("url or localResource is required")
}

var errViewIDRequired = errors.New("viewId is required")

func decodeView(args json.RawMessage, requireID bool) (viewArgs, error) {
	var a viewArgs
	if err := decodeArgs(args, &a); err != nil {
		return a, err
	}
	if requireID && a.ViewID == "" {
		return a, errViewIDRequired
	}
	return a, nil
}

func decodePanel(args json.RawMessage) (panelArgs, error) {
	var a panelArgs
	if err := decodeArgs(args, &a); err != nil {
		return a, err
	}
	if a.ViewID == "" {
		return a, errViewIDRequired
	}
	return a, nil
}

// RegisterTabHandlers registers the tabs.* commands.
func RegisterTabHandlers(d *Dispatcher, views ViewService) error {
	viewOp := func(op func(ctx context.Context, viewID entity.ViewID) error) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, _ entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodeView(args, true)
			if err != nil {
				return nil, err
			}
			return nil, op(ctx, a.ViewID)
		})
	}

	handlers := map[string]CommandHandler{
		CmdTabsCreate: CommandHandlerFunc(func(ctx context.Context, windowID entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodeView(args, false)
			if err != nil {
				return nil, err
			}
			return views.Create(ctx, windowID, a.URL)
		}),
		CmdTabsActivate: CommandHandlerFunc(func(ctx context.Context, windowID entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodeView(args, true)
			if err != nil {
				return nil, err
			}
			return nil, views.Activate(ctx, windowID, a.ViewID)
		}),
		CmdTabsClose:   viewOp(views.Close),
		CmdTabsBack:    viewOp(views.GoBack),
		CmdTabsForward: viewOp(views.GoForward),
		CmdTabsReload:  viewOp(views.Reload),
		CmdTabsNavigate: CommandHandlerFunc(func(ctx context.Context, _ entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodeView(args, true)
			if err != nil {
				return nil, err
			}
			return nil, views.Navigate(ctx, a.ViewID, a.URL)
		}),
		CmdTabsNavigateCurrent: CommandHandlerFunc(func(ctx context.Context, windowID entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodeView(args, false)
			if err != nil {
				return nil, err
			}
			return nil, views.NavigateActive(ctx, windowID, a.URL)
		}),
		CmdTabsTearOff: CommandHandlerFunc(func(ctx context.Context, _ entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodeView(args, true)
			if err != nil {
				return nil, err
			}
			return views.TearOff(ctx, a.ViewID)
		}),
		CmdTabsList: CommandHandlerFunc(func(_ context.Context, windowID entity.WindowID, _ json.RawMessage) (any, error) {
			return views.Snapshot(windowID), nil
		}),
		CmdTabsActive: CommandHandlerFunc(func(_ context.Context, windowID entity.WindowID, _ json.RawMessage) (any, error) {
			return views.Active(windowID), nil
		}),
	}
	return registerAll(d, handlers)
}

// RegisterSidebarHandlers registers the sidebar.* commands.
func RegisterSidebarHandlers(d *Dispatcher, panels PanelService) error {
	handlers := map[string]CommandHandler{
		CmdSidebarOpen: CommandHandlerFunc(func(ctx context.Context, _ entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodePanel(args)
			if err != nil {
				return nil, err
			}
			src, err := a.source()
			if err != nil {
				return nil, err
			}
			return nil, panels.Open(ctx, a.ViewID, src)
		}),
		CmdSidebarToggle: CommandHandlerFunc(func(ctx context.Context, _ entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodePanel(args)
			if err != nil {
				return nil, err
			}
			src, err := a.source()
			if err != nil && !panels.Has(a.ViewID) {
				return nil, err
			}
			return panels.Toggle(ctx, a.ViewID, src)
		}),
		CmdSidebarClose: CommandHandlerFunc(func(ctx context.Context, _ entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodePanel(args)
			if err != nil {
				return nil, err
			}
			panels.Close(ctx, a.ViewID)
			return nil, nil
		}),
		CmdSidebarResize: CommandHandlerFunc(func(ctx context.Context, _ entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodePanel(args)
			if err != nil {
				return nil, err
			}
			_, err = panels.Resize(ctx, a.ViewID, a.Width)
			return nil, err
		}),
		CmdSidebarDrag: CommandHandlerFunc(func(ctx context.Context, _ entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodePanel(args)
			if err != nil {
				return nil, err
			}
			_, err = panels.Drag(ctx, a.ViewID, a.DeltaX)
			return nil, err
		}),
		CmdSidebarHas: CommandHandlerFunc(func(_ context.Context, _ entity.WindowID, args json.RawMessage) (any, error) {
			a, err := decodePanel(args)
			if err != nil {
				return nil, err
			}
			return panels.Has(a.ViewID), nil
		}),
	}
	return registerAll(d, handlers)
}

// RegisterAll registers every command.
func RegisterAll(d *Dispatcher, views ViewService, panels PanelService) error {
	if err := RegisterTabHandlers(d, views); err != nil {
		return err
	}
	return RegisterSidebarHandlers(d, panels)
}

func registerAll(d *Dispatcher, handlers map[string]CommandHandler) error {
	for name, h := range handlers {
		if err := d.Register(name, h); err != nil {
			return err
		}
	}
	return nil
}
