// Package usecase holds the stateless operations on view and panel entities.
package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/domain/url"
	"github.com/bnema/chromic/internal/logging"
)

// IDGenerator is a function type for generating unique IDs.
type IDGenerator func() string

// ManageViewsUseCase handles the bookkeeping side of the view lifecycle:
// identity, ownership, the active pointer of each window and the choice of
// the next active view. It never touches surfaces or windows.
type ManageViewsUseCase struct {
	idGenerator IDGenerator
	homePage    string
}

// NewManageViewsUseCase creates a new view management use case.
func NewManageViewsUseCase(idGenerator IDGenerator, homePage string) *ManageViewsUseCase {
	return &ManageViewsUseCase{
		idGenerator: idGenerator,
		homePage:    homePage,
	}
}

// SetHomePage changes the address loaded when a view is created without one.
func (uc *ManageViewsUseCase) SetHomePage(homePage string) {
	uc.homePage = homePage
}

// CreateViewInput contains parameters for creating a new view.
type CreateViewInput struct {
	Views    *entity.ViewList
	WindowID entity.WindowID
	URL      string // Optional; the home page is used when empty
}

// Create registers a new view owned by input.WindowID. The caller activates it.
func (uc *ManageViewsUseCase) Create(ctx context.Context, input CreateViewInput) (*entity.View, error) {
	log := logging.FromContext(ctx)

	if input.Views == nil {
		return nil, fmt.Errorf("view list is required")
	}
	if input.WindowID == "" {
		return nil, fmt.Errorf("owner window is required")
	}

	target := url.Normalize(input.URL)
	if target == "" {
		target = uc.homePage
	}

	view := entity.NewView(entity.ViewID(uc.idGenerator()), input.WindowID, target)
	input.Views.Add(view)

	log.Debug().
		Str("view_id", string(view.ID)).
		Str("window_id", string(view.WindowID)).
		Str("url", view.URL).
		Msg("view registered")

	return view, nil
}

// Activate validates that viewID belongs to windowID and records it as the
// window's active view. Returns the previously active id.
func (uc *ManageViewsUseCase) Activate(ctx context.Context, views *entity.ViewList, windowID entity.WindowID, viewID entity.ViewID) (entity.ViewID, error) {
	if views == nil {
		return "", fmt.Errorf("view list is required")
	}

	view := views.Find(viewID)
	if view == nil {
		return "", fmt.Errorf("activate %s: %w", viewID, entity.ErrViewNotFound)
	}
	if view.WindowID != windowID {
		return "", fmt.Errorf("activate %s in window %s: %w", viewID, windowID, entity.ErrViewNotFound)
	}

	previous := views.Active(windowID)
	views.SetActive(windowID, viewID)

	logging.FromContext(ctx).Debug().
		Str("from", string(previous)).
		Str("to", string(viewID)).
		Msg("active view recorded")

	return previous, nil
}

// CloseViewOutput describes what happened to the window that owned a closed view.
type CloseViewOutput struct {
	View      *entity.View
	Removed   bool
	WasActive bool
	// NextActive is the view that should become active in View.WindowID, or
	// "" when the window has no views left. Only set when WasActive.
	NextActive entity.ViewID
}

// Close removes a view. Closing an unknown view is a no-op with Removed=false.
// When the closed view was active, the most recently created remaining view
// of the same window is proposed as the next active one.
func (uc *ManageViewsUseCase) Close(ctx context.Context, views *entity.ViewList, viewID entity.ViewID) (CloseViewOutput, error) {
	if views == nil {
		return CloseViewOutput{}, fmt.Errorf("view list is required")
	}

	view := views.Find(viewID)
	if view == nil {
		logging.FromContext(ctx).Debug().Str("view_id", string(viewID)).Msg("close ignored, view not found")
		return CloseViewOutput{}, nil
	}

	wasActive := views.Active(view.WindowID) == viewID
	views.Remove(viewID)

	out := CloseViewOutput{View: view, Removed: true, WasActive: wasActive}
	if wasActive {
		if next := views.LastInWindow(view.WindowID); next != nil {
			out.NextActive = next.ID
		}
	}
	return out, nil
}

// MoveViewOutput describes a change of owning window.
type MoveViewOutput struct {
	View       *entity.View
	From       entity.WindowID
	WasActive  bool
	NextActive entity.ViewID // next active view of From, when WasActive
}

// Move transfers ownership of a view to another window. The view is not
// activated in its new window; the caller does that.
func (uc *ManageViewsUseCase) Move(ctx context.Context, views *entity.ViewList, viewID entity.ViewID, to entity.WindowID) (MoveViewOutput, error) {
	if views == nil {
		return MoveViewOutput{}, fmt.Errorf("view list is required")
	}

	view := views.Find(viewID)
	if view == nil {
		return MoveViewOutput{}, fmt.Errorf("move %s: %w", viewID, entity.ErrViewNotFound)
	}

	from := view.WindowID
	wasActive := views.Active(from) == viewID
	if wasActive {
		views.SetActive(from, "")
	}
	view.WindowID = to

	out := MoveViewOutput{View: view, From: from, WasActive: wasActive}
	if wasActive {
		if next := views.LastInWindow(from); next != nil {
			out.NextActive = next.ID
		}
	}

	logging.FromContext(ctx).Info().
		Str("view_id", string(viewID)).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("view moved to window")

	return out, nil
}

// ApplyPatch merges a patch into a view. Returns false when the view is gone.
func (uc *ManageViewsUseCase) ApplyPatch(views *entity.ViewList, viewID entity.ViewID, patch entity.Patch) (*entity.View, bool) {
	if views == nil || patch.IsEmpty() {
		return nil, false
	}
	view := views.Find(viewID)
	if view == nil {
		return nil, false
	}
	view.Apply(patch)
	return view, true
}

// Snapshot returns the views of a window in creation order. An empty window
// id returns every view.
func (uc *ManageViewsUseCase) Snapshot(views *entity.ViewList, windowID entity.WindowID) []entity.ViewInfo {
	out := make([]entity.ViewInfo, 0)
	if views == nil {
		return out
	}
	for info := range views.All() {
		if windowID == "" || info.WindowID == windowID {
			out = append(out, info)
		}
	}
	return out
}
