package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/domain/geometry"
	"github.com/bnema/chromic/internal/logging"
)

// PanelLimits bounds side panel widths.
type PanelLimits struct {
	DefaultWidth int
	MinWidth     int
	SideInset    int
}

// DefaultPanelLimits returns the stock limits.
func DefaultPanelLimits() PanelLimits {
	return PanelLimits{
		DefaultWidth: 800,
		MinWidth:     geometry.MinPanelWidth,
		SideInset:    geometry.DefaultSideInset,
	}
}

// ManagePanelsUseCase handles side panel registration and width bookkeeping.
type ManagePanelsUseCase struct {
	limits PanelLimits
}

// NewManagePanelsUseCase creates a new side panel use case.
func NewManagePanelsUseCase(limits PanelLimits) *ManagePanelsUseCase {
	if limits.MinWidth <= 0 {
		limits.MinWidth = geometry.MinPanelWidth
	}
	if limits.DefaultWidth < limits.MinWidth {
		limits.DefaultWidth = limits.MinWidth
	}
	return &ManagePanelsUseCase{limits: limits}
}

// SetLimits replaces the width limits. Existing panels keep their width
// until the next resize.
func (uc *ManagePanelsUseCase) SetLimits(limits PanelLimits) {
	*uc = *NewManagePanelsUseCase(limits)
}

// Limits returns the current width limits.
func (uc *ManagePanelsUseCase) Limits() PanelLimits {
	return uc.limits
}

// Open registers a panel for viewID at the default width. A previous panel
// for the same view is replaced; replaced reports whether one existed.
func (uc *ManagePanelsUseCase) Open(ctx context.Context, panels *entity.PanelSet, viewID entity.ViewID, source entity.PanelSource) (panel *entity.SidePanel, replaced bool, err error) {
	if panels == nil {
		return nil, false, fmt.Errorf("panel set is required")
	}
	if source.IsZero() {
		return nil, false, fmt.Errorf("panel source is required")
	}

	replaced = panels.Get(viewID) != nil
	panel = &entity.SidePanel{
		ViewID: viewID,
		Source: source,
		Width:  uc.limits.DefaultWidth,
	}
	panels.Put(panel)

	logging.FromContext(ctx).Debug().
		Str("view_id", string(viewID)).
		Str("source", source.Value).
		Bool("replaced", replaced).
		Msg("side panel registered")

	return panel, replaced, nil
}

// Close unregisters the panel of viewID. Returns nil when none existed.
func (uc *ManagePanelsUseCase) Close(panels *entity.PanelSet, viewID entity.ViewID) *entity.SidePanel {
	if panels == nil {
		return nil
	}
	panel := panels.Get(viewID)
	if panel == nil {
		return nil
	}
	panels.Delete(viewID)
	return panel
}

// Resize stores a new width for the panel of viewID, clamped to
// [MinWidth, windowWidth - SideInset]. Returns the stored width.
func (uc *ManagePanelsUseCase) Resize(ctx context.Context, panels *entity.PanelSet, viewID entity.ViewID, width, windowWidth int) (int, error) {
	if panels == nil {
		return 0, fmt.Errorf("panel set is required")
	}
	panel := panels.Get(viewID)
	if panel == nil {
		return 0, fmt.Errorf("resize panel of %s: %w", viewID, entity.ErrPanelNotFound)
	}

	clamped := geometry.ClampPanelWidth(width, windowWidth, uc.limits.MinWidth, uc.limits.SideInset)
	if clamped != width {
		logging.FromContext(ctx).Trace().
			Int("requested", width).
			Int("clamped", clamped).
			Msg("panel width clamped")
	}
	panel.Width = clamped
	return clamped, nil
}

// Drag applies a separator drag of deltaX pixels. Dragging left (negative
// delta) widens the panel.
func (uc *ManagePanelsUseCase) Drag(ctx context.Context, panels *entity.PanelSet, viewID entity.ViewID, deltaX, windowWidth int) (int, error) {
	if panels == nil {
		return 0, fmt.Errorf("panel set is required")
	}
	panel := panels.Get(viewID)
	if panel == nil {
		return 0, fmt.Errorf("drag panel of %s: %w", viewID, entity.ErrPanelNotFound)
	}
	return uc.Resize(ctx, panels, viewID, panel.Width-deltaX, windowWidth)
}

// Fit returns the width a panel can occupy in a window windowWidth pixels
// wide. The stored width is left alone so it comes back when the window grows.
func (uc *ManagePanelsUseCase) Fit(width, windowWidth int) int {
	if width <= 0 {
		return 0
	}
	return geometry.ClampPanelWidth(width, windowWidth, uc.limits.MinWidth, uc.limits.SideInset)
}

// Width returns the stored width of a panel, or the default width when the
// view has none.
func (uc *ManagePanelsUseCase) Width(panels *entity.PanelSet, viewID entity.ViewID) int {
	if panels != nil {
		if panel := panels.Get(viewID); panel != nil {
			return panel.Width
		}
	}
	return uc.limits.DefaultWidth
}
