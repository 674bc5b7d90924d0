package entity

import "errors"

var (
	// ErrViewNotFound is returned when an operation references an unknown view.
	ErrViewNotFound = errors.New("view not found")
	// ErrPanelNotFound is returned when a view has no side panel.
	ErrPanelNotFound = errors.New("side panel not found")
	// ErrWindowNotFound is returned when an operation references an unknown window.
	ErrWindowNotFound = errors.New("window not found")
	// ErrSurfaceLoadFailed marks a content surface that failed to load.
	ErrSurfaceLoadFailed = errors.New("surface load failed")
)

// Ptr returns a pointer to v. Used to build patches.
func Ptr[T any](v T) *T {
	return &v
}
