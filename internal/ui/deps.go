// Package ui assembles the shell core: the main loop, the event router, the
// coordinators and the command interface, owned by one App.
package ui

import (
	"context"

	"github.com/bnema/chromic/internal/application/port"
	"github.com/bnema/chromic/internal/application/usecase"
	"github.com/bnema/chromic/internal/infrastructure/config"
	"github.com/bnema/chromic/internal/ui/mainloop"
)

// Dependencies holds all injected dependencies for the shell core.
// This struct is created once at startup and passed to New.
type Dependencies struct {
	// Core context and configuration
	Ctx    context.Context
	Config *config.Config

	// Loop serializes every mutation. Surface and window factories usually
	// post their callbacks onto it, so it is created before them.
	Loop *mainloop.Loop

	// Collaborators
	Surfaces port.SurfaceFactory
	Windows  port.WindowFactory

	// IDGenerator names views and windows. Defaults to random UUIDs.
	IDGenerator usecase.IDGenerator
}

// Validate checks that all required dependencies are set.
func (d *Dependencies) Validate() error {
	if d.Ctx == nil {
		return ErrMissingDependency("Ctx")
	}
	if d.Config == nil {
		return ErrMissingDependency("Config")
	}
	if d.Loop == nil {
		return ErrMissingDependency("Loop")
	}
	if d.Surfaces == nil {
		return ErrMissingDependency("Surfaces")
	}
	if d.Windows == nil {
		return ErrMissingDependency("Windows")
	}
	return nil
}

// DependencyError indicates a missing required dependency.
type DependencyError struct {
	Name string
}

func (e DependencyError) Error() string {
	return "missing required dependency: " + e.Name
}

// ErrMissingDependency creates a new DependencyError.
func ErrMissingDependency(name string) error {
	return DependencyError{Name: name}
}
