// Package messaging is the command/event interface between the shell core
// and a UI layer: named JSON commands in, push events out.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/logging"
)

// Request is a command sent by the UI of one window.
type Request struct {
	ID      string          `json:"id,omitempty"`
	Window  entity.WindowID `json:"window,omitempty"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response answers a Request. Error is set when OK is false.
type Response struct {
	ID     string `json:"id,omitempty"`
	OK     bool   `json:"ok"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ErrUnknownCommand is returned for commands nobody registered.
var ErrUnknownCommand = errors.New("unknown command")

// CommandHandler handles the decoded arguments of one command.
type CommandHandler interface {
	Handle(ctx context.Context, windowID entity.WindowID, args json.RawMessage) (any, error)
}

// CommandHandlerFunc adapts a function to the CommandHandler interface.
type CommandHandlerFunc func(ctx context.Context, windowID entity.WindowID, args json.RawMessage) (any, error)

// Handle calls f(ctx, windowID, args).
func (f CommandHandlerFunc) Handle(ctx context.Context, windowID entity.WindowID, args json.RawMessage) (any, error) {
	return f(ctx, windowID, args)
}

// Dispatcher routes commands to registered handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]CommandHandler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]CommandHandler)}
}

// Register registers a handler for a command name.
func (d *Dispatcher) Register(command string, handler CommandHandler) error {
	if command == "" {
		return errors.New("command name cannot be empty")
	}
	if handler == nil {
		return errors.New("command handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.handlers[command]; exists {
		return fmt.Errorf("command %q already registered", command)
	}
	d.handlers[command] = handler
	return nil
}

// Commands returns the registered command names, sorted.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatch runs a request and wraps the outcome in a Response. Handler
// errors never escape as Go errors; they become {ok:false} responses.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	log := logging.FromContext(ctx).With().
		Str("command", req.Command).
		Str("window_id", string(req.Window)).
		Logger()

	d.mu.RLock()
	handler, ok := d.handlers[req.Command]
	d.mu.RUnlock()
	if !ok {
		log.Debug().Msg("unknown command")
		return Response{ID: req.ID, Error: fmt.Sprintf("%s: %s", ErrUnknownCommand, req.Command)}
	}

	result, err := handler.Handle(ctx, req.Window, req.Args)
	if err != nil {
		log.Debug().Err(err).Msg("command failed")
		return Response{ID: req.ID, Error: err.Error()}
	}

	log.Trace().Msg("command handled")
	return Response{ID: req.ID, OK: true, Result: result}
}

// decodeArgs unmarshals args into v. Empty args leave v untouched.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
