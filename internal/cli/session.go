package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/chromic/internal/app/messaging"
	"github.com/bnema/chromic/internal/application/usecase"
	"github.com/bnema/chromic/internal/cli/styles"
	"github.com/bnema/chromic/internal/domain/geometry"
	"github.com/bnema/chromic/internal/infrastructure/config"
	"github.com/bnema/chromic/internal/infrastructure/headless"
	"github.com/bnema/chromic/internal/logging"
	"github.com/bnema/chromic/internal/ui"
	"github.com/bnema/chromic/internal/ui/coordinator"
	"github.com/bnema/chromic/internal/ui/mainloop"
)

const (
	// settleTurns bounds the wait for in-flight loads once input ended.
	settleTurns = 100
	// maxLineSize is the longest accepted command line.
	maxLineSize = 1 << 20
)

// DefaultScreen is the size headless windows maximize to.
var DefaultScreen = geometry.Bounds{Width: 2560, Height: 1440}

// SessionOptions configures a headless session.
type SessionOptions struct {
	Config *config.Config
	// Manager, when set, is watched and every valid edit is applied live.
	Manager *config.Manager

	// Input carries one JSON command per line. Blank lines and lines
	// starting with '#' are skipped. When Input is an io.Closer it is closed
	// as the session ends, which releases a reader still blocked on it.
	Input io.Reader
	// Output receives responses and pushed events as JSON lines.
	Output io.Writer
	// Summary, when set, receives a rendering of every window at the end.
	Summary io.Writer
	Theme   *styles.Theme

	Screen      geometry.Bounds
	IDGenerator usecase.IDGenerator
}

// RunSession boots a headless shell, feeds it the commands read from Input
// and shuts it down once Input is exhausted or ctx is done.
func RunSession(ctx context.Context, opts SessionOptions) error {
	log := logging.FromContext(ctx)

	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Screen == (geometry.Bounds{}) {
		opts.Screen = DefaultScreen
	}
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}

	loop := mainloop.New(ctx)
	app, err := ui.New(&ui.Dependencies{
		Ctx:         ctx,
		Config:      opts.Config,
		Loop:        loop,
		Surfaces:    headless.NewSurfaceFactory(loop.Post, opts.Config.ResourcesDir),
		Windows:     headless.NewWindowFactory(opts.Screen),
		IDGenerator: opts.IDGenerator,
	})
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	if _, err := app.Start(ctx); err != nil {
		return fmt.Errorf("start app: %w", err)
	}

	out := &lineWriter{enc: json.NewEncoder(opts.Output)}
	detach := app.AttachUI("", func(e messaging.PushEvent) { out.write(e) })

	if opts.Manager != nil {
		opts.Manager.OnConfigChange(func(cfg *config.Config) {
			loop.Post(func() { app.ApplyConfig(cfg) })
		})
		if err := opts.Manager.Watch(); err != nil {
			log.Debug().Err(err).Msg("config hot reload disabled")
		}
	}

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines := readLines(readCtx, opts.Input)
	if c, ok := opts.Input.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				log.Debug().Err(err).Msg("close command input")
			}
		}()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Run(gctx)
	})
	g.Go(func() error {
		defer func() {
			settle(gctx, loop)
			if opts.Summary != nil {
				_ = loop.Invoke(gctx, func() error {
					renderSummary(opts.Summary, opts.Theme, app)
					return nil
				})
			}
			_ = loop.Invoke(gctx, func() error {
				detach()
				app.Shutdown(gctx)
				return nil
			})
		}()
		return feed(gctx, app, lines, out)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type scannedLine struct {
	text string
	err  error
}

// readLines scans r on its own goroutine. A terminal read error is sent as
// the last item. The goroutine stops once ctx is done and its current Read
// returns; a Read that never returns keeps it alive, so callers close r.
func readLines(ctx context.Context, r io.Reader) <-chan scannedLine {
	lines := make(chan scannedLine, 16)
	send := func(line scannedLine) bool {
		select {
		case lines <- line:
			return true
		case <-ctx.Done():
			return false
		}
	}
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			if !send(scannedLine{text: scanner.Text()}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			send(scannedLine{err: err})
		}
	}()
	return lines
}

func feed(ctx context.Context, app *ui.App, lines <-chan scannedLine, out *lineWriter) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-app.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line.err != nil {
				return fmt.Errorf("read commands: %w", line.err)
			}
			text := strings.TrimSpace(line.text)
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}

			var req messaging.Request
			if err := json.Unmarshal([]byte(text), &req); err != nil {
				out.write(messaging.Response{Error: fmt.Sprintf("invalid request: %v", err)})
				continue
			}
			if req.Window == "" {
				req.Window = coordinator.MainWindowID
			}
			out.write(app.Execute(ctx, req))
		}
	}
}

// settle waits until the loop has nothing queued.
func settle(ctx context.Context, loop *mainloop.Loop) {
	for range settleTurns {
		pending := 0
		if err := loop.Invoke(ctx, func() error {
			pending = loop.Pending()
			return nil
		}); err != nil || pending == 0 {
			return
		}
	}
}

func renderSummary(w io.Writer, theme *styles.Theme, app *ui.App) {
	r := styles.NewWindowRenderer(theme)
	for _, id := range app.Windows().IDs() {
		fmt.Fprint(w, r.Render(id, app.Views().Snapshot(id), app.Views().Active(id)))
	}
}

// lineWriter serializes JSON lines written from the loop and the reader.
type lineWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (w *lineWriter) write(v any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.enc.Encode(v)
}
