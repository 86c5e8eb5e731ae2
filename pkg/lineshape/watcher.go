package lineshape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/lineshape/lineshape-go/internal/logfinder"
	"github.com/lineshape/lineshape-go/internal/tailer"
	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
)

// watcherErrBuffer is the buffer size for the error channel.
const watcherErrBuffer = 16

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Watcher follows a log file and emits parsed events.
type Watcher struct {
	cfg watchConfig // immutable after creation
	dir string      // resolved directory, empty when following a single file
	log *slog.Logger

	mu       sync.Mutex
	closed   bool
	watching bool
	cancel   context.CancelFunc
	doneCh   chan struct{}
}

// NewWatcher creates a watcher. It validates options and resolves the
// directory but does not start any goroutine.
//
// Example:
//
//	w, err := lineshape.NewWatcher(
//	    lineshape.WithDir("/var/log/myapp"),
//	    lineshape.WithParser(parser),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//	events, errs, err := w.Watch(ctx)
func NewWatcher(opts ...WatchOption) (*Watcher, error) {
	cfg := applyWatchOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	var dir string
	if cfg.file == "" {
		d, err := logfinder.FindDir(cfg.dir)
		if err != nil {
			return nil, fmt.Errorf("finding log directory: %w", err)
		}
		dir = d
	}

	log := cfg.logger
	if log == nil {
		log = discardLogger
	}

	return &Watcher{cfg: *cfg, dir: dir, log: log}, nil
}

// Watch starts following and returns the event and error channels. Both
// channels are closed when ctx is cancelled, when Close is called, or after
// a fatal error. Watch can only be called once.
func (w *Watcher) Watch(ctx context.Context) (<-chan event.Event, <-chan error, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, nil, ErrWatcherClosed
	}
	if w.watching {
		return nil, nil, ErrAlreadyWatching
	}
	w.watching = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.doneCh = make(chan struct{})

	eventCh := make(chan event.Event)
	errCh := make(chan error, watcherErrBuffer)
	go w.run(ctx, eventCh, errCh)

	return eventCh, errCh, nil
}

// Close stops the watcher and waits for its goroutine to exit.
// Safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.cancel != nil {
		w.cancel()
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, eventCh chan<- event.Event, errCh chan<- error) {
	defer close(w.doneCh)
	defer close(eventCh)
	defer close(errCh)

	current := w.cfg.file
	if current == "" {
		f, err := logfinder.FindLatestFile(w.dir, w.cfg.glob)
		if err != nil {
			sendError(ctx, errCh, &WatchError{Op: WatchOpFindLatest, Path: w.dir, Err: err})
			return
		}
		current = f
	}

	cfg := tailer.DefaultConfig()
	cfg.FromStart = w.cfg.fromStart
	t, err := tailer.New(ctx, current, cfg)
	if err != nil {
		sendError(ctx, errCh, &WatchError{Op: WatchOpTail, Path: current, Err: err})
		return
	}
	defer func() { _ = t.Stop() }()
	w.log.Debug("started tailing", "path", current, "from_start", cfg.FromStart)

	// Only directories rotate; a nil channel never fires.
	var tick <-chan time.Time
	if w.dir != "" {
		ticker := time.NewTicker(w.cfg.pollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-t.Lines():
			if !ok {
				return
			}
			w.processLine(ctx, line, eventCh, errCh)
		case err, ok := <-t.Errors():
			if !ok {
				return
			}
			sendError(ctx, errCh, &WatchError{Op: WatchOpTail, Path: current, Err: err})
		case <-tick:
			next, err := logfinder.FindLatestFile(w.dir, w.cfg.glob)
			if err != nil {
				sendError(ctx, errCh, &WatchError{Op: WatchOpRotation, Path: w.dir, Err: err})
				continue
			}
			if next == current {
				continue
			}
			w.log.Debug("log rotation detected", "from", current, "to", next)
			_ = t.Stop()
			// A new file is read from its first line.
			nt, err := tailer.New(ctx, next, tailer.Config{FromStart: true, ReOpen: true})
			if err != nil {
				sendError(ctx, errCh, &WatchError{Op: WatchOpTail, Path: next, Err: err})
				return
			}
			t = nt
			current = next
		}
	}
}

func (w *Watcher) processLine(ctx context.Context, line string, eventCh chan<- event.Event, errCh chan<- error) {
	if line == "" {
		return
	}
	result, err := w.cfg.parser.ParseLine(ctx, line)

	// Events are delivered even alongside an error (ChainContinueOnError).
	for _, ev := range result.Events {
		if !w.cfg.filter.Allows(ev.Type) {
			continue
		}
		if w.cfg.includeRawLine {
			ev.RawLine = line
		}
		select {
		case eventCh <- ev:
		case <-ctx.Done():
			return
		}
	}

	if err != nil {
		sendError(ctx, errCh, &ParseError{Line: line, Err: err})
	}
}

// sendError delivers err without blocking; it is dropped only when the
// buffer is full.
func sendError(ctx context.Context, errCh chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case errCh <- err:
	case <-ctx.Done():
	default:
	}
}

// Watch creates a watcher and starts it. The watcher stops when ctx is
// cancelled; use NewWatcher for synchronous shutdown via Close.
func Watch(ctx context.Context, opts ...WatchOption) (<-chan event.Event, <-chan error, error) {
	w, err := NewWatcher(opts...)
	if err != nil {
		return nil, nil, err
	}
	return w.Watch(ctx)
}
