// Package tailer follows a file line by line on top of github.com/nxadm/tail.
package tailer

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/nxadm/tail"
)

// Config controls how a file is followed.
type Config struct {
	// FromStart reads existing content before following. Otherwise only
	// lines appended after New are delivered.
	FromStart bool

	// ReOpen reopens the path when the file is truncated or recreated.
	ReOpen bool

	// Poll uses stat polling instead of filesystem notifications.
	Poll bool
}

// DefaultConfig returns a Config that follows new lines and survives
// truncation.
func DefaultConfig() Config {
	return Config{ReOpen: true}
}

// Tailer delivers lines appended to a file. Trailing CR is removed.
type Tailer struct {
	t      *tail.Tail
	cancel context.CancelFunc
	lines  chan string
	errs   chan error
	done   chan struct{}

	stopOnce sync.Once
	stopErr  error
}

// New starts following path. The file must exist.
func New(ctx context.Context, path string, cfg Config) (*Tailer, error) {
	var loc *tail.SeekInfo
	if !cfg.FromStart {
		loc = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, tail.Config{
		Location:  loc,
		ReOpen:    cfg.ReOpen,
		MustExist: true,
		Poll:      cfg.Poll,
		Follow:    true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	tr := &Tailer{
		t:      t,
		cancel: cancel,
		lines:  make(chan string),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
	go tr.run(ctx)
	return tr, nil
}

func (tr *Tailer) run(ctx context.Context) {
	defer close(tr.done)
	defer close(tr.errs)
	defer close(tr.lines)

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-tr.t.Lines:
			if !ok {
				if err := tr.t.Err(); err != nil {
					tr.sendErr(ctx, err)
				}
				return
			}
			if line.Err != nil {
				tr.sendErr(ctx, line.Err)
				continue
			}
			select {
			case tr.lines <- strings.TrimSuffix(line.Text, "\r"):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (tr *Tailer) sendErr(ctx context.Context, err error) {
	select {
	case tr.errs <- err:
	case <-ctx.Done():
	}
}

// Lines returns the channel of lines. It is closed when the tailer stops.
func (tr *Tailer) Lines() <-chan string {
	return tr.lines
}

// Errors returns the channel of read errors. It is closed when the tailer
// stops.
func (tr *Tailer) Errors() <-chan error {
	return tr.errs
}

// Stop stops following and waits for the delivery goroutine to exit.
// Safe to call multiple times.
func (tr *Tailer) Stop() error {
	tr.stopOnce.Do(func() {
		tr.cancel()
		tr.stopErr = tr.t.Stop()
		tr.t.Cleanup()
	})
	<-tr.done
	return tr.stopErr
}
