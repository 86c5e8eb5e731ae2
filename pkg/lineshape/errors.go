package lineshape

import (
	"errors"
	"fmt"

	"github.com/lineshape/lineshape-go/internal/logfinder"
)

// Sentinel errors.
var (
	// ErrWatcherClosed is returned by Watch after Close.
	ErrWatcherClosed = errors.New("watcher closed")

	// ErrAlreadyWatching is returned when Watch is called twice.
	ErrAlreadyWatching = errors.New("already watching")

	// ErrNoLogFiles is returned when the watched directory has no file
	// matching the glob.
	ErrNoLogFiles = logfinder.ErrNoLogFiles

	// ErrLineTooLong is returned by ParseFile and ParseReader when a line
	// exceeds the configured maximum.
	ErrLineTooLong = errors.New("line too long")
)

// WatchOp identifies the watcher operation that failed.
type WatchOp string

// Watch operations.
const (
	// WatchOpFindLatest: no file to follow could be found in the
	// directory. The watch ends.
	WatchOpFindLatest WatchOp = "find_latest"

	// WatchOpTail: opening or reading the followed file failed. An open
	// failure ends the watch; read errors do not.
	WatchOpTail WatchOp = "tail"

	// WatchOpRotation: checking for a newer file failed. The watcher keeps
	// following the current file.
	WatchOpRotation WatchOp = "rotation"
)

// WatchError is an error raised while following log files.
type WatchError struct {
	Op   WatchOp
	Path string // file or directory involved, may be empty
	Err  error
}

func (e *WatchError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("watch %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("watch %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *WatchError) Unwrap() error {
	return e.Err
}

// ParseError is an error returned by a Parser for a specific line.
type ParseError struct {
	Line    string
	LineNum int // 1-based, 0 when unknown (live tailing)
	Err     error
}

func (e *ParseError) Error() string {
	if e.LineNum > 0 {
		return fmt.Sprintf("line %d: %v", e.LineNum, e.Err)
	}
	return fmt.Sprintf("parse error: %v", e.Err)
}

// Unwrap returns the parser's error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
