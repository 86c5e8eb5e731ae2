// Package safefile opens files that are known to be regular files.
//
// Pattern files and parsed logs are user-supplied paths. Opening a FIFO or a
// device would block or stream forever, so both are rejected up front.
package safefile

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotRegularFile is returned for symlinks, FIFOs, devices, sockets and
// directories.
var ErrNotRegularFile = errors.New("not a regular file")

// ErrTooLarge is returned by ReadRegular when the file exceeds the limit.
var ErrTooLarge = errors.New("file too large")

// OpenRegular opens path for reading after checking, both before and after
// the open, that it is a regular file. The path itself must not be a symlink.
//
// The caller must close the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	// The path may have been swapped between Lstat and Open.
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}

	return f, info, nil
}

// ReadRegular reads a whole regular file of at most max bytes. The limit is
// enforced on the bytes actually read, so a file growing after the stat is
// still rejected.
func ReadRegular(path string, max int64) ([]byte, error) {
	f, info, err := OpenRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info.Size() > max {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, info.Size(), max)
	}

	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), max)
	}
	return data, nil
}
