// Package logfinder locates the directory and the newest file to follow.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnvDir is the environment variable consulted when no directory is given.
const EnvDir = "LINESHAPE_DIR"

// Sentinel errors.
var (
	ErrDirNotFound = errors.New("log directory not found")
	ErrNoLogFiles  = errors.New("no log files found")
)

// FindDir returns the directory to watch, with symlinks resolved.
//
// Priority:
//  1. explicit (if non-empty)
//  2. LINESHAPE_DIR environment variable
//
// Returns ErrDirNotFound if neither names an existing directory.
func FindDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified path is not a directory", ErrDirNotFound)
	}

	if envDir := os.Getenv(EnvDir); envDir != "" {
		if resolved := resolveDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s does not point to a directory", ErrDirNotFound, EnvDir)
	}

	return "", ErrDirNotFound
}

// candidate caches the modification time read once per file, so a file
// deleted while sorting cannot change the order.
type candidate struct {
	path    string
	modTime int64
}

// FindLatestFile returns the most recently modified regular file in dir
// whose name matches glob. Ties are broken by name, latest name first.
//
// Returns ErrNoLogFiles if nothing matches.
func FindLatestFile(dir, glob string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return "", fmt.Errorf("globbing log files: %w", err)
	}

	candidates := make([]candidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, candidate{path: m, modTime: info.ModTime().UnixNano()})
	}
	if len(candidates) == 0 {
		return "", ErrNoLogFiles
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].modTime != candidates[j].modTime {
			return candidates[i].modTime > candidates[j].modTime
		}
		return candidates[i].path > candidates[j].path
	})
	return candidates[0].path, nil
}

// resolveDir returns dir with symlinks resolved, or "" if it is not a
// directory.
func resolveDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return ""
	}
	return resolved
}
