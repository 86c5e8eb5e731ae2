package pattern

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lineshape/lineshape-go/internal/safefile"
)

// sanitizePathError removes the path from os.PathError so error messages
// don't expose file system paths.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

const (
	// MaxPatternFileSize is the maximum size of a pattern file (1MB).
	MaxPatternFileSize = 1 * 1024 * 1024

	// MaxFormatLength is the maximum length of a format specification.
	MaxFormatLength = 512

	// MaxPatternCount is the maximum number of patterns in a file.
	MaxPatternCount = 1000

	// SupportedVersion is the supported pattern file format version.
	SupportedVersion = 1
)

// Load reads and validates a pattern file. Only regular files are accepted;
// FIFOs, devices and symlinks are rejected before reading.
//
// Example:
//
//	pf, err := pattern.Load("patterns.yaml")
//	if err != nil {
//	    log.Fatalf("failed to load pattern file: %v", err)
//	}
func Load(path string) (*PatternFile, error) {
	data, err := safefile.ReadRegular(path, MaxPatternFileSize)
	if err != nil {
		if errors.Is(err, safefile.ErrNotRegularFile) {
			return nil, errors.New("pattern file must be a regular file (not FIFO, device, or symlink)")
		}
		return nil, fmt.Errorf("failed to read pattern file: %w", sanitizePathError(err))
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a pattern file held in memory.
func LoadBytes(data []byte) (*PatternFile, error) {
	if len(data) == 0 {
		return nil, errors.New("pattern file is empty")
	}
	if len(data) > MaxPatternFileSize {
		return nil, fmt.Errorf("pattern file too large: %d bytes (max %d)", len(data), MaxPatternFileSize)
	}

	var pf PatternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := pf.Validate(); err != nil {
		return nil, err
	}
	return &pf, nil
}

// Validate checks the structure of the file: version, pattern count,
// required keys, unique ids and the format length limit.
//
// Formats are not compiled here; NewFormatParser does that.
func (pf *PatternFile) Validate() error {
	if pf.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", pf.Version, SupportedVersion),
		}
	}
	if len(pf.Patterns) == 0 {
		return &ValidationError{
			Field:   "patterns",
			Message: "at least one pattern is required",
		}
	}
	if len(pf.Patterns) > MaxPatternCount {
		return &ValidationError{
			Field:   "patterns",
			Message: fmt.Sprintf("too many patterns (%d), maximum allowed is %d", len(pf.Patterns), MaxPatternCount),
		}
	}

	seenIDs := make(map[string]int, len(pf.Patterns))
	for i, p := range pf.Patterns {
		if p.ID == "" {
			return &PatternError{Index: i, Field: "id", Message: "id is required"}
		}
		if p.EventType == "" {
			return &PatternError{Index: i, ID: p.ID, Field: "event_type", Message: "event_type is required"}
		}
		if p.Format == "" {
			return &PatternError{Index: i, ID: p.ID, Field: "format", Message: "format is required"}
		}

		if prev, ok := seenIDs[p.ID]; ok {
			return &PatternError{
				Index:   i,
				ID:      p.ID,
				Field:   "id",
				Message: fmt.Sprintf("duplicate id (previously defined at pattern[%d])", prev),
			}
		}
		seenIDs[p.ID] = i

		if len(p.Format) > MaxFormatLength {
			return &PatternError{
				Index:   i,
				ID:      p.ID,
				Field:   "format",
				Message: fmt.Sprintf("format too long: %d bytes (max %d)", len(p.Format), MaxFormatLength),
			}
		}

		for j, f := range p.Fields {
			if f.Name == "" {
				return &PatternError{
					Index:   i,
					ID:      p.ID,
					Field:   fmt.Sprintf("fields[%d].name", j),
					Message: "name is required",
				}
			}
		}
	}

	return nil
}
