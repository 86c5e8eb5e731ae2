package lineshape

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
)

// DefaultGlob is the file pattern followed when only a directory is given.
const DefaultGlob = "*.log"

// DefaultMaxLineBytes is the default line length limit for ParseFile and
// ParseReader.
const DefaultMaxLineBytes = 512 * 1024

// WatchOption configures a Watcher using the functional options pattern.
type WatchOption func(*watchConfig)

// watchConfig holds internal configuration for the watcher.
type watchConfig struct {
	file           string
	dir            string
	glob           string
	pollInterval   time.Duration
	fromStart      bool
	includeRawLine bool
	logger         *slog.Logger
	filter         *compiledFilter
	parser         Parser
}

func defaultWatchConfig() *watchConfig {
	return &watchConfig{
		glob:         DefaultGlob,
		pollInterval: 2 * time.Second,
		parser:       DefaultParser{},
	}
}

func applyWatchOptions(opts []WatchOption) *watchConfig {
	cfg := defaultWatchConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// validate checks for invalid option combinations.
func (c *watchConfig) validate() error {
	if c.file != "" && c.dir != "" {
		return errors.New("file and directory are mutually exclusive")
	}
	if c.pollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.pollInterval)
	}
	if c.glob == "" {
		return errors.New("glob must not be empty")
	}
	return nil
}

// WithFile follows a single file. Rotation is not detected; the tailer
// reopens the file if it is truncated or recreated.
func WithFile(path string) WatchOption {
	return func(c *watchConfig) {
		c.file = path
	}
}

// WithDir follows the newest file matching the glob in dir and switches to a
// newer one when it appears. If neither WithFile nor WithDir is given, the
// LINESHAPE_DIR environment variable is used.
func WithDir(dir string) WatchOption {
	return func(c *watchConfig) {
		c.dir = dir
	}
}

// WithGlob sets the file name pattern used with WithDir.
// Default: "*.log".
func WithGlob(glob string) WatchOption {
	return func(c *watchConfig) {
		c.glob = glob
	}
}

// WithPollInterval sets how often to check for a newer file.
// Default: 2 seconds.
func WithPollInterval(interval time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.pollInterval = interval
	}
}

// WithFromStart reads the followed file from the beginning instead of only
// new lines.
func WithFromStart(fromStart bool) WatchOption {
	return func(c *watchConfig) {
		c.fromStart = fromStart
	}
}

// WithIncludeRawLine includes the original line in Event.RawLine.
func WithIncludeRawLine(include bool) WatchOption {
	return func(c *watchConfig) {
		c.includeRawLine = include
	}
}

// WithLogger sets a logger for debug output. A nil logger disables logging
// (default).
func WithLogger(logger *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		c.logger = logger
	}
}

// WithParser sets the line parser. A nil parser leaves DefaultParser active.
func WithParser(p Parser) WatchOption {
	return func(c *watchConfig) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithParsers combines parsers using ChainAll mode.
func WithParsers(parsers ...Parser) WatchOption {
	return func(c *watchConfig) {
		if len(parsers) > 0 {
			c.parser = &ParserChain{Mode: ChainAll, Parsers: parsers}
		}
	}
}

// WithFilter sets include and exclude type filters.
// Exclude takes precedence over include.
func WithFilter(include, exclude []event.Type) WatchOption {
	return func(c *watchConfig) {
		c.filter = newCompiledFilter(include, exclude)
	}
}

// WithIncludeTypes only delivers events of the given types.
func WithIncludeTypes(types ...event.Type) WatchOption {
	return func(c *watchConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.include = toSet(types)
	}
}

// WithExcludeTypes drops events of the given types.
func WithExcludeTypes(types ...event.Type) WatchOption {
	return func(c *watchConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.exclude = toSet(types)
	}
}

// ParseOption configures ParseFile and ParseReader.
type ParseOption func(*parseConfig)

type parseConfig struct {
	filter         *compiledFilter
	includeRawLine bool
	stopOnError    bool
	maxLineBytes   int
	parser         Parser
	logger         *slog.Logger
}

func defaultParseConfig() *parseConfig {
	return &parseConfig{
		maxLineBytes: DefaultMaxLineBytes,
		parser:       DefaultParser{},
	}
}

func applyParseOptions(opts []ParseOption) *parseConfig {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithParseParser sets the line parser. A nil parser leaves DefaultParser
// active.
func WithParseParser(p Parser) ParseOption {
	return func(c *parseConfig) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithParseFilter sets include and exclude type filters.
func WithParseFilter(include, exclude []event.Type) ParseOption {
	return func(c *parseConfig) {
		c.filter = newCompiledFilter(include, exclude)
	}
}

// WithParseIncludeTypes only returns events of the given types.
func WithParseIncludeTypes(types ...event.Type) ParseOption {
	return func(c *parseConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.include = toSet(types)
	}
}

// WithParseExcludeTypes drops events of the given types.
func WithParseExcludeTypes(types ...event.Type) ParseOption {
	return func(c *parseConfig) {
		if c.filter == nil {
			c.filter = &compiledFilter{}
		}
		c.filter.exclude = toSet(types)
	}
}

// WithParseIncludeRawLine includes the original line in Event.RawLine.
func WithParseIncludeRawLine(include bool) ParseOption {
	return func(c *parseConfig) {
		c.includeRawLine = include
	}
}

// WithParseStopOnError stops at the first parser error instead of skipping
// the line. Default: false.
func WithParseStopOnError(stop bool) ParseOption {
	return func(c *parseConfig) {
		c.stopOnError = stop
	}
}

// WithParseMaxLineBytes sets the maximum accepted line length.
// Default: 512KB.
func WithParseMaxLineBytes(n int) ParseOption {
	return func(c *parseConfig) {
		c.maxLineBytes = n
	}
}

// WithParseLogger sets a logger for skipped lines. Default: no logging.
func WithParseLogger(logger *slog.Logger) ParseOption {
	return func(c *parseConfig) {
		c.logger = logger
	}
}
