package lineshape_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineshape/lineshape-go/pkg/lineshape"
	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
)

const sampleLog = `<5>httpd: GET '/'
[WARN] disk almost full

not a known line
<3>kernel: oops
[INFO] started
`

func TestParseReader_Builtin(t *testing.T) {
	events, err := lineshape.ParseReader(context.Background(), strings.NewReader(sampleLog))
	require.NoError(t, err)
	require.Len(t, events, 4)

	assert.Equal(t, event.Syslog, events[0].Type)
	assert.Equal(t, "httpd", events[0].Fields["facility"])
	assert.Equal(t, event.Bracket, events[1].Type)
	assert.Equal(t, event.Syslog, events[2].Type)
	assert.Equal(t, 3, events[2].Fields["priority"])
	assert.Equal(t, event.Bracket, events[3].Type)
	assert.Empty(t, events[0].RawLine)
}

func TestParseReader_Filters(t *testing.T) {
	ctx := context.Background()

	events, err := lineshape.ParseReader(ctx, strings.NewReader(sampleLog),
		lineshape.WithParseIncludeTypes(event.Bracket),
	)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.Equal(t, event.Bracket, ev.Type)
	}

	events, err = lineshape.ParseReader(ctx, strings.NewReader(sampleLog),
		lineshape.WithParseFilter(
			[]event.Type{event.Syslog, event.Bracket},
			[]event.Type{event.Syslog},
		),
	)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = lineshape.ParseReader(ctx, strings.NewReader(sampleLog),
		lineshape.WithParseExcludeTypes(event.Bracket),
	)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestParseReader_RawLine(t *testing.T) {
	events, err := lineshape.ParseReader(context.Background(),
		strings.NewReader("[ERROR] boom\r\n"),
		lineshape.WithParseIncludeRawLine(true),
	)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "[ERROR] boom\r", events[0].RawLine)
	assert.Equal(t, "boom", events[0].Fields["message"])
}

func TestParseReader_ParserErrors(t *testing.T) {
	calls := 0
	p := lineshape.ParserFunc(func(ctx context.Context, line string) (lineshape.ParseResult, error) {
		calls++
		if line == "bad" {
			return lineshape.ParseResult{}, errors.New("cannot parse")
		}
		return lineshape.ParseResult{Events: []event.Event{{Type: "ok"}}, Matched: true}, nil
	})
	input := "one\nbad\ntwo\n"

	t.Run("skip", func(t *testing.T) {
		events, err := lineshape.ParseReader(context.Background(), strings.NewReader(input),
			lineshape.WithParseParser(p),
		)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("stop", func(t *testing.T) {
		events, err := lineshape.ParseReader(context.Background(), strings.NewReader(input),
			lineshape.WithParseParser(p),
			lineshape.WithParseStopOnError(true),
		)
		require.Error(t, err)
		assert.Len(t, events, 1)

		var perr *lineshape.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 2, perr.LineNum)
		assert.Equal(t, "bad", perr.Line)
		assert.EqualError(t, err, "line 2: cannot parse")
	})
}

func TestParseReader_LineTooLong(t *testing.T) {
	input := "[INFO] short\n[INFO] " + strings.Repeat("x", 100) + "\n"
	events, err := lineshape.ParseReader(context.Background(), strings.NewReader(input),
		lineshape.WithParseMaxLineBytes(32),
	)
	assert.ErrorIs(t, err, lineshape.ErrLineTooLong)
	assert.Len(t, events, 1)

	_, err = lineshape.ParseReader(context.Background(), strings.NewReader(input),
		lineshape.WithParseMaxLineBytes(-1),
	)
	assert.Error(t, err)
}

func TestParseReader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events, err := lineshape.ParseReader(ctx, strings.NewReader(sampleLog))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, events)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o600))

	events, err := lineshape.ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, events, 4)
}

func TestParseFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := lineshape.ParseFile(context.Background(), filepath.Join(dir, "missing.log"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = lineshape.ParseFile(context.Background(), dir)
	assert.Error(t, err)
}
