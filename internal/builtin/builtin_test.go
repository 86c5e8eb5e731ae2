package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineshape/lineshape-go/pkg/lineshape/event"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *event.Event
	}{
		{
			name:  "syslog",
			input: "<5>httpd: GET '/'",
			want: &event.Event{
				Type:   event.Syslog,
				Fields: map[string]any{"priority": 5, "facility": "httpd", "message": "GET '/'"},
			},
		},
		{
			name:  "syslog with CRLF",
			input: "<3>systemd: oh no !\r",
			want: &event.Event{
				Type:   event.Syslog,
				Fields: map[string]any{"priority": 3, "facility": "systemd", "message": "oh no !"},
			},
		},
		{
			name:  "syslog message keeps delimiters",
			input: "<7>sshd: key: value",
			want: &event.Event{
				Type:   event.Syslog,
				Fields: map[string]any{"priority": 7, "facility": "sshd", "message": "key: value"},
			},
		},
		{
			name:  "bracket",
			input: "[WARN] disk almost full",
			want: &event.Event{
				Type:   event.Bracket,
				Fields: map[string]any{"level": "WARN", "message": "disk almost full"},
			},
		},
		{name: "bad priority", input: "<bad number>name: wow"},
		{name: "truncated", input: "<"},
		{name: "plain text", input: "invalid log entry"},
		{name: "empty", input: ""},
		{name: "only CR", input: "\r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup(t *testing.T) {
	f, ok := Lookup(event.Syslog)
	require.True(t, ok)
	assert.Equal(t, `"<" priority ">" facility ": " message`, f.Bound.String())

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
