package pattern

import (
	"context"
	"fmt"
	"testing"
)

func benchParser(b *testing.B, n int) *FormatParser {
	b.Helper()
	pf := &PatternFile{Version: 1}
	for i := 0; i < n; i++ {
		pf.Patterns = append(pf.Patterns, Pattern{
			ID:        fmt.Sprintf("p%d", i),
			EventType: fmt.Sprintf("event_%d", i),
			Format:    fmt.Sprintf(`"svc%d: " key "=" value`, i),
			Fields:    []Field{{Name: "key"}, {Name: "value", Type: "int"}},
		})
	}
	parser, err := NewFormatParser(pf)
	if err != nil {
		b.Fatalf("Failed to create parser: %v", err)
	}
	return parser
}

func BenchmarkFormatParser_SinglePattern(b *testing.B) {
	parser := benchParser(b, 1)
	line := "svc0: retries=3"
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = parser.ParseLine(ctx, line)
	}
}

func BenchmarkFormatParser_SinglePattern_NoMatch(b *testing.B) {
	parser := benchParser(b, 1)
	line := "this line does not match"
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = parser.ParseLine(ctx, line)
	}
}

func BenchmarkFormatParser_ManyPatterns(b *testing.B) {
	for _, n := range []int{10, 100} {
		b.Run(fmt.Sprintf("patterns=%d", n), func(b *testing.B) {
			parser := benchParser(b, n)
			line := fmt.Sprintf("svc%d: retries=3", n-1)
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = parser.ParseLine(ctx, line)
			}
		})
	}
}

func BenchmarkLoadBytes(b *testing.B) {
	data := []byte(`version: 1
patterns:
  - id: access
    event_type: access
    format: 'ip " " method " " path " " status'
    fields: [{name: ip}, {name: method}, {name: path}, {name: status, type: uint16}]
`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = LoadBytes(data)
	}
}
