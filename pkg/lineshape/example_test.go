package lineshape_test

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lineshape/lineshape-go/pkg/lineshape"
	"github.com/lineshape/lineshape-go/pkg/lineshape/convert"
	"github.com/lineshape/lineshape-go/pkg/lineshape/format"
)

func ExampleParseReader() {
	input := "<5>httpd: GET '/'\n[WARN] disk almost full\nnoise\n"

	events, err := lineshape.ParseReader(context.Background(), strings.NewReader(input))
	if err != nil {
		log.Fatal(err)
	}
	for _, ev := range events {
		fmt.Println(ev.Type, ev.Fields["message"])
	}
	// Output:
	// syslog GET '/'
	// bracket disk almost full
}

func ExampleNewFormatParser() {
	p, err := lineshape.NewFormatParser("latency", `"took " ms "ms for " path`, format.Schema{
		{Name: "ms", Type: convert.Int},
		{Name: "path", Type: convert.String},
	})
	if err != nil {
		log.Fatal(err)
	}

	result, err := p.ParseLine(context.Background(), "took 42ms for /health")
	if err != nil {
		log.Fatal(err)
	}
	ev := result.Events[0]
	fmt.Println(ev.Type, ev.Fields["ms"], ev.Fields["path"])
	// Output: latency 42 /health
}

func ExampleParserChain() {
	kv, err := lineshape.NewFormatParser("kv", `key "=" value`, format.Schema{
		{Name: "key", Type: convert.String},
		{Name: "value", Type: convert.String},
	})
	if err != nil {
		log.Fatal(err)
	}

	chain := &lineshape.ParserChain{
		Mode:    lineshape.ChainFirst,
		Parsers: []lineshape.Parser{lineshape.DefaultParser{}, kv},
	}

	for _, line := range []string{"[INFO] ready", "mode=fast"} {
		result, err := chain.ParseLine(context.Background(), line)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(result.Events[0].Type)
	}
	// Output:
	// bracket
	// kv
}

// ExampleNewWatcher follows the newest *.log file in a directory.
func ExampleNewWatcher() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	w, err := lineshape.NewWatcher(
		lineshape.WithDir("/var/log/myapp"),
		lineshape.WithPollInterval(5*time.Second),
		lineshape.WithIncludeRawLine(true),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	events, errs, err := w.Watch(ctx)
	if err != nil {
		log.Fatal(err)
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			fmt.Printf("%s: %s\n", ev.Type, ev.RawLine)
		case err, ok := <-errs:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}
