// Package lineshape parses and follows line-oriented log files using
// declarative line formats.
//
// This package allows you to:
//   - Turn log lines into structured events with a [Parser]
//   - Parse whole files with [ParseFile] and [ParseReader]
//   - Follow the newest log file in a directory with [Watcher]
//   - Describe formats in YAML pattern files via the [pattern] subpackage
//
// # Formats
//
// A format is a sequence of quoted literals and field names, compiled by the
// [format] subpackage against a schema of typed fields:
//
//	p, err := lineshape.NewFormatParser("access", `ip " " method " " path`, format.Schema{
//	    {Name: "ip", Type: convert.String},
//	    {Name: "method", Type: convert.String},
//	    {Name: "path", Type: convert.String},
//	})
//
// [DefaultParser] recognizes two built-in formats without any setup:
// "<priority>facility: message" and "[level] message".
//
// # Following Logs
//
//	events, errs, err := lineshape.Watch(ctx,
//	    lineshape.WithDir("/var/log/myapp"),
//	    lineshape.WithParser(p),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    select {
//	    case ev, ok := <-events:
//	        if !ok {
//	            return
//	        }
//	        fmt.Println(ev.Type, ev.Fields)
//	    case err, ok := <-errs:
//	        if !ok {
//	            return
//	        }
//	        log.Printf("error: %v", err)
//	    }
//	}
//
// # Custom Parsers
//
// Implement the [Parser] interface, or wrap a function with [ParserFunc], and
// combine parsers with [ParserChain]:
//
//	chain := &lineshape.ParserChain{
//	    Mode:    lineshape.ChainFirst,
//	    Parsers: []lineshape.Parser{p, lineshape.DefaultParser{}},
//	}
package lineshape
