package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.framing.dev/internal/config"
	"go.framing.dev/internal/golden"
	"go.framing.dev/internal/server"
	"go.framing.dev/internal/watch"
	"go.framing.dev/pkg"
)

const usage = `usage: framing [flags] <command> [args]

commands:
  tokens FILE          print the tokens of FILE
  check FILE           analyse FILE and report errors
  run FILE             execute FILE and print every expression statement
  ir FILE              print the LLVM IR of FILE
  diff OLD NEW         report whether NEW frames statements of OLD in an if
  golden FILE...       check txtar edit scenarios
  watch FILE           report framing ifs while FILE is edited
  repl                 interactive buffer, one insert edit per line
  serve                start the RPC server

flags:
`

var logger *config.Logger

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for serve")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log debug output")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "scenarios checked at once by golden")
	flag.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "idle wait between checks of a watched file")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger = cfg.Logger(os.Stderr)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(cfg, args[0], args[1:]))
}

func run(cfg *config.Config, cmd string, args []string) int {
	arity := map[string]int{
		"tokens": 1,
		"check":  1,
		"run":    1,
		"ir":     1,
		"diff":   2,
		"watch":  1,
		"repl":   0,
		"serve":  0,
	}

	if n, ok := arity[cmd]; ok && len(args) != n {
		fmt.Fprintf(os.Stderr, "%s expects %d argument(s)\n", cmd, n)
		return 2
	}

	switch cmd {
	case "tokens":
		return runTokens(args[0])
	case "check":
		return runCheck(args[0])
	case "run":
		return runExecute(args[0])
	case "ir":
		return runIR(args[0])
	case "diff":
		return runDiff(args[0], args[1])
	case "golden":
		return runGolden(args, cfg.Workers)
	case "watch":
		return runWatch(args[0], cfg.PollInterval)
	case "repl":
		return runREPL()
	case "serve":
		return runServe(cfg.Addr)
	}

	fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
	flag.Usage()
	return 2
}

func readSource(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return "", false
	}

	return string(data), true
}

func compile(path string) (*framing.Snapshot, bool) {
	src, ok := readSource(path)
	if !ok {
		return nil, false
	}

	snap, err := framing.NewCompiler().CompileString(src)
	if err != nil {
		printError(src, err)
		return nil, false
	}

	logger.Debugf("%s: %d tokens, %d statements", path, len(snap.Tokens), len(snap.Statements()))
	return snap, true
}

func runTokens(path string) int {
	src, ok := readSource(path)
	if !ok {
		return 1
	}

	toks, err := framing.Tokenize(src)
	if err != nil {
		printError(src, err)
		return 1
	}

	for i, tok := range toks {
		line, col := position(src, tok.Offset)
		fmt.Printf("%4d %d:%-4d %-17s %s\n", i, line, col, tok.Typ, tok)
	}

	return 0
}

func runCheck(path string) int {
	snap, ok := compile(path)
	if !ok {
		return 1
	}

	fmt.Printf("%s: ok, %d statements\n", path, len(snap.Statements()))
	return 0
}

func runExecute(path string) int {
	snap, ok := compile(path)
	if !ok {
		return 1
	}

	store := framing.NewStore()
	err := framing.Execute(snap.Tree, store)

	for _, v := range store.Results {
		fmt.Println(v)
	}

	if err != nil {
		printError(snap.Source, err)
		return 1
	}

	return 0
}

func runIR(path string) int {
	snap, ok := compile(path)
	if !ok {
		return 1
	}

	mod, err := framing.EmitIR(snap.Tree)
	if err != nil {
		printError(snap.Source, err)
		return 1
	}

	fmt.Println(mod)
	return 0
}

func runDiff(oldPath, newPath string) int {
	previous, ok := compile(oldPath)
	if !ok {
		return 1
	}

	current, ok := compile(newPath)
	if !ok {
		return 1
	}

	m, found := framing.FindFramingIf(previous, current)
	if !found {
		fmt.Println("no framing if")
		return 0
	}

	printMatch(current, m)
	return 0
}

func printMatch(snap *framing.Snapshot, m *framing.Match) {
	start, end := snap.Locate(m.Span())
	line, col := position(snap.Source, start)

	fmt.Printf("framing if at %d:%d wraps %d statement(s):\n", line, col, m.Length)
	for _, l := range strings.Split(snap.Source[start:end], "\n") {
		fmt.Println("  " + l)
	}
}

func runGolden(paths []string, workers int) int {
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "golden expects at least one scenario")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := golden.Check(ctx, paths, workers)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	failed := 0
	for _, r := range results {
		if r.Passed() {
			fmt.Printf("PASS %s\n", r.Case.Name)
			continue
		}

		failed++
		switch {
		case r.PreviousErr != nil:
			fmt.Printf("FAIL %s: previous: %v\n", r.Case.Name, r.PreviousErr)
		default:
			fmt.Printf("FAIL %s: want %t, found %t\n", r.Case.Name, r.Case.Want, r.Found)
		}
	}

	if failed > 0 {
		fmt.Printf("%d of %d scenarios failed\n", failed, len(results))
		return 1
	}

	return 0
}

func runWatch(path string, poll time.Duration) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := framing.NewSession()
	err := watch.File(ctx, path, poll, func(content string) {
		// A shrinking buffer is treated as a removal.
		if len(content) < len(session.Previous().Source) {
			if err := session.Remove(content); err != nil {
				logger.Debugf("%s: %v", path, err)
			}

			return
		}

		report, err := session.Insert(content)
		if err != nil {
			printError(content, err)
			return
		}

		if report.Found() {
			printMatch(report.Snapshot, report.Match)
		} else {
			logger.Debugf("%s: %d statements, no framing if", path, len(report.Snapshot.Statements()))
		}
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}

func runServe(addr string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(addr, logger.Logger)

	errs := make(chan error, 1)
	go func() {
		logger.Printf("Server starting on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		logger.Println(err)
		return 1
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		logger.Println(err)
		return 1
	}

	return 0
}

// position converts a byte offset of src to a 1-based line and column.
func position(src string, offset int) (int, int) {
	if offset > len(src) {
		offset = len(src)
	}

	line := 1 + strings.Count(src[:offset], "\n")
	col := offset - strings.LastIndex(src[:offset], "\n")
	return line, col
}

// spanOffset returns the byte offset where a token span of src starts.
func spanOffset(src string, span framing.Span) int {
	toks, _ := framing.Tokenize(src)
	start, _ := (&framing.Snapshot{Source: src, Tokens: toks}).Locate(span)
	return start
}

func printError(src string, err error) {
	switch e := err.(type) {
	case *framing.LexicalError:
		line, col := position(src, e.Offset)
		fmt.Fprintf(os.Stderr, "Invalid symbol: '%c' at %d:%d\n", e.Char, line, col)
	case *framing.SyntaxError:
		if e.Premature() {
			fmt.Fprintln(os.Stderr, "Premature end of program:", e.Msg)
			return
		}

		line, col := position(src, e.Token.Offset)
		fmt.Fprintf(os.Stderr, "Unexpected token: %q at %d:%d: %s\n", e.Token.Value, line, col, e.Msg)
	case *framing.AnalysisError:
		line, col := position(src, spanOffset(src, e.Span))
		fmt.Fprintf(os.Stderr, "Analysis failed: %s at %d:%d\n", e.Msg, line, col)
	case *framing.ExecutionError:
		line, col := position(src, spanOffset(src, e.Span))
		fmt.Fprintf(os.Stderr, "Execution failed: %s at %d:%d\n", e.Msg, line, col)
	default:
		fmt.Fprintln(os.Stderr, err)
	}
}
