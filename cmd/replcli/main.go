// Command replcli is the interactive driver spec.md §1 names as the
// REPL: a thin loop that reads one script line at a time, parses it,
// and runs it against a demo Project. Flag layout follows
// cmd/emulator/main.go's (-rom/-scale/-log becomes -target/-log here).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"skipvm/internal/demoproject"
	"skipvm/internal/ilog"
	"skipvm/internal/interp"
	"skipvm/internal/repl"
	"skipvm/internal/screen"
)

func main() {
	target := flag.String("target", "Stage", "Scriptable new lines run against (a sprite name, or \"Stage\")")
	enableLogging := flag.Bool("log", false, "Enable component logging (disabled by default)")
	flag.Parse()

	proj := demoproject.New()
	table := interp.BuildTable()

	logger := ilog.New(10000)
	if *enableLogging {
		for _, c := range []ilog.Component{ilog.ComponentScheduler, ilog.ComponentEvaluator, ilog.ComponentDispatch,
			ilog.ComponentHats, ilog.ComponentBlocks, ilog.ComponentScreen, ilog.ComponentREPL} {
			logger.SetComponentEnabled(c, true)
		}
	}
	defer logger.Close()

	it := interp.New(proj, screen.NewNullScreen(), table, logger)
	r := repl.New(it, os.Stdout, logger)
	if err := r.SetTarget(*target); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("skipvm REPL — enter a block call, e.g. move(10) or say(\"hi\")")
	fmt.Println("target:", *target, "  (blank line or Ctrl-D to quit)")

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			break
		}
		line := sc.Text()
		if line == "" {
			continue
		}
		if err := r.Eval(line); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			printTrace(logger)
			continue
		}
	}
}

// printTrace dumps the logger's ring buffer after a fatal parse/eval
// error, the same post-mortem the teacher's -log flag enables for a
// crashed emulator run.
func printTrace(logger *ilog.Logger) {
	for _, e := range logger.Snapshot() {
		fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", e.Component, e.Level, e.Message)
	}
}
