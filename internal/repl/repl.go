package repl

import (
	"fmt"
	"io"

	"skipvm/internal/event"
	"skipvm/internal/ilog"
	"skipvm/internal/interp"
	"skipvm/internal/model"
)

// REPL is the thin interactive driver spec.md §1 names as an external
// collaborator: it owns no interpreter semantics of its own, only a
// text parser (Parse, grounded on internal/corelx's lexer/parser) and
// the loop that pushes a parsed Script onto an already-constructed
// Interpreter and drains the frames until it finishes. Grounded on the
// teacher's cmd/emulator main loop (internal/emulator's run-until-done
// shape), scaled from "run the whole ROM" down to "run one pushed
// script to completion."
type REPL struct {
	it     *interp.Interpreter
	target model.Scriptable
	out    io.Writer
	log    *ilog.Logger

	// maxFrames bounds how many ticks Eval will drive a single pushed
	// script before giving up, so a REPL script that never finishes
	// (an unconditional `forever`) can't hang the driver.
	maxFrames int
}

// New builds a REPL driving it, reporting ScriptEvents to out. target
// is the Scriptable new scripts run against (the Stage, unless SetTarget
// picks a sprite).
func New(it *interp.Interpreter, out io.Writer, log *ilog.Logger) *REPL {
	return &REPL{it: it, target: it.Project().Stage, out: out, log: log, maxFrames: 100000}
}

// SetTarget changes which Scriptable subsequently entered scripts run
// against. name matches a sprite by name, or "Stage" for the stage.
func (r *REPL) SetTarget(name string) error {
	if name == "Stage" || name == "" {
		r.target = r.it.Project().Stage
		return nil
	}
	sp := r.it.Project().GetSprite(name)
	if sp == nil {
		return fmt.Errorf("repl: no sprite named %q", name)
	}
	r.target = sp
	return nil
}

// Eval parses text as a single script and runs it to completion (or
// until maxFrames ticks elapse), writing every ScriptEvent it surfaces
// to out.
func (r *REPL) Eval(text string) error {
	script, err := Parse(text)
	if err != nil {
		return err
	}
	r.it.RunScript(r.target, script)

	before := r.it.ThreadCount()
	for frame := 0; frame < r.maxFrames; frame++ {
		events := r.it.Tick(nil)
		for _, ev := range events {
			r.printEvent(ev)
		}
		if r.it.ThreadCount() < before {
			return nil
		}
	}
	return fmt.Errorf("repl: script did not finish within %d frames (a forever/repeat loop with no exit?)", r.maxFrames)
}

func (r *REPL) printEvent(ev event.ScriptEvent) {
	switch ev.Kind {
	case event.Say:
		if ev.HasText {
			fmt.Fprintf(r.out, "%s says: %s\n", ev.Source.Name(), ev.Text)
		}
	case event.Think:
		if ev.HasText {
			fmt.Fprintf(r.out, "%s thinks: %s\n", ev.Source.Name(), ev.Text)
		}
	case event.Clear:
		fmt.Fprintf(r.out, "[pen cleared]\n")
	case event.Stamp:
		fmt.Fprintf(r.out, "%s stamped\n", ev.Source.Name())
	case event.Stop:
		if ev.StopValue != "" {
			fmt.Fprintf(r.out, "[stop %s]\n", ev.StopValue)
		}
	}
}
