// Command runner is the headless/backend-selecting host: it builds an
// Interpreter over the demo Project, picks a Screen backend by flag,
// and drives Tick at MaxFrameRate until the scenario (or an unlimited
// live run) ends. Flag layout follows cmd/emulator/main.go's
// (-rom/-scale/-unlimited/-log becomes -backend/-scale/-scenario/-log).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"skipvm/internal/demoproject"
	"skipvm/internal/dispatch"
	"skipvm/internal/event"
	"skipvm/internal/ilog"
	"skipvm/internal/interp"
	"skipvm/internal/model"
	"skipvm/internal/runner"
	"skipvm/internal/screen"
	"skipvm/internal/screen/console"
	"skipvm/internal/screen/graphical"
)

func main() {
	backend := flag.String("backend", "console", "Screen backend: console, graphical, or null")
	scale := flag.Int("scale", 2, "Pixel scale for the graphical backend")
	scenarioPath := flag.String("scenario", "", "Optional YAML scenario file of scripted ScreenEvents")
	unlimited := flag.Bool("unlimited", false, "Run without the 1/40s per-tick frame sleep")
	enableLogging := flag.Bool("log", false, "Enable component logging (disabled by default)")
	flag.Parse()

	logger := ilog.New(10000)
	if *enableLogging {
		for _, c := range []ilog.Component{ilog.ComponentScheduler, ilog.ComponentEvaluator, ilog.ComponentDispatch,
			ilog.ComponentHats, ilog.ComponentBlocks, ilog.ComponentScreen, ilog.ComponentREPL} {
			logger.SetComponentEnabled(c, true)
		}
	}
	defer logger.Close()

	scr, closeScr, err := buildScreen(*backend, *scale)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if closeScr != nil {
		defer closeScr()
	}

	proj := demoproject.New()
	it := interp.New(proj, scr, interp.BuildTable(), logger)
	it.Start()

	var sc *runner.Scenario
	if *scenarioPath != "" {
		sc, err = runner.LoadScenario(*scenarioPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}

	frameDelay := time.Second / time.Duration(interp.MaxFrameRate)
	for frame := 0; sc == nil || frame < sc.Frames; frame++ {
		var events []event.ScreenEvent
		if sc != nil {
			events, err = sc.EventsFor(frame)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
		}
		it.Tick(events)
		renderFrame(scr, proj)
		if sc == nil && it.ThreadCount() == 0 {
			break
		}
		if !*unlimited {
			time.Sleep(frameDelay)
		}
	}
}

// buildScreen constructs the requested Screen backend. closeFn is nil
// for backends with nothing to tear down.
func buildScreen(backend string, scale int) (dispatch.Screen, func(), error) {
	switch backend {
	case "null":
		return screen.NewNullScreen(), nil, nil
	case "console":
		kb, err := console.Stdin()
		if err != nil {
			// Not every environment has a controllable terminal (e.g. a
			// piped scenario run); fall back to a keyboard-less console.
			return console.New(os.Stdout, 80, 24, nil), nil, nil
		}
		cs := console.New(os.Stdout, 80, 24, kb)
		return cs, func() { cs.Close() }, nil
	case "graphical":
		gs, err := graphical.New("skipvm", scale)
		if err != nil {
			return nil, nil, fmt.Errorf("runner: opening graphical backend: %w", err)
		}
		gs.Show()
		return gs, gs.Close, nil
	default:
		return nil, nil, fmt.Errorf("runner: unknown backend %q (want console, graphical, or null)", backend)
	}
}

// renderFrame asks backends capable of drawing a frame to do so; the
// null backend implements neither method and is skipped.
func renderFrame(scr dispatch.Screen, proj *model.Project) {
	switch s := scr.(type) {
	case *console.Screen:
		s.RenderFrame(proj)
	case *graphical.Screen:
		s.RenderFrame(proj)
	}
}
