// Package runner holds the YAML scenario support of the headless/
// backend-selecting host in cmd/runner (spec.md §1's Interpreter, run
// outside the REPL). cmd/runner drives Interpreter.Tick once per frame
// at MaxFrameRate and can replay a scripted sequence of ScreenEvents
// loaded here instead of a live backend's input. Grounded on the teacher's internal/emulator.Emulator.RunFrame
// loop (cmd/emulator drives it the same way, frame by frame, under a
// -unlimited/frame-limited flag).
package runner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"skipvm/internal/event"
)

// ScheduledEvent is one YAML scenario entry: a ScreenEvent fired at a
// specific frame number.
type ScheduledEvent struct {
	Frame int    `yaml:"frame"`
	Type  string `yaml:"type"` // "keyPressed" | "mouseDown" | "mouseUp"
	Key   string `yaml:"key,omitempty"`
}

// Scenario is a fixed-length scripted run: a frame count and the
// ScreenEvents to inject along the way, the console backend's
// test-fixture replay mode (SPEC_FULL.md's gopkg.in/yaml.v3 wiring).
type Scenario struct {
	Frames int              `yaml:"frames"`
	Events []ScheduledEvent `yaml:"events"`
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("runner: reading scenario %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("runner: parsing scenario %s: %w", path, err)
	}
	return &sc, nil
}

// EventsFor converts a Scenario's raw entries into the per-frame
// event.ScreenEvent slice the Interpreter's Tick consumes, keyed by
// frame number.
func (sc *Scenario) EventsFor(frame int) ([]event.ScreenEvent, error) {
	var out []event.ScreenEvent
	for _, e := range sc.Events {
		if e.Frame != frame {
			continue
		}
		switch e.Type {
		case "keyPressed":
			out = append(out, event.NewKeyPressed(e.Key))
		case "mouseDown":
			out = append(out, event.NewMouseDown())
		case "mouseUp":
			out = append(out, event.NewMouseUp())
		default:
			return nil, fmt.Errorf("runner: unknown scenario event type %q at frame %d", e.Type, e.Frame)
		}
	}
	return out, nil
}
