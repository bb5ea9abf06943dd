// Package screen defines the shared state tracked by every concrete
// Screen backend (spec.md §6.3) and a headless NullScreen used by tests
// and the REPL's default run mode. The real backends — console
// (internal/screen/console) and graphical (internal/screen/graphical) —
// both embed State and only add their own rendering/input plumbing.
package screen

import (
	"skipvm/internal/bounds"
	"skipvm/internal/geom"
	"skipvm/internal/model"
)

// State tracks pressed keys and mouse state the way the teacher's
// input.InputSystem tracks controller button state — a plain bitset of
// "currently pressed" flags updated by the host's event loop and read
// by block handlers — generalized from a fixed 12-button controller to
// an open set of named keys, since spec.md's key insert is a string,
// not a fixed enum.
type State struct {
	pressedKeys map[string]bool
	mouseX      float64
	mouseY      float64
	mouseDown   bool
}

// NewState builds an empty input State.
func NewState() *State {
	return &State{pressedKeys: make(map[string]bool)}
}

func (st *State) SetKeyPressed(name string, pressed bool) {
	if pressed {
		st.pressedKeys[name] = true
	} else {
		delete(st.pressedKeys, name)
	}
}

func (st *State) IsKeyPressed(name string) bool { return st.pressedKeys[name] }

func (st *State) SetMousePos(x, y float64) { st.mouseX, st.mouseY = x, y }
func (st *State) MousePos() (float64, float64) { return st.mouseX, st.mouseY }

func (st *State) SetMouseDown(down bool) { st.mouseDown = down }
func (st *State) IsMouseDown() bool      { return st.mouseDown }

// TouchingMouse, TouchingSprite, TouchingColor, TouchingColorOver give
// every backend the same geometry-driven touching tests (spec.md §4.5);
// only the color variants need a real framebuffer, which NullScreen
// fakes as "never touching any color" and the graphical backend
// implements for real against its raster layer.
func (st *State) TouchingMouse(s *model.Sprite) bool {
	return bounds.Of(s).ContainsPoint(geom.Point{X: st.mouseX, Y: st.mouseY})
}

func (st *State) TouchingSprite(s, other *model.Sprite) bool {
	if !s.IsVisible() || !other.IsVisible() {
		return false
	}
	return bounds.Of(s).Overlaps(bounds.Of(other))
}

// NullScreen is a headless Screen backend with no rendering and no
// audio: touching-color always misses, ask resolves immediately to the
// empty string, sounds are accepted and discarded. Used by unit tests
// and as the REPL's default when no graphical/console backend was
// requested. This is the one Screen implementation built on the
// standard library alone — it exists only to give tests and the
// REPL something to run against without a display, not as a
// production rendering path, so it carries none of the domain
// dependencies the two real backends wire (see SPEC_FULL.md's
// DOMAIN STACK table).
type NullScreen struct {
	*State
	penLines []penLine
}

type penLine struct{ x0, y0, x1, y1, color, size float64 }

// NewNullScreen builds a NullScreen with no keys pressed and the mouse
// at the stage origin.
func NewNullScreen() *NullScreen {
	return &NullScreen{State: NewState()}
}

func (n *NullScreen) TouchingColor(s *model.Sprite, color float64) bool { return false }
func (n *NullScreen) TouchingColorOver(s *model.Sprite, color, over float64) bool {
	return false
}

func (n *NullScreen) Ask(s model.Scriptable, prompt string) (string, bool) { return "", true }

func (n *NullScreen) PlaySound(snd *model.Sound)                {}
func (n *NullScreen) PlaySoundUntilDone(snd *model.Sound) bool   { return true }
func (n *NullScreen) StopSounds()                                {}
func (n *NullScreen) PlayDrum(drum int, secs float64)            {}
func (n *NullScreen) PlayNote(note int, secs float64)            {}

func (n *NullScreen) DrawLine(x0, y0, x1, y1, color, size float64) {
	n.penLines = append(n.penLines, penLine{x0, y0, x1, y1, color, size})
}

// PenLineCount reports how many line segments have accumulated since
// construction (or the last Clear ScriptEvent the host applies by
// calling ClearPen) — useful for tests asserting a pen-down move drew.
func (n *NullScreen) PenLineCount() int { return len(n.penLines) }

// ClearPen empties the retained pen-line list, mirroring the `clear`
// block's ScriptEvent handling at the host level (spec.md §6.2).
func (n *NullScreen) ClearPen() { n.penLines = nil }
