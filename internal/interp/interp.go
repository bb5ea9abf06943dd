// Package interp implements the Interpreter (spec.md §3, §4.1, §4.3):
// the top-level object owning a Project, a Screen backend, the Block
// Dispatch Table, and the Scheduler, and exposing the one cooperative
// entry point (Tick) the host calls once per frame. Grounded on the
// teacher's top-level emulator driver (cmd/emulator wiring CPU+PPU+APU
// through one Step call per frame), generalized from a cycle-accurate
// hardware loop to a 40Hz-quantized cooperative script loop.
package interp

import (
	"skipvm/internal/blocks/control"
	"skipvm/internal/blocks/lists"
	"skipvm/internal/blocks/looks"
	"skipvm/internal/blocks/motion"
	"skipvm/internal/blocks/operators"
	"skipvm/internal/blocks/pen"
	"skipvm/internal/blocks/sensing"
	"skipvm/internal/blocks/sound"
	"skipvm/internal/blocks/variables"

	"skipvm/internal/augment"
	"skipvm/internal/dispatch"
	"skipvm/internal/event"
	"skipvm/internal/hats"
	"skipvm/internal/ilog"
	"skipvm/internal/model"
	"skipvm/internal/sched"
)

// MaxFrameRate is the cooperative quantization ceiling spec.md §4.1
// names: no more than 40 rounds of the scheduler run per second of
// wall-clock interpreter time.
const MaxFrameRate = 40

// BuildTable constructs the immutable Block Dispatch Table every
// Interpreter shares (spec.md §9: "must be an immutable table built at
// Interpreter construction, not mutable shared state" — built once here
// and handed to every Interpreter instance that wants it).
func BuildTable() *dispatch.Table {
	table := dispatch.NewTable()
	motion.Register(table)
	looks.Register(table)
	sound.Register(table)
	pen.Register(table)
	control.Register(table)
	sensing.Register(table)
	operators.Register(table)
	variables.Register(table)
	lists.Register(table)
	return table
}

// Interpreter is the runtime described by spec.md §3: a Project, a
// Screen, the shared dispatch Table, a Scheduler, and the ask/timer/
// drag state block handlers reach through dispatch.Runtime.
type Interpreter struct {
	project *model.Project
	screen  dispatch.Screen
	table   *dispatch.Table
	sched   *sched.Scheduler
	log     *ilog.Logger

	running    bool
	startedAt  float64
	now        float64
	timerStart float64

	answer  string
	askLock any

	dragSprite *model.Sprite
	dragDX     float64
	dragDY     float64
	hasDragged bool
}

// New builds an Interpreter over proj and screen, augmenting the
// project's Scriptables exactly once (spec.md §3 Lifecycle).
func New(proj *model.Project, screen dispatch.Screen, table *dispatch.Table, log *ilog.Logger) *Interpreter {
	augment.Run(proj)
	it := &Interpreter{project: proj, screen: screen, table: table, log: log}
	it.sched = sched.New(it, table)
	return it
}

// Project, Screen, Now implement dispatch.Runtime.
func (it *Interpreter) Project() *model.Project { return it.project }
func (it *Interpreter) Screen() dispatch.Screen { return it.screen }
func (it *Interpreter) Now() float64            { return it.now }

func (it *Interpreter) TimerStart() float64 { return it.timerStart }
func (it *Interpreter) ResetTimer()         { it.timerStart = it.now }

func (it *Interpreter) Answer() string       { return it.answer }
func (it *Interpreter) SetAnswer(a string)   { it.answer = a }

func (it *Interpreter) TryAcquireAskLock(owner any) bool {
	if it.askLock == nil {
		it.askLock = owner
		return true
	}
	return it.askLock == owner
}

func (it *Interpreter) ReleaseAskLock(owner any) {
	if it.askLock == owner {
		it.askLock = nil
	}
}

func (it *Interpreter) AskLockHeldBy(owner any) bool { return it.askLock == owner }

// Broadcast fires every whenIReceive hat matching message and returns a
// WaitGroup the `broadcast and wait` handler can poll (spec.md §4.3/
// §4.4).
func (it *Interpreter) Broadcast(message string) dispatch.WaitGroup {
	group := hats.TriggerReceive(it.project, it.sched, message)
	return group
}

func (it *Interpreter) DragSprite() *model.Sprite { return it.dragSprite }

func (it *Interpreter) SetDragSprite(sp *model.Sprite, dx, dy float64) {
	it.dragSprite = sp
	it.dragDX, it.dragDY = dx, dy
	it.hasDragged = false
}

func (it *Interpreter) ClearDragSprite() {
	it.dragSprite = nil
	it.hasDragged = false
}

func (it *Interpreter) HasDragged() bool    { return it.hasDragged }
func (it *Interpreter) SetHasDragged(v bool) { it.hasDragged = v }

// Start fires every whenGreenFlag hat and resets run-scoped state
// (spec.md §3 start()).
func (it *Interpreter) Start() {
	it.running = true
	it.now = 0
	it.startedAt = 0
	it.timerStart = 0
	it.answer = ""
	it.log.Log(ilog.ComponentScheduler, ilog.LevelInfo, "interpreter start", nil)
	hats.TriggerGreenFlag(it.project, it.sched)
}

// Stop cancels every running Thread without firing callbacks (spec.md
// §3 stop(), shared with the `stop all` block's StopAll path).
func (it *Interpreter) Stop() {
	it.sched.StopAll()
	it.running = false
	it.log.Log(ilog.ComponentScheduler, ilog.LevelInfo, "interpreter stop", nil)
}

// Running reports whether Start has been called without a matching
// Stop.
func (it *Interpreter) Running() bool { return it.running }

// RunScript starts script on scriptable as a new Thread, the same way a
// hat trigger does (spec.md §3: "at most one live Thread per Script"),
// for scripts that don't originate from a hat trigger at all — the
// REPL's "push a stack block and run it now" entry point (spec.md §1).
func (it *Interpreter) RunScript(s model.Scriptable, script *model.Script) {
	it.sched.Trigger(s, script, nil)
}

// ThreadCount reports how many Threads the scheduler is currently
// running, so a driver that pushed a one-off script (the REPL) knows
// when it has finished without reaching into sched internals.
func (it *Interpreter) ThreadCount() int { return it.sched.Len() }

// Tick advances wall-clock time by one frame (1/MaxFrameRate seconds),
// applies incoming ScreenEvents (key/mouse hat triggers), and runs one
// cooperative scheduler round, returning every ScriptEvent surfaced
// this frame (spec.md §4.1, §4.3, §6.2/§6.4).
func (it *Interpreter) Tick(events []event.ScreenEvent) []event.ScriptEvent {
	it.now += 1.0 / MaxFrameRate
	it.maintainDrag()
	for _, ev := range events {
		it.applyScreenEvent(ev)
	}
	out := it.sched.Tick()
	it.log.Logf(ilog.ComponentScheduler, ilog.LevelDebug, "tick: %d events, %d threads live", len(out), it.sched.Len())
	return out
}

// maintainDrag implements spec.md §4.1's drag pre-step: while a sprite
// is being dragged, pin it to mouse + drag_offset every frame, and
// latch has_dragged once it actually moves so the pending mouse-up
// knows not to also fire whenClicked.
func (it *Interpreter) maintainDrag() {
	if it.dragSprite == nil {
		return
	}
	x, y := it.mouseX()+it.dragDX, it.mouseY()+it.dragDY
	if px, py := it.dragSprite.Position(); px != x || py != y {
		it.hasDragged = true
	}
	it.dragSprite.SetPosition(x, y)
}

func (it *Interpreter) applyScreenEvent(ev event.ScreenEvent) {
	switch ev.Kind {
	case event.KeyPressed:
		hats.TriggerKeyPressed(it.project, it.sched, ev.Key)
	case event.MouseDown:
		if target := hats.FindClickTarget(it.project, it.screen, it.mouseX(), it.mouseY()); target != nil {
			if target.IsDraggable() {
				x, y := target.Position()
				mx, my := it.mouseX(), it.mouseY()
				it.SetDragSprite(target, mx-x, my-y)
			} else {
				hats.TriggerClicked(it.project, it.sched, target)
			}
		}
	case event.MouseUp:
		if it.dragSprite != nil {
			if !it.hasDragged {
				hats.TriggerClicked(it.project, it.sched, it.dragSprite)
			}
			it.ClearDragSprite()
		}
	}
}

func (it *Interpreter) mouseX() float64 { x, _ := it.screen.MousePos(); return x }
func (it *Interpreter) mouseY() float64 { _, y := it.screen.MousePos(); return y }
