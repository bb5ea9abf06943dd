package sched

import (
	"skipvm/internal/dispatch"
	"skipvm/internal/event"
	"skipvm/internal/model"
)

// Scheduler holds the Script->Thread map and implements the round
// algorithm of spec.md §4.1. At most one Thread exists per Script at
// any time (spec.md §8 invariant 1); Trigger enforces this by finishing
// any prior Thread before installing the new one.
type Scheduler struct {
	Threads map[*model.Script]*Thread
	rt      dispatch.Runtime
	table   *dispatch.Table
}

// New builds an empty Scheduler bound to the given Runtime and dispatch
// Table (spec.md §9: the Table is immutable once built).
func New(rt dispatch.Runtime, table *dispatch.Table) *Scheduler {
	return &Scheduler{Threads: make(map[*model.Script]*Thread), rt: rt, table: table}
}

// Trigger creates (or replaces) the Thread for script, finishing any
// existing Thread first without firing its callback — "restarting a
// Script finishes the prior Thread before replacing it" (spec.md §3).
func (s *Scheduler) Trigger(scriptable model.Scriptable, script *model.Script, onFinish func()) *Thread {
	if old, ok := s.Threads[script]; ok {
		old.Cancel()
		delete(s.Threads, script)
	}
	th := NewThread(scriptable, script, onFinish)
	s.Threads[script] = th
	return th
}

// StopAll cancels every Thread without firing callbacks — the only
// cancellation path used by Interpreter.stop() and by the scheduler's
// own "stop all" ScriptEvent handling (spec.md §3, §5).
func (s *Scheduler) StopAll() {
	for script, th := range s.Threads {
		th.Cancel()
		delete(s.Threads, script)
	}
}

// Len reports how many Threads are currently live.
func (s *Scheduler) Len() int { return len(s.Threads) }

func (s *Scheduler) stopOthersInSprite(except *Thread, scriptable model.Scriptable) {
	for script, th := range s.Threads {
		if th == except {
			continue
		}
		if th.Scriptable == scriptable {
			th.Cancel()
			delete(s.Threads, script)
			if th.OnFinish != nil {
				th.OnFinish()
			}
		}
	}
}

func (s *Scheduler) firstUnprocessed(processed map[*Thread]bool) (*model.Script, *Thread) {
	for script, th := range s.Threads {
		if !processed[th] {
			return script, th
		}
	}
	return nil, nil
}

// Tick runs one cooperative round: every Thread currently ready
// advances until it frame-yields, terminates, or emits a stop event
// (spec.md §4.1). Threads hats create mid-round (via broadcast) are
// picked up within the same round, since they start unprocessed.
func (s *Scheduler) Tick() []event.ScriptEvent {
	var out []event.ScriptEvent
	processed := make(map[*Thread]bool)

	for {
		script, th := s.firstUnprocessed(processed)
		if th == nil {
			break
		}
		processed[th] = true

		for {
			res := th.Step(s.rt, s.table)

			if res.Terminated {
				delete(s.Threads, script)
				if th.OnFinish != nil {
					th.OnFinish()
				}
				break
			}
			if res.FrameYield {
				break
			}

			ev := *res.Event
			out = append(out, ev)
			if ev.Kind != event.Stop {
				continue // non-stop events don't end this Thread's draining
			}

			switch ev.StopValue {
			case event.StopAll:
				s.StopAll()
				return out
			case event.StopOtherInSprite:
				s.stopOthersInSprite(th, th.Scriptable)
			default:
				th.Cancel()
				delete(s.Threads, script)
				if th.OnFinish != nil {
					th.OnFinish()
				}
			}
			break
		}
	}

	return out
}
