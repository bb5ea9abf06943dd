package sched

import (
	"testing"

	"skipvm/internal/dispatch"
	"skipvm/internal/event"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// fakeRuntime is the minimal dispatch.Runtime a Scheduler/Thread test
// needs; every method beyond Project/Now is an inert stand-in since no
// registered test handler touches ask/timer/drag/broadcast state.
type fakeRuntime struct {
	proj *model.Project
}

func (f *fakeRuntime) Project() *model.Project { return f.proj }
func (f *fakeRuntime) Screen() dispatch.Screen { return nil }
func (f *fakeRuntime) Now() float64            { return 0 }
func (f *fakeRuntime) TimerStart() float64     { return 0 }
func (f *fakeRuntime) ResetTimer()             {}
func (f *fakeRuntime) Answer() string          { return "" }
func (f *fakeRuntime) SetAnswer(string)        {}
func (f *fakeRuntime) TryAcquireAskLock(owner any) bool { return true }
func (f *fakeRuntime) ReleaseAskLock(owner any)         {}
func (f *fakeRuntime) AskLockHeldBy(owner any) bool     { return false }
func (f *fakeRuntime) Broadcast(message string) dispatch.WaitGroup { return nil }
func (f *fakeRuntime) DragSprite() *model.Sprite                  { return nil }
func (f *fakeRuntime) SetDragSprite(*model.Sprite, float64, float64) {}
func (f *fakeRuntime) ClearDragSprite()                           {}
func (f *fakeRuntime) HasDragged() bool                           { return false }
func (f *fakeRuntime) SetHasDragged(bool)                         {}

type fakeScriptable struct{ name string }

func (s *fakeScriptable) Name() string                           { return s.name }
func (s *fakeScriptable) IsStage() bool                          { return false }
func (s *fakeScriptable) Scripts() []*model.Script                { return nil }
func (s *fakeScriptable) Variables() map[string]*model.Variable   { return nil }
func (s *fakeScriptable) Lists() map[string]*model.List           { return nil }
func (s *fakeScriptable) Costumes() []*model.Costume              { return nil }
func (s *fakeScriptable) Sounds() []*model.Sound                  { return nil }
func (s *fakeScriptable) CostumeIndex() int                       { return 0 }
func (s *fakeScriptable) SetCostumeIndex(int)                     {}
func (s *fakeScriptable) CurrentCostume() *model.Costume           { return nil }
func (s *fakeScriptable) Size() float64                           { return 100 }
func (s *fakeScriptable) SetSize(float64)                         {}
func (s *fakeScriptable) Volume() float64                         { return 100 }
func (s *fakeScriptable) SetVolume(float64)                       {}
func (s *fakeScriptable) IsVisible() bool                         { return true }
func (s *fakeScriptable) SetVisible(bool)                         {}
func (s *fakeScriptable) IsDraggable() bool                       { return false }

// noopType/yieldForeverType/emitSayType are tiny BlockTypes that don't depend on the
// real catalog, keeping this test scoped to the scheduler's own
// Trigger/Tick/cancellation contract rather than block semantics.
var noopType = &model.BlockType{Command: "test.noop", ShapeOf: model.ShapeStack}
var yieldForeverType = &model.BlockType{Command: "test.yieldForever", ShapeOf: model.ShapeCap}
var emitSayType = &model.BlockType{Command: "test.emitSay", ShapeOf: model.ShapeStack}

func buildTestTable() *dispatch.Table {
	table := dispatch.NewTable()
	table.Register(noopType.Command, func(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
		return value.None()
	})
	table.Register(yieldForeverType.Command, func(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
		for {
			ctx.Yield()
		}
	})
	table.Register(emitSayType.Command, func(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
		ctx.Emit(dispatch.EventSay, "hi", true, "")
		return value.None()
	})
	return table
}

func TestTriggerAndTickRunsToCompletion(t *testing.T) {
	rt := &fakeRuntime{proj: &model.Project{}}
	s := New(rt, buildTestTable())
	script := &model.Script{Blocks: []*model.Block{model.NewBlock(noopType)}}
	s.Trigger(&fakeScriptable{name: "a"}, script, nil)
	if s.Len() != 1 {
		t.Fatalf("want 1 thread after Trigger, got %d", s.Len())
	}
	s.Tick()
	if s.Len() != 0 {
		t.Fatalf("want the thread to finish naturally within one Tick, got %d still running", s.Len())
	}
}

func TestTriggerReplacesExistingThreadForSameScript(t *testing.T) {
	rt := &fakeRuntime{proj: &model.Project{}}
	s := New(rt, buildTestTable())
	script := &model.Script{Blocks: []*model.Block{model.NewBlock(yieldForeverType)}}
	actor := &fakeScriptable{name: "a"}
	s.Trigger(actor, script, nil)
	s.Tick()
	if s.Len() != 1 {
		t.Fatalf("want 1 running thread, got %d", s.Len())
	}
	s.Trigger(actor, script, nil) // restart the same Script
	if s.Len() != 1 {
		t.Fatalf("want restarting the same Script to keep exactly 1 thread, got %d", s.Len())
	}
}

func TestTickSurfacesEmittedScriptEvents(t *testing.T) {
	rt := &fakeRuntime{proj: &model.Project{}}
	s := New(rt, buildTestTable())
	script := &model.Script{Blocks: []*model.Block{model.NewBlock(emitSayType)}}
	s.Trigger(&fakeScriptable{name: "a"}, script, nil)
	out := s.Tick()
	if len(out) != 1 || out[0].Kind != event.Say || out[0].Text != "hi" {
		t.Fatalf("want one surfaced say event, got %+v", out)
	}
}

func TestStopAllCancelsEveryThread(t *testing.T) {
	rt := &fakeRuntime{proj: &model.Project{}}
	s := New(rt, buildTestTable())
	script1 := &model.Script{Blocks: []*model.Block{model.NewBlock(yieldForeverType)}}
	script2 := &model.Script{Blocks: []*model.Block{model.NewBlock(yieldForeverType)}}
	s.Trigger(&fakeScriptable{name: "a"}, script1, nil)
	s.Trigger(&fakeScriptable{name: "b"}, script2, nil)
	s.Tick()
	if s.Len() != 2 {
		t.Fatalf("want 2 running threads, got %d", s.Len())
	}
	s.StopAll()
	if s.Len() != 0 {
		t.Fatalf("want StopAll to cancel every thread, got %d still running", s.Len())
	}
}

func TestPendingGroupTracksFinishedCallbacks(t *testing.T) {
	g := NewPendingGroup(2)
	if g.Done() {
		t.Fatal("want an unfinished group to report Done == false")
	}
	g.Finished()
	if g.Done() {
		t.Fatal("want the group to still be pending after only one Finished call")
	}
	g.Finished()
	if !g.Done() {
		t.Fatal("want the group to report Done == true after both Finished calls")
	}
}
