package interp

import (
	"testing"

	"skipvm/internal/event"
	"skipvm/internal/ilog"
	"skipvm/internal/model"
	"skipvm/internal/screen"
)

func newFixtureProject() (*model.Project, *model.Sprite) {
	sp := &model.Sprite{
		Base: model.Base{
			NameStr:      "Sprite1",
			VariablesMap: map[string]*model.Variable{},
			ListsMap:     map[string]*model.List{},
			CostumesList: []*model.Costume{{NameStr: "costume1", ImageWidth: 10, ImageHeight: 10}},
			SizePercent:  100,
			VolumePct:    100,
			Visible:      true,
		},
		DirectionDeg: 90,
	}
	stage := &model.Stage{Base: model.Base{
		NameStr:      "Stage",
		VariablesMap: map[string]*model.Variable{},
		ListsMap:     map[string]*model.List{},
	}}
	proj := &model.Project{Stage: stage, SpritesList: []*model.Sprite{sp}, VariablesMap: map[string]*model.Variable{}, ListsMap: map[string]*model.List{}}
	proj.Actors = []model.Scriptable{stage, sp}
	return proj, sp
}

func newTestInterpreter(t *testing.T) (*Interpreter, *model.Project, *model.Sprite) {
	t.Helper()
	proj, sp := newFixtureProject()
	logger := ilog.New(100)
	it := New(proj, screen.NewNullScreen(), BuildTable(), logger)
	return it, proj, sp
}

func TestStartTriggersGreenFlagHats(t *testing.T) {
	it, _, sp := newTestInterpreter(t)
	sp.ScriptsList = []*model.Script{{Blocks: []*model.Block{
		model.NewBlock(model.WhenGreenFlag),
		model.NewBlock(model.Move, model.LeafArg(5.0)),
	}}}
	it.Start()
	it.Tick(nil)
	x, _ := sp.Position()
	if x != 5 {
		t.Fatalf("want x == 5 after the green-flag script moved, got %v", x)
	}
}

func TestTickAppliesKeyPressedHat(t *testing.T) {
	it, _, sp := newTestInterpreter(t)
	sp.ScriptsList = []*model.Script{{Blocks: []*model.Block{
		model.NewBlock(model.WhenKeyPressed, model.LeafArg("space")),
		model.NewBlock(model.Move, model.LeafArg(7.0)),
	}}}
	it.Tick([]event.ScreenEvent{event.NewKeyPressed("space")})
	x, _ := sp.Position()
	if x != 7 {
		t.Fatalf("want x == 7 after the key-pressed script moved, got %v", x)
	}
}

func TestStopCancelsRunningThreads(t *testing.T) {
	it, _, sp := newTestInterpreter(t)
	sp.ScriptsList = []*model.Script{{Blocks: []*model.Block{
		model.NewBlock(model.WhenGreenFlag),
		model.NewBlock(model.Forever, model.SequenceArg([]*model.Block{
			model.NewBlock(model.Move, model.LeafArg(1.0)),
		})),
	}}}
	it.Start()
	it.Tick(nil)
	if it.ThreadCount() == 0 {
		t.Fatal("want a forever loop to still be running after one tick")
	}
	it.Stop()
	if it.ThreadCount() != 0 {
		t.Fatalf("want Stop to cancel all threads, got %d still running", it.ThreadCount())
	}
}

func TestBroadcastTriggersReceivers(t *testing.T) {
	it, _, sp := newTestInterpreter(t)
	sp.ScriptsList = []*model.Script{
		{Blocks: []*model.Block{
			model.NewBlock(model.WhenGreenFlag),
			model.NewBlock(model.Broadcast, model.LeafArg("go")),
		}},
		{Blocks: []*model.Block{
			model.NewBlock(model.WhenIReceive, model.LeafArg("go")),
			model.NewBlock(model.Move, model.LeafArg(3.0)),
		}},
	}
	it.Start()
	it.Tick(nil)
	x, _ := sp.Position()
	if x != 3 {
		t.Fatalf("want the receiver script to have moved the sprite to x=3, got %v", x)
	}
}

func TestRestartingAScriptReplacesItsThread(t *testing.T) {
	it, _, sp := newTestInterpreter(t)
	script := &model.Script{Blocks: []*model.Block{
		model.NewBlock(model.Forever, model.SequenceArg([]*model.Block{
			model.NewBlock(model.Move, model.LeafArg(1.0)),
		})),
	}}
	it.RunScript(sp, script)
	if it.ThreadCount() != 1 {
		t.Fatalf("want 1 thread after the first RunScript, got %d", it.ThreadCount())
	}
	it.RunScript(sp, script)
	if it.ThreadCount() != 1 {
		t.Fatalf("want restarting the same Script to still report 1 live thread, got %d", it.ThreadCount())
	}
}
