// Package demoproject builds a small fixture Project directly in code,
// the same way the teacher's cmd/demorom assembles a fixture ROM out of
// hand-written instructions instead of reading one from disk. It exists
// because the real project-model loader is explicitly out of scope
// (spec.md §1: "Interpreter consumes, never parses") — cmd/replcli and
// cmd/runner need *something* to run against, and a hand-built fixture
// is the stand-in until a loader exists.
package demoproject

import "skipvm/internal/model"

// New builds a one-stage, one-sprite Project: a Stage named "Stage" and
// a Sprite named "Sprite1" at the origin, facing right (90), pen up, with one
// placeholder costume — just enough state for every block category's
// handler to have something to act on.
func New() *model.Project {
	stage := &model.Stage{
		Base: model.Base{
			NameStr:      "Stage",
			VariablesMap: map[string]*model.Variable{},
			ListsMap:     map[string]*model.List{},
			CostumesList: []*model.Costume{{NameStr: "backdrop1", ImageWidth: model.StageWidth, ImageHeight: model.StageHeight}},
			SoundsList:   nil,
			SizePercent:  100,
			VolumePct:    100,
			Visible:      true,
		},
	}

	sprite := &model.Sprite{
		Base: model.Base{
			NameStr:      "Sprite1",
			VariablesMap: map[string]*model.Variable{},
			ListsMap:     map[string]*model.List{},
			CostumesList: []*model.Costume{{NameStr: "costume1", ImageWidth: 64, ImageHeight: 64, RotationCenterX: 32, RotationCenterY: 32}},
			SizePercent:  100,
			VolumePct:    100,
			Visible:      true,
			Draggable:    true,
		},
		DirectionDeg:  90,
		RotationStyle: model.RotationNormal,
		PenSize:       1,
	}
	sprite.ScriptsList = []*model.Script{greenFlagScript()}

	proj := &model.Project{
		Stage:        stage,
		SpritesList:  []*model.Sprite{sprite},
		VariablesMap: map[string]*model.Variable{},
		ListsMap:     map[string]*model.List{},
		Tempo:        60,
		NameStr:      "demo",
	}
	proj.Actors = []model.Scriptable{stage, sprite}
	return proj
}

// greenFlagScript builds a small finite whenGreenFlag script — say a
// greeting for a second, then take a few steps and turn — so a
// cmd/runner smoke run against this fixture actually produces visible
// ScriptEvents and sprite motion instead of running zero scripts.
func greenFlagScript() *model.Script {
	return &model.Script{Blocks: []*model.Block{
		model.NewBlock(model.WhenGreenFlag),
		model.NewBlock(model.SayForSecs, model.LeafArg("Hello from skipvm!"), model.LeafArg(1.0)),
		model.NewBlock(model.Repeat, model.LeafArg(4.0), model.SequenceArg([]*model.Block{
			model.NewBlock(model.Move, model.LeafArg(20.0)),
			model.NewBlock(model.TurnRight, model.LeafArg(90.0)),
		})),
	}}
}
