package eval

import (
	"testing"

	"skipvm/internal/dispatch"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

type fakeContext struct {
	proj *model.Project
	ran  []string
}

func (c *fakeContext) Eval(s model.Scriptable, arg model.Arg, insert *model.Insert) value.Value {
	return Evaluate(c, builtinTable(), s, arg, insert)
}
func (c *fakeContext) RunBody(s model.Scriptable, body []*model.Block) {
	for _, b := range body {
		c.ran = append(c.ran, b.Type.Command)
	}
	RunBody(c, builtinTable(), s, body)
}
func (c *fakeContext) Yield()                                               {}
func (c *fakeContext) Emit(kind dispatch.EventKind, text string, hasText bool, stopValue string) {}
func (c *fakeContext) Project() *model.Project                             { return c.proj }
func (c *fakeContext) Screen() dispatch.Screen                             { return nil }
func (c *fakeContext) Now() float64                                        { return 0 }
func (c *fakeContext) TimerStart() float64                                 { return 0 }
func (c *fakeContext) ResetTimer()                                         {}
func (c *fakeContext) Answer() string                                      { return "" }
func (c *fakeContext) SetAnswer(string)                                    {}
func (c *fakeContext) TryAcquireAskLock(owner any) bool                    { return true }
func (c *fakeContext) ReleaseAskLock(owner any)                            {}
func (c *fakeContext) AskLockHeldBy(owner any) bool                        { return false }
func (c *fakeContext) Broadcast(message string) dispatch.WaitGroup         { return nil }
func (c *fakeContext) DragSprite() *model.Sprite                           { return nil }
func (c *fakeContext) SetDragSprite(*model.Sprite, float64, float64)       {}
func (c *fakeContext) ClearDragSprite()                                    {}
func (c *fakeContext) HasDragged() bool                                    { return false }
func (c *fakeContext) SetHasDragged(bool)                                  {}

var addType = &model.BlockType{
	Command: "test.add",
	ShapeOf: model.ShapeReporter,
	Inserts: []model.Insert{
		model.NewInsert(model.InsertNumber, model.ShapeInsertNumber, false),
		model.NewInsert(model.InsertNumber, model.ShapeInsertNumber, false),
	},
}

func builtinTable() *dispatch.Table {
	table := dispatch.NewTable()
	table.Register(addType.Command, func(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
		a := EvalArg(ctx, table, s, b, 0)
		bb := EvalArg(ctx, table, s, b, 1)
		return value.Number(a.AsNumber() + bb.AsNumber())
	})
	return table
}

type fakeScriptable struct{ name string }

func (s *fakeScriptable) Name() string                          { return s.name }
func (s *fakeScriptable) IsStage() bool                         { return false }
func (s *fakeScriptable) Scripts() []*model.Script               { return nil }
func (s *fakeScriptable) Variables() map[string]*model.Variable  { return map[string]*model.Variable{} }
func (s *fakeScriptable) Lists() map[string]*model.List          { return map[string]*model.List{} }
func (s *fakeScriptable) Costumes() []*model.Costume             { return nil }
func (s *fakeScriptable) Sounds() []*model.Sound                 { return nil }
func (s *fakeScriptable) CostumeIndex() int                      { return 0 }
func (s *fakeScriptable) SetCostumeIndex(int)                    {}
func (s *fakeScriptable) CurrentCostume() *model.Costume          { return nil }
func (s *fakeScriptable) Size() float64                          { return 100 }
func (s *fakeScriptable) SetSize(float64)                        {}
func (s *fakeScriptable) Volume() float64                        { return 100 }
func (s *fakeScriptable) SetVolume(float64)                      {}
func (s *fakeScriptable) IsVisible() bool                        { return true }
func (s *fakeScriptable) SetVisible(bool)                        {}
func (s *fakeScriptable) IsDraggable() bool                      { return false }

func TestEvaluateLeafValues(t *testing.T) {
	ctx := &fakeContext{proj: &model.Project{}}
	table := builtinTable()
	s := &fakeScriptable{name: "a"}

	if got := Evaluate(ctx, table, s, model.LeafArg(3.0), nil); got.AsNumber() != 3 {
		t.Fatalf("want leaf number 3, got %v", got)
	}
	if got := Evaluate(ctx, table, s, model.LeafArg("hi"), nil); got.AsText() != "hi" {
		t.Fatalf("want leaf text \"hi\", got %v", got)
	}
	if got := Evaluate(ctx, table, s, model.LeafArg(true), nil); !got.AsBool() {
		t.Fatal("want leaf bool true")
	}
}

func TestEvaluateNestedBlock(t *testing.T) {
	ctx := &fakeContext{proj: &model.Project{}}
	table := builtinTable()
	s := &fakeScriptable{name: "a"}

	inner := model.NewBlock(addType, model.LeafArg(2.0), model.LeafArg(3.0))
	outer := model.NewBlock(addType, model.BlockArg(inner), model.LeafArg(10.0))

	got := Evaluate(ctx, table, s, model.BlockArg(outer), nil)
	if got.AsNumber() != 15 {
		t.Fatalf("want (2+3)+10 == 15, got %v", got)
	}
}

func TestEvaluateUnevaluatedInsertSkipsSequence(t *testing.T) {
	ctx := &fakeContext{proj: &model.Project{}}
	table := builtinTable()
	s := &fakeScriptable{name: "a"}

	body := []*model.Block{model.NewBlock(addType, model.LeafArg(1.0), model.LeafArg(1.0))}
	insert := model.NewInsert(model.InsertNumber, model.ShapeInsertStack, true)
	got := Evaluate(ctx, table, s, model.SequenceArg(body), &insert)
	if !got.IsNone() {
		t.Fatalf("want an unevaluated C-shape body to evaluate to None, got %v", got)
	}
}

func TestEvaluateStringInsertCoercesNumericTextToCanonicalText(t *testing.T) {
	ctx := &fakeContext{proj: &model.Project{}}
	table := builtinTable()
	s := &fakeScriptable{name: "a"}

	insert := model.NewInsert(model.InsertString, model.ShapeInsertString, false)
	got := Evaluate(ctx, table, s, model.LeafArg("3.0"), &insert)
	if !got.IsText() || got.AsText() != "3" {
		t.Fatalf("want numeric text canonicalized to \"3\", got %v", got)
	}
}

func TestEvaluateRebindsGlobalVariable(t *testing.T) {
	gv := &model.Variable{NameStr: "score"}
	proj := &model.Project{VariablesMap: map[string]*model.Variable{"score": gv}}
	ctx := &fakeContext{proj: proj}
	table := builtinTable()
	s := &fakeScriptable{name: "a"}

	insert := model.NewInsert(model.InsertVar, model.ShapeInsertString, false)
	got := Evaluate(ctx, table, s, model.LeafArg("score"), &insert)
	if VarFromValue(got) != gv {
		t.Fatalf("want the global variable rebound, got %v", got)
	}
}

func TestEvaluateRebindsSpriteMenuToStageSentinel(t *testing.T) {
	stage := &model.Stage{Base: model.Base{NameStr: "Stage"}}
	proj := &model.Project{Stage: stage}
	ctx := &fakeContext{proj: proj}
	table := builtinTable()
	s := &fakeScriptable{name: "a"}

	insert := model.NewInsert(model.InsertSpriteOrStage, model.ShapeInsertMenu, false)
	got := Evaluate(ctx, table, s, model.LeafArg("Stage"), &insert)
	if StageFromValue(got) != stage {
		t.Fatalf("want the Stage sentinel rebound, got %v", got)
	}
}

func TestEvaluateLeavesMousePointerAndEdgeUnbound(t *testing.T) {
	ctx := &fakeContext{proj: &model.Project{}}
	table := builtinTable()
	s := &fakeScriptable{name: "a"}
	insert := model.NewInsert(model.InsertSpriteOrMouse, model.ShapeInsertMenu, false)

	got := Evaluate(ctx, table, s, model.LeafArg(value.MousePointer), &insert)
	if !got.IsText() || got.AsText() != value.MousePointer {
		t.Fatalf("want mouse-pointer to stay an unbound text sentinel, got %v", got)
	}
}

func TestRunBodySkipsHatBlocks(t *testing.T) {
	ctx := &fakeContext{proj: &model.Project{}}
	table := builtinTable()
	s := &fakeScriptable{name: "a"}

	hat := model.NewBlock(&model.BlockType{Command: "test.hat", ShapeOf: model.ShapeHat})
	stack := model.NewBlock(addType, model.LeafArg(1.0), model.LeafArg(1.0))
	RunBody(ctx, table, s, []*model.Block{hat, stack})
	// No panic/abort is what this checks: the hat has no registered
	// handler and no workaround, and evaluateBlock returns None for any
	// hat before it looks for a handler, so the hat never aborts the body.
}

func TestRunScriptSkipsLeadingHat(t *testing.T) {
	ctx := &fakeContext{proj: &model.Project{}}
	table := builtinTable()
	s := &fakeScriptable{name: "a"}

	hat := model.NewBlock(&model.BlockType{Command: "test.hat", ShapeOf: model.ShapeHat})
	stack := model.NewBlock(addType, model.LeafArg(1.0), model.LeafArg(1.0))
	RunScript(ctx, table, s, []*model.Block{hat, stack})
}

func TestEvaluateBlockPanicsAbortOnUnknownCommand(t *testing.T) {
	ctx := &fakeContext{proj: &model.Project{}}
	table := dispatch.NewTable() // empty: no handlers registered
	s := &fakeScriptable{name: "a"}
	unknown := model.NewBlock(&model.BlockType{Command: "test.unknown", ShapeOf: model.ShapeStack})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("want an Abort panic for an unregistered, workaround-less command")
		}
		if _, ok := r.(Abort); !ok {
			t.Fatalf("want an eval.Abort panic, got %T", r)
		}
	}()
	Evaluate(ctx, table, s, model.BlockArg(unknown), nil)
}
