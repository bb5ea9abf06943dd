package looks_test

import (
	"testing"

	"skipvm/internal/ilog"
	"skipvm/internal/interp"
	"skipvm/internal/model"
	"skipvm/internal/repl"
	"skipvm/internal/screen"
)

type byteSink struct{ buf *[]byte }

func (b *byteSink) Write(p []byte) (int, error) {
	*b.buf = append(*b.buf, p...)
	return len(p), nil
}

func newHarness(t *testing.T) (*interp.Interpreter, *model.Sprite, *repl.REPL) {
	t.Helper()
	sp := &model.Sprite{Base: model.Base{
		NameStr: "Sprite1",
		CostumesList: []*model.Costume{
			{NameStr: "costume1"},
			{NameStr: "costume2"},
		},
	}}
	stage := &model.Stage{Base: model.Base{NameStr: "Stage"}}
	proj := &model.Project{Stage: stage, SpritesList: []*model.Sprite{sp}}
	proj.Actors = []model.Scriptable{stage, sp}

	it := interp.New(proj, screen.NewNullScreen(), interp.BuildTable(), ilog.New(100))
	var out []byte
	r := repl.New(it, &byteSink{&out}, ilog.New(100))
	if err := r.SetTarget("Sprite1"); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	return it, sp, r
}

func TestSwitchCostumeToMatchesByName(t *testing.T) {
	_, sp, r := newHarness(t)
	if err := r.Eval(`switchCostumeTo(costume2)`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if sp.CostumeIndex() != 1 {
		t.Fatalf("want costume2 selected (index 1), got %d", sp.CostumeIndex())
	}
}

func TestNextCostumeWrapsAround(t *testing.T) {
	_, sp, r := newHarness(t)
	sp.SetCostumeIndex(1)
	if err := r.Eval(`nextCostume()`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if sp.CostumeIndex() != 0 {
		t.Fatalf("want nextCostume to wrap from the last costume back to 0, got %d", sp.CostumeIndex())
	}
}

func TestChangeEffectByAccumulates(t *testing.T) {
	_, sp, r := newHarness(t)
	if err := r.Eval(`changeEffectBy(ghost, 25)`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if err := r.Eval(`changeEffectBy(ghost, 25)`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if sp.Effects.Ghost != 50 {
		t.Fatalf("want ghost effect to accumulate to 50, got %v", sp.Effects.Ghost)
	}
}

func TestSetEffectToOverwritesRatherThanAccumulates(t *testing.T) {
	_, sp, r := newHarness(t)
	if err := r.Eval(`changeEffectBy(color, 10)`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if err := r.Eval(`setEffectTo(color, 99)`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if sp.Effects.Color != 99 {
		t.Fatalf("want setEffectTo to overwrite to 99, got %v", sp.Effects.Color)
	}
}

func TestClearGraphicEffectsZeroesEveryField(t *testing.T) {
	_, sp, r := newHarness(t)
	if err := r.Eval(`changeEffectBy(whirl, 40)`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if err := r.Eval(`clearGraphicEffects()`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if sp.Effects.Whirl != 0 {
		t.Fatalf("want whirl reset to 0, got %v", sp.Effects.Whirl)
	}
}

func TestSetSizeToAndChangeSizeBy(t *testing.T) {
	_, sp, r := newHarness(t)
	if err := r.Eval(`setSizeTo(50)`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if err := r.Eval(`changeSizeBy(10)`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if sp.Size() != 60 {
		t.Fatalf("want size 50+10=60, got %v", sp.Size())
	}
}

func TestShowAndHideToggleVisibility(t *testing.T) {
	_, sp, r := newHarness(t)
	if err := r.Eval(`hide()`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if sp.IsVisible() {
		t.Fatal("want hide() to set visible false")
	}
	if err := r.Eval(`show()`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !sp.IsVisible() {
		t.Fatal("want show() to set visible true")
	}
}

func TestGoToFrontMovesActorToEndOfDrawOrder(t *testing.T) {
	it, sp, r := newHarness(t)
	other := &model.Sprite{Base: model.Base{NameStr: "Sprite2"}}
	it.Project().SpritesList = append(it.Project().SpritesList, other)
	it.Project().Actors = append(it.Project().Actors, other)
	// initial order: Stage, Sprite1, Sprite2
	if err := r.Eval(`goToFront()`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	actors := it.Project().Actors
	if actors[len(actors)-1] != sp {
		t.Fatalf("want Sprite1 moved to the end (front) of Actors, got %v", actors)
	}
}
