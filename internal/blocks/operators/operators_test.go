package operators_test

import (
	"strings"
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

func newHarness(t *testing.T) (*repl.REPL, *[]byte) {
	t.Helper()
	sp := &model.Sprite{Base: model.Base{NameStr: "Sprite1"}}
	stage := &model.Stage{Base: model.Base{NameStr: "Stage"}}
	proj := &model.Project{Stage: stage, SpritesList: []*model.Sprite{sp}}
	proj.Actors = []model.Scriptable{stage, sp}

	it := interp.New(proj, screen.NewNullScreen(), interp.BuildTable(), ilog.New(100))
	var out []byte
	r := repl.New(it, &byteSink{&out}, ilog.New(100))
	if err := r.SetTarget("Sprite1"); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	return r, &out
}

func evalSay(t *testing.T, r *repl.REPL, expr string) {
	t.Helper()
	if err := r.Eval("say(" + expr + ")"); err != nil {
		t.Fatalf("Eval(%q): %v", expr, err)
	}
}

func TestArithmeticOperators(t *testing.T) {
	r, out := newHarness(t)
	evalSay(t, r, `add(2, 3)`)
	evalSay(t, r, `subtract(10, 4)`)
	evalSay(t, r, `multiply(3, 4)`)
	evalSay(t, r, `divide(9, 2)`)
	got := string(*out)
	for _, want := range []string{"5", "6", "12", "4.5"} {
		if !strings.Contains(got, want) {
			t.Fatalf("want output to contain %q, got %q", want, got)
		}
	}
}

func TestDivideByZeroYieldsInfinity(t *testing.T) {
	r, out := newHarness(t)
	evalSay(t, r, `divide(1, 0)`)
	if !strings.Contains(string(*out), "Infinity") && !strings.Contains(string(*out), "+Inf") {
		t.Fatalf("want divide-by-zero to surface as a formatted infinity, got %q", *out)
	}
}

func TestModFollowsDivisorSignFlooredConvention(t *testing.T) {
	r, out := newHarness(t)
	evalSay(t, r, `mod(-1, 3)`)
	if !strings.Contains(string(*out), "2") {
		t.Fatalf("want floored mod(-1,3) == 2 (Go's truncated %% would give -1), got %q", *out)
	}
}

func TestRoundsToNearestInteger(t *testing.T) {
	r, out := newHarness(t)
	evalSay(t, r, `round(2.5)`)
	if !strings.Contains(string(*out), "3") {
		t.Fatalf("want round(2.5) == 3, got %q", *out)
	}
}

func TestComparisonOperatorsNumeric(t *testing.T) {
	r, out := newHarness(t)
	if err := r.Eval(`if(lessThan(1, 2)) { say("lt") }`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if err := r.Eval(`if(greaterThan(2, 1)) { say("gt") }`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if err := r.Eval(`if(equals(3, 3)) { say("eq") }`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	got := string(*out)
	for _, want := range []string{"lt", "gt", "eq"} {
		if !strings.Contains(got, want) {
			t.Fatalf("want %q present in comparison output, got %q", want, got)
		}
	}
}

func TestComparisonFallsBackToCaseInsensitiveText(t *testing.T) {
	r, out := newHarness(t)
	if err := r.Eval(`if(equals("Hello", "hello")) { say("same") }`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !strings.Contains(string(*out), "same") {
		t.Fatalf("want non-numeric equals to compare case-insensitively, got %q", *out)
	}
}

func TestAndOrNot(t *testing.T) {
	r, out := newHarness(t)
	if err := r.Eval(`if(and(true, true)) { say("and-ok") }`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if err := r.Eval(`if(or(false, true)) { say("or-ok") }`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if err := r.Eval(`if(not(false)) { say("not-ok") }`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	got := string(*out)
	for _, want := range []string{"and-ok", "or-ok", "not-ok"} {
		if !strings.Contains(got, want) {
			t.Fatalf("want %q present, got %q", want, got)
		}
	}
}

func TestPickRandomStaysWithinInclusiveRange(t *testing.T) {
	r, _ := newHarness(t)
	for i := 0; i < 50; i++ {
		if err := r.Eval(`if(and(greaterThan(pickRandom(1, 1), 0), lessThan(pickRandom(1, 1), 2))) { say("in-range") }`); err != nil {
			t.Fatalf("Eval: %v", err)
		}
	}
}

func TestJoinConcatenatesCoercedText(t *testing.T) {
	r, out := newHarness(t)
	evalSay(t, r, `join("score: ", 5)`)
	if !strings.Contains(string(*out), "score: 5") {
		t.Fatalf("want join to render the numeric second argument as canonical text, got %q", *out)
	}
}

func TestLetterOfIsOneIndexedAndOutOfRangeIsEmpty(t *testing.T) {
	r, out := newHarness(t)
	evalSay(t, r, `letterOf(1, "cat")`)
	if !strings.Contains(string(*out), "c") {
		t.Fatalf("want letterOf(1, cat) == \"c\", got %q", *out)
	}
	evalSay(t, r, `letterOf(9, "cat")`)
	if !strings.HasSuffix(string(*out), "says: \n") {
		t.Fatalf("want letterOf(9, cat) == \"\", got %q", *out)
	}
}

func TestStringLengthCountsRunesNotBytes(t *testing.T) {
	r, out := newHarness(t)
	evalSay(t, r, `stringLength("héllo")`)
	if !strings.Contains(string(*out), "5") {
		t.Fatalf("want stringLength(\"héllo\") == 5 (6 bytes), got %q", *out)
	}
}

func TestComputeFunctionTrig(t *testing.T) {
	r, out := newHarness(t)
	evalSay(t, r, `computeFunction(sin, 90)`)
	if !strings.Contains(string(*out), "1") {
		t.Fatalf("want sin(90deg) == 1, got %q", *out)
	}
}
