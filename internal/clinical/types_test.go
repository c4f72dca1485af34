package clinical

import (
	"testing"
	"time"
)

// TestClamp010 verifies the silent-correction path for out-of-range symptom
// scores: values are clamped into [0,10], never rejected.
func TestClamp010(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-3, 0},
		{0, 0},
		{7, 7},
		{10, 10},
		{14, 10},
	}
	for _, tc := range cases {
		if got := Clamp010(tc.in); got != tc.want {
			t.Errorf("Clamp010(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSymptomSnapshotClamped(t *testing.T) {
	s := SymptomSnapshot{Fatigue: 12, Pain: -1, Anxiety: 5}.Clamped()
	if s.Fatigue != 10 || s.Pain != 0 || s.Anxiety != 5 {
		t.Errorf("Clamped() = %+v, want fatigue=10 pain=0 anxiety=5", s)
	}
}

// TestWorstFlag verifies the documented reconciliation rule: the more
// conservative flag always wins.
func TestWorstFlag(t *testing.T) {
	cases := []struct {
		a, b, want SafetyFlag
	}{
		{FlagGreen, FlagGreen, FlagGreen},
		{FlagGreen, FlagAmber, FlagAmber},
		{FlagAmber, FlagRed, FlagRed},
		{FlagRed, FlagGreen, FlagRed},
	}
	for _, tc := range cases {
		if got := WorstFlag(tc.a, tc.b); got != tc.want {
			t.Errorf("WorstFlag(%s, %s) = %s, want %s", tc.a, tc.b, got, tc.want)
		}
	}
}

// TestParseTrainingStage verifies the stage enum is the single source of
// truth: parsing is total and round-trips through String().
func TestParseTrainingStage(t *testing.T) {
	for stage := StageFoundations; stage <= StageMaintain; stage++ {
		if got := ParseTrainingStage(stage.String()); got != stage {
			t.Errorf("ParseTrainingStage(%q) = %v, want %v", stage.String(), got, stage)
		}
	}
	if got := ParseTrainingStage("nonsense"); got != StageFoundations {
		t.Errorf("ParseTrainingStage fallback = %v, want FOUNDATIONS", got)
	}
}

func TestTrainingStageClamped(t *testing.T) {
	if got := (StageFoundations - 1).Clamped(); got != StageFoundations {
		t.Errorf("below-range Clamped() = %v, want FOUNDATIONS", got)
	}
	if got := (StageMaintain + 1).Clamped(); got != StageMaintain {
		t.Errorf("above-range Clamped() = %v, want MAINTAIN", got)
	}
}

func TestBlockMatchesStage(t *testing.T) {
	cases := []struct {
		name  string
		block Block
		stage Stage
		want  bool
	}{
		{"unset bounds match everything", Block{}, StageLate, true},
		{"within window", Block{StageMin: StageEarly, StageMax: StageMid}, StageMid, true},
		{"past window", Block{StageMin: StageEarly, StageMax: StageMid}, StageLate, false},
		{"before window", Block{StageMin: StageMid}, StageEarly, false},
	}
	for _, tc := range cases {
		if got := tc.block.MatchesStage(tc.stage); got != tc.want {
			t.Errorf("%s: MatchesStage(%s) = %v, want %v", tc.name, tc.stage, got, tc.want)
		}
	}
}

func TestRepRange(t *testing.T) {
	r := RepRange{Min: 8, Max: 12}
	if got := r.ClampInto(5); got != 8 {
		t.Errorf("ClampInto(5) = %d, want 8", got)
	}
	if got := r.ClampInto(20); got != 12 {
		t.Errorf("ClampInto(20) = %d, want 12", got)
	}
	if got := r.Midpoint(); got != 10 {
		t.Errorf("Midpoint() = %d, want 10", got)
	}
	if (RepRange{Min: 3, Max: 2}).Valid() {
		t.Error("inverted range reported Valid")
	}
}

func TestWeeklyTemplateFor(t *testing.T) {
	var tpl WeeklyTemplate
	tpl[int(time.Monday)] = SessionStrength
	if got := tpl.For(time.Monday); got != SessionStrength {
		t.Errorf("For(Monday) = %s, want STRENGTH", got)
	}
}
