package progression

import (
	"math"
	"testing"
	"time"

	"github.com/claude/oncoplan/internal/clinical"
)

// TestCeilingConvertsToRestNearLimit verifies a week at 148 of 150 aerobic
// minutes turns the next session into rest rather than a token two minutes.
func TestCeilingConvertsToRestNearLimit(t *testing.T) {
	b := buildBackbone(clinical.StageBuild2) // aerobic ceiling 90-150
	adapted := AdaptPlannedSession(clinical.SessionAerobic, clinical.SymptomSnapshot{})

	res := ApplyGuidelineCeilings(adapted, &b, 148, 0)

	if !res.CeilingApplied {
		t.Fatal("CeilingApplied = false")
	}
	if res.AdaptedType != clinical.SessionRest {
		t.Fatalf("AdaptedType = %q, want REST", res.AdaptedType)
	}
	if res.DurationMultiplier != 0 {
		t.Errorf("DurationMultiplier = %v, want 0", res.DurationMultiplier)
	}
}

// TestCeilingShortensWithHeadroom verifies mid-headroom weeks cap the
// session to the remaining minutes instead of converting to rest.
func TestCeilingShortensWithHeadroom(t *testing.T) {
	b := buildBackbone(clinical.StageBuild2) // base 15 minutes per session
	adapted := AdaptPlannedSession(clinical.SessionAerobic, clinical.SymptomSnapshot{})

	res := ApplyGuidelineCeilings(adapted, &b, 140, 0)

	if !res.CeilingApplied {
		t.Fatal("CeilingApplied = false")
	}
	if res.AdaptedType != clinical.SessionAerobic {
		t.Errorf("AdaptedType = %q, want AEROBIC", res.AdaptedType)
	}
	// 10 minutes of headroom against a 15-minute base session.
	if want := 10.0 / 15.0; math.Abs(res.DurationMultiplier-want) > 1e-9 {
		t.Errorf("DurationMultiplier = %v, want %v", res.DurationMultiplier, want)
	}
}

// TestStrengthCeilingRetypes verifies strength and mixed sessions become
// aerobic once the week's strength budget is spent.
func TestStrengthCeilingRetypes(t *testing.T) {
	b := buildBackbone(clinical.StageBuild2) // strength ceiling 2 per week

	for _, planned := range []clinical.SessionType{clinical.SessionStrength, clinical.SessionMixed} {
		adapted := AdaptPlannedSession(planned, clinical.SymptomSnapshot{})
		res := ApplyGuidelineCeilings(adapted, &b, 0, 2)

		if res.AdaptedType != clinical.SessionAerobic {
			t.Errorf("%s: AdaptedType = %q, want AEROBIC", planned, res.AdaptedType)
		}
		if !res.CeilingApplied {
			t.Errorf("%s: CeilingApplied = false", planned)
		}
	}
}

// TestNoCeilingEarlyInWeek verifies an empty week passes through untouched.
func TestNoCeilingEarlyInWeek(t *testing.T) {
	b := buildBackbone(clinical.StageBuild1)
	adapted := AdaptPlannedSession(clinical.SessionStrength, clinical.SymptomSnapshot{})

	res := ApplyGuidelineCeilings(adapted, &b, 0, 0)

	if res.CeilingApplied {
		t.Errorf("CeilingApplied on an empty week: %+v", res)
	}
	if res.AdaptedType != clinical.SessionStrength || res.DurationMultiplier != 1.0 {
		t.Errorf("session changed without ceiling: %+v", res)
	}
}

// TestWeeklyVolumeTypeWeights pins the per-type contribution rules.
func TestWeeklyVolumeTypeWeights(t *testing.T) {
	b := buildBackbone(clinical.StageBuild2)
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC) // Saturday
	day := func(offset int) time.Time { return now.AddDate(0, 0, -offset) }

	logs := []SessionLog{
		{Date: day(5), ActualType: clinical.SessionStrength, DurationMinutes: 20, Completed: true}, // +1 strength, +6 aerobic
		{Date: day(4), ActualType: clinical.SessionAerobic, DurationMinutes: 30, Completed: true},  // +30 aerobic
		{Date: day(3), ActualType: clinical.SessionMixed, DurationMinutes: 20, Completed: true},    // +0.5 strength, +14 aerobic
		{Date: day(2), ActualType: clinical.SessionMindBody, DurationMinutes: 20, Completed: true}, // +10 aerobic
		{Date: day(1), ActualType: clinical.SessionAerobic, DurationMinutes: 60, Completed: false}, // skipped
		{Date: day(20), ActualType: clinical.SessionAerobic, DurationMinutes: 60, Completed: true}, // prior week
	}

	sum := CalculateWeeklyVolume(logs, &b, now)

	if sum.TotalAerobicMinutes != 60 {
		t.Errorf("TotalAerobicMinutes = %d, want 60", sum.TotalAerobicMinutes)
	}
	// 1.5 strength sessions rounds to 2.
	if sum.TotalStrengthSessions != 2 {
		t.Errorf("TotalStrengthSessions = %d, want 2", sum.TotalStrengthSessions)
	}
	if sum.IsAtCeiling {
		t.Errorf("IsAtCeiling = true at 60 of 150 minutes")
	}
	if sum.PercentOfCeiling != 40 {
		t.Errorf("PercentOfCeiling = %d, want 40", sum.PercentOfCeiling)
	}
}

// TestWeeklyVolumeUsesStageDefaultDuration verifies logs without a recorded
// duration fall back to the stage's minutes per session.
func TestWeeklyVolumeUsesStageDefaultDuration(t *testing.T) {
	b := buildBackbone(clinical.StageBuild2) // 15 minutes per session
	now := time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)

	logs := []SessionLog{
		{Date: now.AddDate(0, 0, -1), ActualType: clinical.SessionAerobic, Completed: true},
	}
	sum := CalculateWeeklyVolume(logs, &b, now)
	if sum.TotalAerobicMinutes != 15 {
		t.Errorf("TotalAerobicMinutes = %d, want stage default 15", sum.TotalAerobicMinutes)
	}
}
