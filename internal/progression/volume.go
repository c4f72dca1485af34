package progression

import (
	"math"
	"time"

	"github.com/claude/oncoplan/internal/clinical"
	"github.com/claude/oncoplan/internal/guidelines"
)

// WeeklyVolumeSummary is the week so far measured against the stage's
// guideline ceilings.
type WeeklyVolumeSummary struct {
	TotalAerobicMinutes       int    `json:"totalAerobicMinutes"`
	TotalStrengthSessions     int    `json:"totalStrengthSessions"`
	RemainingAerobicMinutes   int    `json:"remainingAerobicMinutes"`
	RemainingStrengthSessions int    `json:"remainingStrengthSessions"`
	PercentOfCeiling          int    `json:"percentOfCeiling"`
	IsAtCeiling               bool   `json:"isAtCeiling"`
	GentleMessage             string `json:"gentleMessage"`
}

// CalculateWeeklyVolume sums completed sessions since the start of the week
// containing now (weeks start Sunday). Session types contribute unevenly:
// strength counts one strength session plus a 30% aerobic component, mixed
// splits half-and-half, mind-body counts at half intensity.
func CalculateWeeklyVolume(logs []SessionLog, backbone *Backbone, now time.Time) WeeklyVolumeSummary {
	stage := clinical.StageFoundations
	if backbone != nil {
		stage = backbone.TrainingStage.Clamped()
	}
	cfg := ConfigFor(stage)
	aerobicCeiling := guidelines.StageAerobicRange(stage)
	strengthCeiling := guidelines.StageStrengthRange(stage)

	weekStart := startOfWeek(now)

	var aerobicMinutes float64
	var strengthSessions float64
	for _, log := range logs {
		if !log.Completed || log.Date.Before(weekStart) || log.Date.After(now) {
			continue
		}
		duration := float64(log.DurationMinutes)
		if duration == 0 {
			duration = float64(cfg.MinutesPerSession)
		}
		switch log.ActualType {
		case clinical.SessionStrength:
			strengthSessions++
			aerobicMinutes += math.Round(duration * 0.3)
		case clinical.SessionAerobic:
			aerobicMinutes += duration
		case clinical.SessionMixed:
			strengthSessions += 0.5
			aerobicMinutes += math.Round(duration * 0.7)
		case clinical.SessionMindBody:
			aerobicMinutes += math.Round(duration * 0.5)
		}
	}

	remainingAerobic := math.Max(0, float64(aerobicCeiling.Max)-aerobicMinutes)
	remainingStrength := math.Max(0, float64(strengthCeiling.Max)-strengthSessions)
	percent := int(math.Round(aerobicMinutes / float64(aerobicCeiling.Max) * 100))
	atCeiling := aerobicMinutes >= float64(aerobicCeiling.Max) || strengthSessions >= float64(strengthCeiling.Max)

	var message string
	switch {
	case atCeiling:
		message = "You've reached a healthy amount of movement for this week. Rest and recovery are just as important."
	case percent >= 75:
		message = "You're approaching your weekly ceiling - listen to your body about how much more feels right."
	case percent >= 50:
		message = "Good progress this week. Keep moving at your own pace."
	default:
		message = "Every bit of movement counts. Do what feels right today."
	}

	return WeeklyVolumeSummary{
		TotalAerobicMinutes:       int(math.Round(aerobicMinutes)),
		TotalStrengthSessions:     int(math.Round(strengthSessions)),
		RemainingAerobicMinutes:   int(math.Round(remainingAerobic)),
		RemainingStrengthSessions: int(math.Round(remainingStrength)),
		PercentOfCeiling:          percent,
		IsAtCeiling:               atCeiling,
		GentleMessage:             message,
	}
}

// startOfWeek returns midnight on the Sunday of now's week, in now's
// location.
func startOfWeek(now time.Time) time.Time {
	y, m, d := now.AddDate(0, 0, -int(now.Weekday())).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
