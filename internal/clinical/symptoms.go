package clinical

// SymptomSnapshot is a patient's self-reported symptom reading on 0-10
// scales. It is transient: supplied per request and never persisted by the
// core. Out-of-range values are clamped rather than rejected.
type SymptomSnapshot struct {
	Fatigue   int  `json:"fatigue"`
	Pain      int  `json:"pain"`
	Anxiety   int  `json:"anxiety"`
	LowMood   bool `json:"lowMood,omitempty"`
	QOLLimits bool `json:"qolLimits,omitempty"`
}

// Clamp010 bounds a symptom score into the documented 0-10 range.
func Clamp010(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// Clamped returns a copy with every axis bounded to [0, 10].
func (s SymptomSnapshot) Clamped() SymptomSnapshot {
	s.Fatigue = Clamp010(s.Fatigue)
	s.Pain = Clamp010(s.Pain)
	s.Anxiety = Clamp010(s.Anxiety)
	return s
}
