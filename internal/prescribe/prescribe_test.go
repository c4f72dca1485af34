package prescribe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/claude/oncoplan/internal/clinical"
	"github.com/claude/oncoplan/internal/guidelines"
	"github.com/claude/oncoplan/internal/planner"
	"github.com/claude/oncoplan/internal/recommend"
)

// stubChat implements chatService for testing.
type stubChat struct {
	resp *openai.ChatCompletion
	err  error
}

func (s *stubChat) New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	return s.resp, s.err
}

func narrativeRequest() Request {
	return Request{
		Profile: recommend.PatientProfile{
			CancerType:     guidelines.CancerBreast,
			TreatmentPhase: guidelines.PhaseDuringTreatment,
			Comorbidities:  []guidelines.Comorbidity{guidelines.Osteoporosis},
		},
		Assessment: recommend.Assessment{EnergyLevel: 2, PainLevel: 6, ConfidenceScore: 7},
		Plan: &planner.Plan{
			SafetyFlag: clinical.FlagAmber,
			Session: clinical.SessionOutput{
				Title:       "Rebuild Strength A",
				SessionType: clinical.SessionStrength,
				Exercises: []clinical.ExerciseOutput{
					{ID: "sit_to_stand", Name: "Sit to Stand", SetsSuggested: 2, RepsSuggested: 8, Notes: "Stay toward the lower end today"},
				},
			},
			Caps:               clinical.Caps{IntensityRPEMax: 5, DurationMinutesMax: 20},
			AdaptationsApplied: []string{"Reduced sets due to elevated symptoms"},
		},
		Goals: []string{"walk the dog again"},
	}
}

func TestNarrativeReturnsCompletion(t *testing.T) {
	resp := &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "Take it gently today."}},
		},
	}
	client := &Client{chat: &stubChat{resp: resp}}
	out, err := client.Narrative(context.Background(), narrativeRequest())
	if err != nil {
		t.Fatalf("Narrative: %v", err)
	}
	if out != "Take it gently today." {
		t.Errorf("got %q", out)
	}
}

func TestNarrativeServiceError(t *testing.T) {
	client := &Client{chat: &stubChat{err: errors.New("service failure")}}
	_, err := client.Narrative(context.Background(), narrativeRequest())
	if err == nil || !strings.Contains(err.Error(), "service failure") {
		t.Errorf("expected service failure error, got %v", err)
	}
}

func TestNarrativeNoChoices(t *testing.T) {
	client := &Client{chat: &stubChat{resp: &openai.ChatCompletion{}}}
	_, err := client.Narrative(context.Background(), narrativeRequest())
	if !errors.Is(err, ErrNoChoices) {
		t.Errorf("expected ErrNoChoices, got %v", err)
	}
}

// TestBuildPromptContent checks that the prompt carries the plan and the
// cancer-type guidance without inviting the model to re-dose the session.
func TestBuildPromptContent(t *testing.T) {
	prompt := buildPrompt(narrativeRequest())

	for _, want := range []string{
		"breast cancer patient",
		"Energy Level: 2/5",
		"Pain Level: 6/10",
		"Rebuild Strength A",
		"Sit to Stand: 2 sets x 8 reps",
		"RPE max 5, duration max 20 minutes",
		"Reduced sets due to elevated symptoms",
		"walk the dog again",
		"do not change the dose",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.Contains(prompt, "None specified") {
		t.Errorf("expected limitations fallback in prompt")
	}
}

func TestNewClientNoKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewClient(); err == nil {
		t.Error("expected error when API key not provided, got nil")
	}
}

func TestNewClientWithKey(t *testing.T) {
	cli, err := NewClient(WithAPIKey("test-key"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if cli == nil {
		t.Error("expected client instance, got nil")
	}
}
