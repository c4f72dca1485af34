// Package prescribe turns a deterministic plan and patient context into a
// narrative exercise prescription via the OpenAI chat API. The deterministic
// layers stay authoritative: the model writes the explanation, never the dose.
package prescribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/claude/oncoplan/internal/guidelines"
	"github.com/claude/oncoplan/internal/planner"
	"github.com/claude/oncoplan/internal/recommend"
)

// ErrNoChoices is returned when the API responds without any completion.
var ErrNoChoices = errors.New("no choices returned")

// chatService is the minimal completion surface, so tests can stub the API.
type chatService interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client wraps the OpenAI chat completion service.
type Client struct {
	chat chatService
}

// Option configures NewClient.
type Option func(*settings)

type settings struct {
	apiKey string
}

// WithAPIKey supplies the API key directly instead of reading the environment.
func WithAPIKey(key string) Option {
	return func(s *settings) { s.apiKey = key }
}

// NewClient builds a client from the OPENAI_API_KEY environment variable
// unless WithAPIKey overrides it.
func NewClient(opts ...Option) (*Client, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.apiKey == "" {
		s.apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if s.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	cli := openai.NewClient(option.WithAPIKey(s.apiKey))
	return &Client{chat: &cli.Chat.Completions}, nil
}

const systemPrompt = "You are an expert exercise physiologist and oncology " +
	"rehabilitation specialist. Create evidence-based exercise prescriptions " +
	"following ACSM guidelines for cancer patients. Always prioritize safety " +
	"and individualization."

// Request carries everything the narrative should reflect. Plan is the
// already-computed session for today; the model explains it, it does not
// re-plan it.
type Request struct {
	Profile     recommend.PatientProfile
	Assessment  recommend.Assessment
	Plan        *planner.Plan
	Goals       []string
	Limitations []string
}

// Narrative asks the model for a patient-facing prescription write-up.
func (c *Client) Narrative(ctx context.Context, req Request) (string, error) {
	body := openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(req)),
		},
	}
	resp, err := c.chat.New(ctx, body)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func buildPrompt(req Request) string {
	guidance := guidelines.GuidanceFor(req.Profile.CancerType)

	var b strings.Builder
	fmt.Fprintf(&b, "Write a personalized exercise prescription narrative for a %s cancer patient.\n\n", req.Profile.CancerType)

	b.WriteString("PATIENT PROFILE:\n")
	fmt.Fprintf(&b, "- Cancer Type: %s\n", req.Profile.CancerType)
	fmt.Fprintf(&b, "- Treatment Phase: %s\n", req.Profile.TreatmentPhase)
	if len(req.Profile.Comorbidities) > 0 {
		fmt.Fprintf(&b, "- Comorbidities: %s\n", joinComorbidities(req.Profile.Comorbidities))
	}

	b.WriteString("\nSELF-REPORTED ASSESSMENT:\n")
	fmt.Fprintf(&b, "- Energy Level: %d/5\n", req.Assessment.EnergyOrDefault())
	fmt.Fprintf(&b, "- Pain Level: %d/10\n", req.Assessment.PainLevel)
	fmt.Fprintf(&b, "- Confidence: %d/10\n", req.Assessment.ConfidenceScore)
	if req.Assessment.MobilityStatus != "" {
		fmt.Fprintf(&b, "- Mobility: %s\n", req.Assessment.MobilityStatus)
	}

	b.WriteString("\nCANCER-SPECIFIC CONSIDERATIONS:\n")
	writeList(&b, "Considerations", guidance.Considerations)
	writeList(&b, "Restrictions", guidance.Restrictions)
	writeList(&b, "Preferred modes", guidance.PreferredModes)

	if req.Plan != nil {
		b.WriteString("\nTODAY'S PLANNED SESSION (already computed, do not change the dose):\n")
		fmt.Fprintf(&b, "- Safety flag: %s\n", req.Plan.SafetyFlag)
		fmt.Fprintf(&b, "- Session: %s (%s)\n", req.Plan.Session.Title, req.Plan.Session.SessionType)
		fmt.Fprintf(&b, "- Caps: RPE max %d, duration max %d minutes\n", req.Plan.Caps.IntensityRPEMax, req.Plan.Caps.DurationMinutesMax)
		for _, ex := range req.Plan.Session.Exercises {
			fmt.Fprintf(&b, "- %s: %d sets x %d reps", ex.Name, ex.SetsSuggested, ex.RepsSuggested)
			if ex.Notes != "" {
				fmt.Fprintf(&b, " (%s)", ex.Notes)
			}
			b.WriteByte('\n')
		}
		writeList(&b, "Adaptations applied", req.Plan.AdaptationsApplied)
	}

	fmt.Fprintf(&b, "\nGOALS: %s\n", orDefault(req.Goals, "General fitness and wellbeing"))
	fmt.Fprintf(&b, "LIMITATIONS: %s\n", orDefault(req.Limitations, "None specified"))

	b.WriteString("\nExplain the plan in warm, plain language: why each exercise was chosen, " +
		"how the symptom adaptations protect the patient, what to watch for, and when to stop. " +
		"Do not alter sets, reps, or caps.\n")
	return b.String()
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, strings.Join(items, "; "))
}

func orDefault(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func joinComorbidities(cs []guidelines.Comorbidity) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
