package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/claude/oncoplan/internal/catalog"
	"github.com/claude/oncoplan/internal/clinical"
	"github.com/claude/oncoplan/internal/config"
	"github.com/claude/oncoplan/internal/guidelines"
	"github.com/claude/oncoplan/internal/planner"
	"github.com/claude/oncoplan/internal/prescribe"
	"github.com/claude/oncoplan/internal/progression"
	"github.com/claude/oncoplan/internal/recommend"
	"github.com/claude/oncoplan/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: oncoplan [-config path] <command> [flags]

Commands:
  plan       compute today's session for a patient
  log        record a completed or missed session
  review     run the weekly progression review
  volume     show this week's volume against guideline ceilings
  recommend  rank catalog exercises for a patient
  prescribe  generate an AI narrative for today's plan

Run "oncoplan <command> -h" for command flags.
`)
}

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "oncoplan: %v\n", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	log.Debug("oncoplan starting", "version", Version, "command", flag.Arg(0))

	ctx := context.Background()
	cmd, args := flag.Arg(0), flag.Args()[1:]

	var runErr error
	switch cmd {
	case "plan":
		runErr = runPlan(ctx, cfg, log, args)
	case "log":
		runErr = runLog(ctx, cfg, log, args)
	case "review":
		runErr = runReview(ctx, cfg, log, args)
	case "volume":
		runErr = runVolume(ctx, cfg, log, args)
	case "recommend":
		runErr = runRecommend(ctx, cfg, log, args)
	case "prescribe":
		runErr = runPrescribe(ctx, cfg, log, args)
	default:
		usage()
		os.Exit(2)
	}
	if runErr != nil {
		log.Error(cmd+" failed", "error", runErr)
		os.Exit(1)
	}
}

// planFlags is shared between plan and prescribe.
type planFlags struct {
	user     string
	phase    string
	stage    string
	fatigue  int
	pain     int
	anxiety  int
	lowMood  bool
	qol      bool
	block    string
	seed     int64
	chemo    bool
	radio    bool
	surgery  bool
	redDays  int
	cancer   string
	txPhase  string
	comorbid string
}

func (p *planFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&p.user, "user", "", "patient id (enables weekly ceilings from stored history)")
	fs.StringVar(&p.phase, "phase", string(clinical.PhasePostTreatment), "treatment phase: PREHAB, IN_TREATMENT, POST_TREATMENT")
	fs.StringVar(&p.stage, "stage", string(clinical.StageEarly), "intra-phase stage: EARLY, MID, LATE")
	fs.IntVar(&p.fatigue, "fatigue", 0, "fatigue 0-10")
	fs.IntVar(&p.pain, "pain", 0, "pain 0-10")
	fs.IntVar(&p.anxiety, "anxiety", 0, "anxiety 0-10")
	fs.BoolVar(&p.lowMood, "low-mood", false, "low mood reported")
	fs.BoolVar(&p.qol, "qol-limits", false, "quality-of-life limits reported")
	fs.StringVar(&p.block, "block", "", "current block id for continuity")
	fs.Int64Var(&p.seed, "seed", 0, "shuffle seed (0 keeps authored order)")
	fs.BoolVar(&p.chemo, "chemo", false, "on active chemotherapy")
	fs.BoolVar(&p.radio, "radiation", false, "on radiation")
	fs.BoolVar(&p.surgery, "surgery", false, "recent surgery")
	fs.IntVar(&p.redDays, "red-days", 0, "red symptom days this week")
	fs.StringVar(&p.cancer, "cancer", "general", "cancer type (prescribe only)")
	fs.StringVar(&p.txPhase, "treatment-phase", string(guidelines.PhasePostTreatmentCare), "guideline treatment phase (prescribe only)")
	fs.StringVar(&p.comorbid, "comorbidities", "", "comma-separated comorbidities (prescribe only)")
}

func (p *planFlags) buildInput(ctx context.Context, cfg *config.Config, log *slog.Logger) (planner.PlanInput, error) {
	phase, ok := clinical.ParsePhase(p.phase)
	if !ok {
		return planner.PlanInput{}, fmt.Errorf("unknown phase %q", p.phase)
	}

	in := planner.PlanInput{
		Phase:     phase,
		Stage:     clinical.Stage(p.stage),
		DayOfWeek: time.Now().Weekday(),
		Symptoms: clinical.SymptomSnapshot{
			Fatigue:   p.fatigue,
			Pain:      p.pain,
			Anxiety:   p.anxiety,
			LowMood:   p.lowMood,
			QOLLimits: p.qol,
		},
	}
	if p.block != "" {
		in.BlockState = &clinical.BlockState{BlockID: p.block}
	}

	if p.user == "" {
		return in, nil
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return planner.PlanInput{}, fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	backbone, err := db.Backbone(ctx, p.user)
	if errors.Is(err, store.ErrNotFound) {
		log.Debug("no backbone for patient, planning without weekly ceilings", "user", p.user)
		return in, nil
	}
	if err != nil {
		return planner.PlanInput{}, fmt.Errorf("loading backbone: %w", err)
	}

	now := time.Now()
	logs, err := db.SessionLogsSince(ctx, p.user, now.AddDate(0, 0, -7))
	if err != nil {
		return planner.PlanInput{}, fmt.Errorf("loading session logs: %w", err)
	}
	volume := progression.CalculateWeeklyVolume(logs, &backbone, now)

	in.Weekly = &planner.WeeklyContext{
		TrainingStage:    backbone.TrainingStage,
		AerobicMinutes:   float64(volume.TotalAerobicMinutes),
		StrengthSessions: float64(volume.TotalStrengthSessions),
		Context: guidelines.Context{
			OnActiveChemo:  p.chemo,
			OnRadiation:    p.radio,
			RecentSurgery:  p.surgery,
			RedSymptomDays: p.redDays,
		},
	}
	return in, nil
}

func runPlan(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	var pf planFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	plan, err := computePlan(ctx, cfg, log, &pf)
	if err != nil {
		return err
	}
	return printJSON(plan)
}

func computePlan(ctx context.Context, cfg *config.Config, log *slog.Logger, pf *planFlags) (*planner.Plan, error) {
	cat, err := loadCatalog(cfg, log)
	if err != nil {
		return nil, err
	}

	in, err := pf.buildInput(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	eng := &planner.Engine{Catalog: cat}
	if pf.seed != 0 {
		eng.Rand = rand.New(rand.NewPCG(uint64(pf.seed), 0))
	}

	plan, err := eng.TodayPlan(in)
	if err != nil {
		return nil, err
	}
	log.Debug("plan computed", "flag", plan.SafetyFlag, "block", plan.Meta.BlockID)
	return plan, nil
}

func runLog(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	user := fs.String("user", "", "patient id (required)")
	actual := fs.String("type", string(clinical.SessionAerobic), "session type performed")
	planned := fs.String("planned", "", "session type planned (defaults to backbone template)")
	duration := fs.Int("duration", 0, "minutes (0 uses the stage default)")
	rpe := fs.Int("rpe", 0, "session RPE 0-10")
	date := fs.String("date", "", "session date YYYY-MM-DD (default today)")
	missed := fs.Bool("missed", false, "record as planned but not completed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("-user is required")
	}

	when := time.Now()
	if *date != "" {
		var err error
		when, err = time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			return fmt.Errorf("parsing -date: %w", err)
		}
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	backbone, err := db.Backbone(ctx, *user)
	if errors.Is(err, store.ErrNotFound) {
		backbone = progression.NewDefaultBackbone(*user, when)
		if err := db.SaveBackbone(ctx, backbone); err != nil {
			return fmt.Errorf("saving backbone: %w", err)
		}
		log.Info("created foundations backbone", "user", *user)
	} else if err != nil {
		return fmt.Errorf("loading backbone: %w", err)
	}

	plannedType := clinical.SessionType(*planned)
	if *planned == "" {
		plannedType = progression.PlannedSessionFor(&backbone, when)
	}

	id, err := db.InsertSessionLog(ctx, *user, progression.SessionLog{
		Date:            when,
		PlannedType:     plannedType,
		ActualType:      clinical.SessionType(*actual),
		DurationMinutes: *duration,
		RPE:             *rpe,
		Completed:       !*missed,
	})
	if err != nil {
		return fmt.Errorf("inserting session log: %w", err)
	}
	log.Info("session logged", "user", *user, "id", id, "planned", plannedType, "actual", *actual)
	return nil
}

func runReview(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	user := fs.String("user", "", "patient id (required)")
	redDays := fs.Int("red-days", 0, "days this week with red symptoms")
	amberDays := fs.Int("amber-days", 0, "days this week with amber symptoms")
	phaseChanged := fs.Bool("phase-changed", false, "treatment phase changed this week")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("-user is required")
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	backbone, err := db.Backbone(ctx, *user)
	if err != nil {
		return fmt.Errorf("loading backbone: %w", err)
	}

	now := time.Now()
	logs, err := db.SessionLogsSince(ctx, *user, now.AddDate(0, 0, -7))
	if err != nil {
		return fmt.Errorf("loading session logs: %w", err)
	}

	completed, rpeSum, rpeCount := 0, 0, 0
	for _, l := range logs {
		if !l.Completed {
			continue
		}
		completed++
		if l.RPE > 0 {
			rpeSum += l.RPE
			rpeCount++
		}
	}
	week := progression.ReviewData{
		SessionsPlanned:       backbone.TargetSessionsPerWeek,
		SessionsCompleted:     completed,
		RedSymptomDays:        *redDays,
		AmberSymptomDays:      *amberDays,
		TreatmentPhaseChanged: *phaseChanged,
	}
	if rpeCount > 0 {
		week.AverageRPE = float64(rpeSum) / float64(rpeCount)
	}

	outcome := progression.EvaluateWeeklyReview(backbone, week)

	backbone.CurrentWeekNumber++
	if outcome.Decision != progression.DecisionHold {
		backbone.ApplyStage(outcome.NewStage, now)
	}
	if err := db.SaveBackbone(ctx, backbone); err != nil {
		return fmt.Errorf("saving backbone: %w", err)
	}

	log.Info("weekly review", "user", *user, "decision", outcome.Decision, "stage", outcome.NewStage)
	return printJSON(outcome)
}

func runVolume(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("volume", flag.ExitOnError)
	user := fs.String("user", "", "patient id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("-user is required")
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	backbone, err := db.Backbone(ctx, *user)
	if err != nil {
		return fmt.Errorf("loading backbone: %w", err)
	}

	now := time.Now()
	logs, err := db.SessionLogsSince(ctx, *user, now.AddDate(0, 0, -28))
	if err != nil {
		return fmt.Errorf("loading session logs: %w", err)
	}

	out := struct {
		Week     progression.WeeklyVolumeSummary `json:"week"`
		Patterns progression.PatternAnalysis     `json:"patterns"`
	}{
		Week:     progression.CalculateWeeklyVolume(logs, &backbone, now),
		Patterns: progression.AnalyzeSessionPatterns(logs),
	}
	return printJSON(out)
}

func runRecommend(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	user := fs.String("user", "", "patient id (persists the ranking when set)")
	cancer := fs.String("cancer", "general", "cancer type")
	txPhase := fs.String("treatment-phase", string(guidelines.PhasePostTreatmentCare), "guideline treatment phase")
	energy := fs.Int("energy", 3, "energy level 1-5")
	pain := fs.Int("pain", 0, "pain 0-10")
	confidence := fs.Int("confidence", 5, "confidence 0-10")
	mobility := fs.String("mobility", "", "mobility status, e.g. seated_only")
	injuries := fs.String("injuries", "", "comma-separated prior injuries")
	prefers := fs.String("prefers", "", "comma-separated preferred exercise types")
	dislikes := fs.String("dislikes", "", "comma-separated disliked exercise types")
	equipment := fs.String("equipment", "", "comma-separated available equipment")
	comorbid := fs.String("comorbidities", "", "comma-separated comorbidities")
	limit := fs.Int("limit", 10, "max exercises to return")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := loadCatalog(cfg, log)
	if err != nil {
		return err
	}

	profile := recommend.PatientProfile{
		CancerType:     guidelines.ParseCancerType(*cancer),
		TreatmentPhase: guidelines.TreatmentPhase(*txPhase),
		Comorbidities:  parseComorbidities(*comorbid),
	}
	assessment := recommend.Assessment{
		EnergyLevel:         *energy,
		PainLevel:           *pain,
		ConfidenceScore:     *confidence,
		MobilityStatus:      *mobility,
		PriorInjuries:       splitList(*injuries),
		ExercisePreferences: splitList(*prefers),
		ExerciseDislikes:    splitList(*dislikes),
		EquipmentAvailable:  splitList(*equipment),
	}

	eng := &recommend.Engine{Catalog: cat, Cache: recommend.NewMemoryCache()}
	ranked := eng.Exercises(*user, profile, assessment, *limit)

	if *user != "" {
		db, err := store.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer db.Close()

		saved := make([]store.SavedRecommendation, len(ranked))
		for i, r := range ranked {
			saved[i] = store.SavedRecommendation{ExerciseID: r.Exercise.ID, Score: r.Score, ReasonCodes: r.ReasonCodes}
		}
		if err := db.ReplaceRecommendations(ctx, *user, saved); err != nil {
			return fmt.Errorf("saving recommendations: %w", err)
		}
		log.Info("recommendations saved", "user", *user, "count", len(saved))
	}

	return printJSON(ranked)
}

func runPrescribe(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("prescribe", flag.ExitOnError)
	var pf planFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is not configured")
	}

	plan, err := computePlan(ctx, cfg, log, &pf)
	if err != nil {
		return err
	}

	client, err := prescribe.NewClient(prescribe.WithAPIKey(cfg.AI.APIKey))
	if err != nil {
		return fmt.Errorf("creating AI client: %w", err)
	}

	narrative, err := client.Narrative(ctx, prescribe.Request{
		Profile: recommend.PatientProfile{
			CancerType:     guidelines.ParseCancerType(pf.cancer),
			TreatmentPhase: guidelines.TreatmentPhase(pf.txPhase),
			Comorbidities:  parseComorbidities(pf.comorbid),
		},
		Assessment: recommend.Assessment{PainLevel: pf.pain},
		Plan:       plan,
	})
	if err != nil {
		return fmt.Errorf("generating narrative: %w", err)
	}

	fmt.Println(narrative)
	return nil
}

// loadCatalog reads the configured catalog file, falling back to the
// embedded catalog when the file does not exist.
func loadCatalog(cfg *config.Config, log *slog.Logger) (*catalog.Catalog, error) {
	if _, err := os.Stat(cfg.Catalog.Path); errors.Is(err, os.ErrNotExist) {
		log.Debug("catalog file not found, using embedded catalog", "path", cfg.Catalog.Path)
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseComorbidities(s string) []guidelines.Comorbidity {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil
	}
	out := make([]guidelines.Comorbidity, len(parts))
	for i, p := range parts {
		out[i] = guidelines.ParseComorbidity(p)
	}
	return out
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
