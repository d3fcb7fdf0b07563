package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fortemind/career-compass/internal/ai"
	"github.com/fortemind/career-compass/internal/ai/gemini"
	"github.com/fortemind/career-compass/internal/catalog"
	"github.com/fortemind/career-compass/internal/filtering"
	"github.com/fortemind/career-compass/internal/logger"
	"github.com/fortemind/career-compass/internal/projector"
	"github.com/fortemind/career-compass/internal/recommend"
	"github.com/fortemind/career-compass/internal/report"
	"github.com/fortemind/career-compass/internal/riasec"
	"github.com/fortemind/career-compass/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptSaveJSON     = "Save report (json)"
	PromptSaveMarkdown = "Save report (markdown)"
	PromptInsight      = "Ask the AI counselor"
	PromptShowProfile  = "Show profile details"
	PromptExit         = "Exit"

	defaultCatalogFile = "occupation_catalog.csv"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSaveMarkdown, PromptSaveJSON, PromptInsight, PromptShowProfile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Take the questionnaire and get career recommendations",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("answers", "a", "", "json file with prerecorded answers instead of the interactive questionnaire")
	runCmd.Flags().StringP("respondent", "r", "", "respondent name for the report")
	runCmd.Flags().Bool("no-prompt", false, "print recommendations and exit without the action menu")
	runCmd.Flags().StringP("catalog", "c", "", "occupation catalog csv file")
	runCmd.Flags().IntP("top-n", "n", 0, "how many occupations to recommend")

	viper.BindPFlag("catalog.file", runCmd.Flags().Lookup("catalog"))
	viper.BindPFlag("recommend.top-n", runCmd.Flags().Lookup("top-n"))
}

// session carries everything the action menu operates on.
type session struct {
	config     *Config
	logger     *zap.Logger
	respondent string
	profile    riasec.Profile
	recs       []recommend.Recommendation
	insight    string
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	logger.Info("starting career-compass", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	questionnaire, mode, err := loadQuestionnaire(config.Questionnaire)
	if err != nil {
		logger.Fatal("loading the questionnaire", zap.Error(err))
	}

	logger.Info("questionnaire ready",
		zap.Int("questions", questionnaire.Len()),
		zap.String("scale", string(mode)),
	)

	jobs, err := loadCatalog(config.Catalog, logger)
	if err != nil {
		logger.Fatal("loading the occupation catalog", zap.Error(err))
	}

	proj, closeProj, err := buildProjector(config.Projector)
	if err != nil {
		logger.Fatal("building the embedding projector", zap.Error(err))
	}
	defer closeProj()

	answers, err := collectAnswers(cmd, questionnaire)
	if err != nil {
		logger.Fatal("collecting answers", zap.Error(err))
	}

	profile, err := riasec.Aggregate(questionnaire, answers, mode)
	if err != nil {
		logger.Fatal("aggregating the profile", zap.Error(err))
	}

	logger.Info("profile aggregated",
		zap.String("profile", profile.String()),
		zap.String("dominant", profile.Dominant().Name()),
	)

	topN := 0
	if config.Recommend != nil {
		topN = config.Recommend.TopN
	}

	ranker := recommend.New(jobs, proj, logger)

	recs, err := ranker.Recommend(profile, topN)
	if err != nil {
		logger.Fatal("ranking occupations", zap.Error(err))
	}

	printRecommendations(logger, recs)

	s := &session{
		config:     config,
		logger:     logger,
		respondent: cmd.Flag("respondent").Value.String(),
		profile:    profile,
		recs:       recs,
	}

	if cmd.Flag("no-prompt").Value.String() == "true" {
		return
	}

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, s); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, s *session) error {
	switch action {
	case PromptSaveJSON:
		return saveReport(s, "json")
	case PromptSaveMarkdown:
		return saveReport(s, "md")
	case PromptInsight:
		return counselorInsight(ctx, s)
	case PromptShowProfile:
		showProfile(s)
		return nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func loadQuestionnaire(cfg *QuestionnaireConfig) (*riasec.Questionnaire, riasec.ScaleMode, error) {
	mode := riasec.ScaleAsIs

	if cfg == nil {
		q, err := riasec.Default()
		return q, mode, err
	}

	if cfg.Scale != "" {
		parsed, err := riasec.ParseScaleMode(cfg.Scale)
		if err != nil {
			return nil, mode, err
		}
		mode = parsed
	}

	if cfg.File == "" {
		q, err := riasec.Default()
		return q, mode, err
	}

	q, err := riasec.LoadFile(cfg.File)
	return q, mode, err
}

func loadCatalog(cfg *CatalogConfig, logger *zap.Logger) (*catalog.Catalog, error) {
	path := defaultCatalogFile
	if cfg != nil && cfg.File != "" {
		path = cfg.File
	}

	jobs, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}

	logger.Info("catalog loaded", zap.String("file", path), zap.Int("occupations", jobs.Len()))

	var excluded []string
	if cfg != nil {
		excluded = cfg.ExcludeFamilies
	}

	filters := filtering.New([]filtering.Filter{
		filtering.NewDedupeTitles(),
		filtering.NewExcludedFamilies(excluded),
	}, logger)

	return filters.Run(jobs)
}

// buildProjector returns the projector plus a close func releasing whatever it
// holds open.
func buildProjector(cfg *ProjectorConfig) (projector.Projector, func(), error) {
	noop := func() {}

	if cfg == nil || cfg.Type == "" || strings.EqualFold(cfg.Type, "identity") {
		return projector.Identity{}, noop, nil
	}

	if !strings.EqualFold(cfg.Type, "onnx") {
		return nil, noop, fmt.Errorf("unsupported projector type: %s", cfg.Type)
	}

	onnx, err := projector.NewONNX(projector.ONNXConfig{
		SharedLibrary: cfg.SharedLibrary,
		ModelPath:     cfg.Model,
		ScalerPath:    cfg.Scaler,
		InputName:     cfg.InputName,
		OutputName:    cfg.OutputName,
	})
	if err != nil {
		return nil, noop, err
	}

	return onnx, func() { _ = onnx.Close() }, nil
}

func collectAnswers(cmd *cobra.Command, q *riasec.Questionnaire) (*riasec.AnswerSet, error) {
	if file := cmd.Flag("answers").Value.String(); file != "" {
		return loadAnswers(file, q)
	}

	return askQuestions(q)
}

// loadAnswers reads a json array of responses, one per question in order.
func loadAnswers(path string, q *riasec.Questionnaire) (*riasec.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}

	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}

	answers := riasec.NewAnswerSet()
	for i, v := range values {
		if err := answers.Set(q, i, v); err != nil {
			return nil, err
		}
	}

	return answers, nil
}

func askQuestions(q *riasec.Questionnaire) (*riasec.AnswerSet, error) {
	labels := scaleLabels(q.Scale)
	answers := riasec.NewAnswerSet()

	for i, question := range q.Questions {
		prompt := promptui.Select{
			Label: fmt.Sprintf("[%d/%d] %s", i+1, q.Len(), question.Text),
			Items: labels,
		}

		selected, _, err := prompt.Run()
		if err != nil {
			return nil, err
		}

		if err := answers.Set(q, i, q.Scale.Min+selected); err != nil {
			return nil, err
		}
	}

	return answers, nil
}

// scaleLabels renders one menu item per scale step. The usual 1..5 agreement
// scale gets named anchors, anything else plain numbers.
func scaleLabels(s riasec.Scale) []string {
	agreement := []string{
		"1 - Strongly disagree",
		"2 - Disagree",
		"3 - Neutral",
		"4 - Agree",
		"5 - Strongly agree",
	}

	if s.Min == 1 && s.Max == 5 {
		return agreement
	}

	labels := make([]string, 0, s.Max-s.Min+1)
	for v := s.Min; v <= s.Max; v++ {
		labels = append(labels, fmt.Sprintf("%d", v))
	}

	return labels
}

func printRecommendations(logger *zap.Logger, recs []recommend.Recommendation) {
	for _, rec := range recs {
		logger.Info("recommendation",
			zap.Int("rank", rec.Rank),
			zap.String("title", rec.Entry.Title),
			zap.String("family", rec.Entry.Family),
			zap.Float64("similarity", rec.Score),
		)
	}

	if len(recs) > 0 {
		logger.Info(recs[0].Rationale)
	}
}

func saveReport(s *session, format string) error {
	dir := "."
	if s.config.Report != nil && s.config.Report.Dir != "" {
		dir = s.config.Report.Dir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	summary := report.New(s.respondent, s.profile, s.recs, s.insight)
	path := filepath.Join(dir, fmt.Sprintf("career-report-%s.%s", summary.SessionID, format))

	var err error
	switch format {
	case "json":
		err = summary.WriteJSON(path)
	case "md":
		err = summary.WriteMarkdown(path)
	default:
		err = fmt.Errorf("unsupported report format: %s", format)
	}
	if err != nil {
		return err
	}

	s.logger.Info("report saved", zap.String("filename", path))
	return nil
}

func counselorInsight(ctx context.Context, s *session) error {
	if s.insight != "" {
		s.logger.Info("counselor insight", zap.String("insight", s.insight))
		return nil
	}

	advisor, err := newAdvisor(ctx, s.config.AI, s.logger)
	if err != nil {
		s.logger.Warn("AI counselor unavailable", zap.Error(err))
		return nil
	}

	insight, err := advisor.Explain(ctx, s.profile, s.recs)
	if err != nil {
		return fmt.Errorf("asking the AI counselor: %w", err)
	}

	s.insight = insight.Text
	s.logger.Info("counselor insight", zap.String("insight", insight.Text))
	return nil
}

func showProfile(s *session) {
	for _, d := range riasec.Dimensions() {
		s.logger.Info("dimension score",
			zap.String("dimension", d.Name()),
			zap.Float64("score", s.profile.Score(d)),
			zap.String("description", d.Description()),
		)
	}
}

func newAdvisor(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Advisor, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("ai counselor is disabled in the configuration")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when the ai counselor is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	advisorLogger := logger.WithCommonFields(log, "gemini", generator.Model())

	return gemini.NewAdvisor(generator, advisorLogger, cfg.Gemini.MaxLogLength), nil
}
