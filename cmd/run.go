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
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/ai"
	"github.com/talentsift/talentsift/internal/ai/gemini"
	"github.com/talentsift/talentsift/internal/candidate"
	"github.com/talentsift/talentsift/internal/export"
	"github.com/talentsift/talentsift/internal/extract"
	"github.com/talentsift/talentsift/internal/interview"
	"github.com/talentsift/talentsift/internal/jobdesc"
	"github.com/talentsift/talentsift/internal/logger"
	"github.com/talentsift/talentsift/internal/ranking"
	"github.com/talentsift/talentsift/internal/screening"
	"github.com/talentsift/talentsift/internal/secrets"
	"github.com/talentsift/talentsift/internal/session"
	"github.com/talentsift/talentsift/internal/sharepoint"
)

const (
	PromptSaveReports        = "Save reports and exit"
	PromptShowRanking        = "Show ranking"
	PromptInterviewQuestions = "Generate interview questions"
	PromptExit               = "Exit without saving"
	PromptBack               = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSaveReports, PromptShowRanking, PromptInterviewQuestions, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the talentsift screening pipeline",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("non-interactive", "y", false, "save reports and exit without prompting")
	runCmd.Flags().StringP("resumes-dir", "r", "", "directory with resume files (pdf, docx)")
	runCmd.Flags().StringP("job-description", "s", "", "file with the job description text")
	runCmd.Flags().StringP("output-dir", "o", "", "directory for reports. Default is the current directory.")
	runCmd.Flags().Bool("mask-pii", false, "mask emails and phone numbers before sending resume text to the model")

	viper.BindPFlag("resumes-dir", runCmd.Flags().Lookup("resumes-dir"))
	viper.BindPFlag("job-description", runCmd.Flags().Lookup("job-description"))
	viper.BindPFlag("output-dir", runCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("mask-pii", runCmd.Flags().Lookup("mask-pii"))
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

	logger.Info("starting the talentsift", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	jdText, err := loadJobDescription(config)
	if err != nil {
		logger.Fatal("loading the job description", zap.Error(err))
	}

	completer, err := newCompleter(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the model client", zap.Error(err))
	}

	documents, err := loadDocuments(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading resumes", zap.Error(err))
	}

	if len(documents) == 0 {
		logger.Info("exiting", zap.String("reason", "no resume files found"))
		return
	}

	state := session.New()
	parseCandidates(ctx, completer, config, documents, state, logger)

	if len(state.Candidates()) == 0 {
		logger.Info("exiting", zap.String("reason", "no resume could be parsed"))
		return
	}

	pool, summaries := screenAndRank(ctx, completer, config, state, jdText, logger)
	if len(pool) == 0 {
		logger.Info("no candidates left after pre-screening; saving the parsed table only")
		if err := saveReports(ctx, config, state, summaries, logger); err != nil {
			logger.Fatal("saving reports", zap.Error(err))
		}
		return
	}

	logger.Info("screening complete",
		zap.Int("parsed", len(documents)),
		zap.Int("screened", len(pool)),
		zap.Int("ranked", len(state.Results())),
	)

	action := PromptSaveReports
	for {
		var err error
		if cmd.Flag("non-interactive").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(ctx, action, completer, config, state, summaries, jdText, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, completer ai.Completer, config *Config, state *session.Session, summaries []string, jdText string, logger *zap.Logger) error {
	switch action {
	case PromptSaveReports:
		if err := saveReports(ctx, config, state, summaries, logger); err != nil {
			return err
		}
		return errExit
	case PromptShowRanking:
		pretty, _ := json.MarshalIndent(state.Results(), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates", len(state.Results())))
		return nil
	case PromptInterviewQuestions:
		return interviewQuestions(ctx, completer, state, jdText, logger)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// screenAndRank extracts requirements, pre-screens and ranks. The screened
// pool feeds only the ranker; the session keeps the full parsed table so the
// exports and the interview picker always see every candidate.
func screenAndRank(ctx context.Context, completer ai.Completer, config *Config, state *session.Session, jdText string, logger *zap.Logger) ([]*candidate.Candidate, []string) {
	reqs, err := jobdesc.NewExtractor(completer, logger).Extract(ctx, jdText)
	if err != nil {
		logger.Warn("requirement extraction failed; skipping pre-screening", zap.Error(err))
	}
	state.SetRequirements(reqs)

	pool, summaries := screening.Run(logger, prepareFilters(config), state.Candidates(), reqs)
	for _, summary := range summaries {
		logger.Info(summary)
	}

	if len(pool) == 0 {
		return pool, summaries
	}

	results, err := ranking.NewRanker(completer, topN(config), logger).Rank(ctx, pool, jdText, state)
	if err != nil {
		logger.Warn("ranking failed; reports will contain the unranked pool only", zap.Error(err))
	}
	state.SetResults(results)

	return pool, summaries
}

func newCompleter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Completer, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required under the ai section")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
	)

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxLogLength, genLogger)
}

// loadDocuments reads resume files from the configured SharePoint folder or
// the local directory. Broken files are skipped with a warning so one bad
// resume never aborts the run.
func loadDocuments(ctx context.Context, config *Config, logger *zap.Logger) ([]candidate.Document, error) {
	if config.SharePoint != nil && config.SharePoint.Enabled {
		return loadSharePointDocuments(ctx, config.SharePoint, logger)
	}

	dir := strings.TrimSpace(config.ResumesDir)
	if dir == "" {
		return nil, errors.New("resumes directory is not configured (set resumes-dir)")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading resumes directory: %w", err)
	}

	var documents []candidate.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable resume file", zap.String("file", path), zap.Error(err))
			continue
		}

		submitted := time.Now()
		if info, err := entry.Info(); err == nil {
			submitted = info.ModTime()
		}

		if doc, ok := toDocument(entry.Name(), data, submitted, logger); ok {
			documents = append(documents, doc)
		}
	}

	logger.Info("loaded resumes from local directory", zap.String("dir", dir), zap.Int("count", len(documents)))
	return documents, nil
}

func loadSharePointDocuments(ctx context.Context, cfg *SharePointConfig, logger *zap.Logger) ([]candidate.Document, error) {
	client, err := newSharePointClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	files, err := client.ListFiles(cfg.ResumesFolder)
	if err != nil {
		return nil, fmt.Errorf("listing sharepoint resumes: %w", err)
	}

	var documents []candidate.Document
	for _, file := range files {
		data, err := client.Download(file.ID)
		if err != nil {
			logger.Warn("skipping undownloadable resume", zap.String("file", file.Name), zap.Error(err))
			continue
		}

		submitted := file.CreatedTime()
		if submitted.IsZero() {
			submitted = time.Now()
		}

		if doc, ok := toDocument(file.Name, data, submitted, logger); ok {
			documents = append(documents, doc)
		}
	}

	logger.Info("loaded resumes from sharepoint", zap.String("folder", cfg.ResumesFolder), zap.Int("count", len(documents)))
	return documents, nil
}

func newSharePointClient(ctx context.Context, cfg *SharePointConfig, logger *zap.Logger) (*sharepoint.Client, error) {
	clientSecret, err := secrets.Load(secrets.Source{
		Name: "sharepoint client secret",
		File: cfg.ClientSecretFile,
	})
	if err != nil {
		return nil, err
	}

	return sharepoint.New(ctx, logger, sharepoint.Config{
		TenantID:     cfg.TenantID,
		ClientID:     cfg.ClientID,
		ClientSecret: clientSecret,
		DriveID:      cfg.DriveID,
	}), nil
}

// toDocument extracts plain text from one resume file. Extraction failures
// produce no document: empty text would only waste a model call.
func toDocument(name string, data []byte, submitted time.Time, logger *zap.Logger) (candidate.Document, bool) {
	text, err := extract.FromBytes(name, data)
	if err != nil {
		logger.Warn("skipping resume without extractable text", zap.String("file", name), zap.Error(err))
		return candidate.Document{}, false
	}
	if strings.TrimSpace(text) == "" {
		logger.Warn("skipping resume with empty text", zap.String("file", name))
		return candidate.Document{}, false
	}

	return candidate.Document{Filename: name, Text: text, Submitted: submitted}, true
}

func parseCandidates(ctx context.Context, completer ai.Completer, config *Config, documents []candidate.Document, state *session.Session, logger *zap.Logger) {
	structurer := candidate.NewStructurer(completer, config.MaskPII, logger)

	for _, doc := range documents {
		record, err := structurer.Parse(ctx, doc)
		if err != nil {
			logger.Warn("skipping unparseable resume", zap.String("file", doc.Filename), zap.Error(err))
			continue
		}

		state.AddCandidate(record, doc.Text)
	}

	logger.Info("parsed candidates", zap.Int("count", len(state.Candidates())), zap.Int("documents", len(documents)))
}

func loadJobDescription(config *Config) (string, error) {
	path := strings.TrimSpace(config.JobDescriptionFile)
	if path == "" {
		return "", errors.New("job description file is not configured (set job-description)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	// Job descriptions come in the same formats as resumes; anything else is
	// treated as plain text.
	text, err := extract.FromBytes(filepath.Base(path), data)
	if errors.Is(err, extract.ErrUnsupportedFormat) {
		text = string(data)
	} else if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", errors.New("job description is empty")
	}

	return text, nil
}

func prepareFilters(config *Config) []screening.Filter {
	ratio := 0.0
	if config.Screening != nil {
		ratio = config.Screening.SkillMatchRatio
	}

	return []screening.Filter{
		screening.NewExperience(),
		screening.NewSkills(ratio),
	}
}

func topN(config *Config) int {
	if config.Ranking == nil {
		return 0
	}
	return config.Ranking.TopN
}

func saveReports(ctx context.Context, config *Config, state *session.Session, summaries []string, logger *zap.Logger) error {
	outputDir := strings.TrimSpace(config.OutputDir)
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	candidatesPath := filepath.Join(outputDir, "candidates.csv")
	if err := writeFile(candidatesPath, func(f *os.File) error {
		return export.WriteCandidates(f, state.Candidates())
	}); err != nil {
		return err
	}

	resultsPath := filepath.Join(outputDir, "screening_results.csv")
	if err := writeFile(resultsPath, func(f *os.File) error {
		return export.WriteResults(f, state.Results())
	}); err != nil {
		return err
	}

	excelPath := filepath.Join(outputDir, "screening_report.xlsx")
	report := export.Report{
		JobTitle:   jobTitle(state),
		Candidates: state.Candidates(),
		Results:    state.Results(),
		Summaries:  summaries,
		Reqs:       state.Requirements(),
	}
	if err := export.WriteExcel(report, excelPath); err != nil {
		return err
	}

	logger.Info("reports saved",
		zap.String("candidates", candidatesPath),
		zap.String("results", resultsPath),
		zap.String("report", excelPath),
	)

	if config.SharePoint != nil && config.SharePoint.Enabled && config.SharePoint.ReportsFolder != "" {
		return uploadReports(ctx, config.SharePoint, []string{candidatesPath, resultsPath, excelPath}, logger)
	}

	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func uploadReports(ctx context.Context, cfg *SharePointConfig, paths []string, logger *zap.Logger) error {
	client, err := newSharePointClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := client.Upload(cfg.ReportsFolder, filepath.Base(path), content); err != nil {
			return fmt.Errorf("uploading report %s: %w", path, err)
		}
	}

	logger.Info("reports uploaded to sharepoint", zap.String("folder", cfg.ReportsFolder), zap.Int("count", len(paths)))
	return nil
}

func jobTitle(state *session.Session) string {
	if state.Requirements() == nil {
		return ""
	}
	return state.Requirements().JobTitle
}

func interviewQuestions(ctx context.Context, completer ai.Completer, state *session.Session, jdText string, logger *zap.Logger) error {
	generator := interview.NewGenerator(completer, logger)

	for {
		items := make([]string, 0, len(state.Candidates())+1)
		for _, c := range state.Candidates() {
			items = append(items, fmt.Sprintf("%s / %s / %s", c.Name, c.CurrentRole, c.Filename))
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
		}

		idx, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		record := state.Candidates()[idx]
		questions := generator.Generate(ctx, record, jdText)
		if len(questions) == 0 {
			logger.Warn("no interview questions generated", zap.String("name", record.Name))
			continue
		}

		pretty, _ := json.MarshalIndent(questions, "", "  ")
		logger.Info(string(pretty), zap.String("name", record.Name), zap.Int("questions", len(questions)))
	}
}
