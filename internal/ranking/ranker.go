// Package ranking asks the model to rank the screened candidate pool against
// the job description and blends the rubric score with the deterministic
// lexical score.
package ranking

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/ai"
	"github.com/talentsift/talentsift/internal/candidate"
	"github.com/talentsift/talentsift/internal/jsontext"
	"github.com/talentsift/talentsift/internal/scoring"
)

//go:embed prompt.md
var promptTemplate string

const (
	systemInstruction = "Expert technical recruiter AI."
	temperature       = 0.3
	maxTokens         = 3000

	// DefaultTopN is how many candidates the model is asked to rank.
	DefaultTopN = 5
)

// MatchResult is one ranked candidate as returned by the model, augmented
// with the lexical and blended scores.
type MatchResult struct {
	Rank              int     `json:"rank"`
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	MatchPercentage   float64 `json:"match_percentage"`
	SemanticScore     float64 `json:"semantic_score"`
	FinalScore        float64 `json:"final_score"`
	Strengths         string  `json:"strengths"`
	Gaps              string  `json:"gaps"`
	Recommendation    string  `json:"recommendation"`
	InterviewPriority string  `json:"interview_priority"`
}

// TextSource resolves the raw resume text for a ranked candidate. Lookup is
// by candidate ID with a fallback to the candidate name for tables imported
// from older runs.
type TextSource interface {
	ResumeText(id string) string
}

type Ranker struct {
	completer ai.Completer
	topN      int
	logger    *zap.Logger
}

func NewRanker(completer ai.Completer, topN int, logger *zap.Logger) *Ranker {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{completer: completer, topN: topN, logger: logger}
}

// Rank asks the model to rank the pool against the job description. The
// returned slice preserves the model's ordering; each entry carries the
// lexical similarity of the candidate's resume against the job description
// and the 70/30 blend of the two scores. An empty pool yields no model call.
func (r *Ranker) Rank(ctx context.Context, pool []*candidate.Candidate, jobDescription string, texts TextSource) ([]*MatchResult, error) {
	if len(pool) == 0 {
		return nil, nil
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{TOP_N}}", strconv.Itoa(r.topN))
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATES}}", candidateBlocks(pool))

	raw, err := r.completer.Complete(ctx, ai.CompletionRequest{
		System:      systemInstruction,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("ranking candidates: %w", err)
	}

	results, err := decodeResults(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding ranking response: %w", err)
	}

	for _, result := range results {
		key := result.ID
		if key == "" {
			key = result.Name
		}

		text := ""
		if texts != nil {
			text = texts.ResumeText(key)
		}
		if text == "" {
			r.logger.Warn("no resume text for ranked candidate; lexical score unavailable",
				zap.String("name", result.Name))
			result.SemanticScore = 0
			result.FinalScore = result.MatchPercentage
			continue
		}

		result.SemanticScore = scoring.LexicalSimilarity(text, jobDescription)
		result.FinalScore = scoring.Blend(result.MatchPercentage, result.SemanticScore)
	}

	r.logger.Debug("ranking complete", zap.Int("pool", len(pool)), zap.Int("ranked", len(results)))
	return results, nil
}

// candidateBlocks serializes the pool into the numbered blocks the prompt
// expects. The candidate ID is included so the model can echo it back.
func candidateBlocks(pool []*candidate.Candidate) string {
	var b strings.Builder
	for i, c := range pool {
		fmt.Fprintf(&b, "\nCandidate %d:\n", i+1)
		fmt.Fprintf(&b, "- ID: %s\n", orNA(c.ID))
		fmt.Fprintf(&b, "- Name: %s\n", orNA(c.Name))
		fmt.Fprintf(&b, "- Email: %s\n", orNA(c.Email))
		fmt.Fprintf(&b, "- Experience: %s years\n", orNA(c.Experience))
		fmt.Fprintf(&b, "- Tech Stack: %s\n", orNA(c.TechStack))
		fmt.Fprintf(&b, "- Role: %s\n", orNA(c.CurrentRole))
		fmt.Fprintf(&b, "- Projects: %s\n", orNA(c.KeyProjects))
	}
	return b.String()
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return "N/A"
	}
	return v
}

func decodeResults(raw string) ([]*MatchResult, error) {
	var loose []map[string]any
	if err := jsontext.Array(raw, &loose); err != nil {
		return nil, err
	}

	results := make([]*MatchResult, 0, len(loose))
	for _, entry := range loose {
		result := &MatchResult{}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			TagName:          "json",
			Result:           result,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(entry); err != nil {
			return nil, fmt.Errorf("malformed ranking entry: %w", err)
		}
		results = append(results, result)
	}
	return results, nil
}
