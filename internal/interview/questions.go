// Package interview generates per-candidate interview questions from the
// parsed candidate record and the job description.
package interview

import (
	"context"
	_ "embed"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/ai"
	"github.com/talentsift/talentsift/internal/candidate"
	"github.com/talentsift/talentsift/internal/jsontext"
)

//go:embed prompt.md
var promptTemplate string

const (
	systemInstruction = "Interview question generator."
	temperature       = 0.4
	maxTokens         = 2000

	// jobDescriptionBudget keeps the prompt focused on the opening of the
	// job description rather than boilerplate at its tail.
	jobDescriptionBudget = 1000
)

// Question is a single generated interview question.
type Question struct {
	Category  string `json:"category"`
	Question  string `json:"question"`
	WhyAsking string `json:"why_asking"`
}

type Generator struct {
	completer ai.Completer
	logger    *zap.Logger
}

func NewGenerator(completer ai.Completer, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{completer: completer, logger: logger}
}

// Generate produces interview questions for the candidate. Question
// generation is best effort: any failure is logged and an empty list is
// returned so a flaky model call never aborts the surrounding run.
func (g *Generator) Generate(ctx context.Context, c *candidate.Candidate, jobDescription string) []Question {
	if len(jobDescription) > jobDescriptionBudget {
		cut := jobDescriptionBudget
		// never split a multi-byte rune at the boundary
		for cut > 0 && !utf8.RuneStart(jobDescription[cut]) {
			cut--
		}
		jobDescription = jobDescription[:cut]
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{NAME}}", c.Name)
	prompt = strings.ReplaceAll(prompt, "{{EXPERIENCE}}", c.Experience)
	prompt = strings.ReplaceAll(prompt, "{{TECH_STACK}}", c.TechStack)
	prompt = strings.ReplaceAll(prompt, "{{CURRENT_ROLE}}", c.CurrentRole)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)

	raw, err := g.completer.Complete(ctx, ai.CompletionRequest{
		System:      systemInstruction,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		g.logger.Warn("interview question generation failed", zap.String("name", c.Name), zap.Error(err))
		return nil
	}

	var loose []map[string]any
	if err := jsontext.Array(raw, &loose); err != nil {
		g.logger.Warn("interview question response unparseable", zap.String("name", c.Name), zap.Error(err))
		return nil
	}

	questions := make([]Question, 0, len(loose))
	for _, entry := range loose {
		var q Question
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			TagName:          "json",
			Result:           &q,
		})
		if err != nil {
			continue
		}
		if err := decoder.Decode(entry); err != nil {
			g.logger.Warn("skipping malformed interview question", zap.String("name", c.Name), zap.Error(err))
			continue
		}
		questions = append(questions, q)
	}

	return questions
}
