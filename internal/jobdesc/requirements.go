// Package jobdesc derives a structured requirement record from free-form job
// description text.
package jobdesc

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/ai"
	"github.com/talentsift/talentsift/internal/jsontext"
)

//go:embed prompt.md
var promptTemplate string

const (
	systemInstruction = "You are an expert at analyzing job descriptions. Return only valid JSON."

	temperature = 0.1
	maxTokens   = 800
)

// Requirements is the extracted requirement record for one job description.
// It is recomputed on every analysis and never persisted across different
// job descriptions.
type Requirements struct {
	// MinimumExperienceYears of 0 means "no floor".
	MinimumExperienceYears float64  `json:"minimum_experience_years"`
	RequiredSkills         []string `json:"required_technical_skills"`
	PreferredSkills        []string `json:"preferred_skills"`
	JobTitle               string   `json:"job_title"`
	SeniorityLevel         string   `json:"seniority_level"`
}

// Extractor performs the single-call requirement extraction.
type Extractor struct {
	completer ai.Completer
	logger    *zap.Logger
}

func NewExtractor(completer ai.Completer, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{completer: completer, logger: log}
}

// Extract analyzes the job description. A nil result with an error means no
// requirements could be derived; the caller then skips pre-screening.
func (e *Extractor) Extract(ctx context.Context, jdText string) (*Requirements, error) {
	if strings.TrimSpace(jdText) == "" {
		return nil, fmt.Errorf("job description is empty")
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{JOB_DESCRIPTION}}", jdText)

	raw, err := e.completer.Complete(ctx, ai.CompletionRequest{
		System:      systemInstruction,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("extract requirements: %w", err)
	}

	var fields map[string]any
	if err := jsontext.Object(raw, &fields); err != nil {
		return nil, fmt.Errorf("extract requirements: %w", err)
	}

	var reqs Requirements
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &reqs,
	})
	if err != nil {
		return nil, fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, fmt.Errorf("decode requirements: %w", err)
	}

	if reqs.MinimumExperienceYears < 0 {
		reqs.MinimumExperienceYears = 0
	}

	e.logger.Debug("extracted job requirements",
		zap.String("job_title", reqs.JobTitle),
		zap.Float64("minimum_experience_years", reqs.MinimumExperienceYears),
		zap.Int("required_skills", len(reqs.RequiredSkills)),
		zap.Int("preferred_skills", len(reqs.PreferredSkills)),
	)

	return &reqs, nil
}
