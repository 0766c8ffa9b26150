package candidate

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/ai"
	"github.com/talentsift/talentsift/internal/jsontext"
	"github.com/talentsift/talentsift/internal/redact"
)

//go:embed prompt.md
var promptTemplate string

const (
	// promptBudget bounds the resume text embedded into the prompt.
	promptBudget = 6000

	systemInstruction = "You are a precise resume parser. Extract ALL contact information including email and phone. Return only valid JSON."

	temperature = 0.1
	maxTokens   = 1500

	submissionDateFormat = "2006-01-02 15:04:05"
)

// Document is one resume handed to the structurer: raw (unredacted) text plus
// provenance.
type Document struct {
	Filename  string
	Text      string
	Submitted time.Time
}

// Structurer turns resume text into Candidate records via one LLM completion
// per document.
type Structurer struct {
	completer ai.Completer
	maskPII   bool
	logger    *zap.Logger
}

// NewStructurer creates a structurer. When maskPII is set, email and phone
// tokens are replaced with placeholders before the text reaches the model;
// contact fields are then always backfilled from the unredacted text.
func NewStructurer(completer ai.Completer, maskPII bool, log *zap.Logger) *Structurer {
	if log == nil {
		log = zap.NewNop()
	}

	return &Structurer{
		completer: completer,
		maskPII:   maskPII,
		logger:    log,
	}
}

// Parse produces one Candidate from one document. Any failure (transport,
// missing JSON, malformed JSON) drops the document: the caller logs the error
// and continues with the rest of the batch.
func (s *Structurer) Parse(ctx context.Context, doc Document) (*Candidate, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return nil, fmt.Errorf("document %s has no text", doc.Filename)
	}

	// Contacts come from the unredacted text so masking cannot hide them.
	email := redact.FindEmail(doc.Text)
	phone := redact.FindPhone(doc.Text)

	llmText := doc.Text
	if s.maskPII {
		llmText = redact.Mask(doc.Text)
	}
	if len(llmText) > promptBudget {
		cut := promptBudget
		// never split a multi-byte rune at the boundary
		for cut > 0 && !utf8.RuneStart(llmText[cut]) {
			cut--
		}
		llmText = llmText[:cut]
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{RESUME_TEXT}}", llmText)

	raw, err := s.completer.Complete(ctx, ai.CompletionRequest{
		System:      systemInstruction,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("parse resume %s: %w", doc.Filename, err)
	}

	record, err := decodeCandidate(raw)
	if err != nil {
		return nil, fmt.Errorf("parse resume %s: %w", doc.Filename, err)
	}

	s.reconcileContacts(record, email, phone)

	record.ID = uuid.NewString()
	record.Filename = doc.Filename

	submitted := doc.Submitted
	if submitted.IsZero() {
		submitted = time.Now()
	}
	record.SubmissionDate = submitted.Format(submissionDateFormat)

	s.logger.Debug("structured resume",
		zap.String("candidate_id", record.ID),
		zap.String("filename", doc.Filename),
		zap.String("name", record.Name),
	)

	return record, nil
}

// reconcileContacts merges regex-extracted contacts into the record. When the
// model only saw masked text its contact output is untrustworthy, so the
// regex values always win; otherwise they only fill gaps.
func (s *Structurer) reconcileContacts(record *Candidate, email, phone string) {
	if s.maskPII {
		if email != "" {
			record.Email = email
		}
		if phone != "" {
			record.Phone = phone
		}
	} else {
		if !HasContact(record.Email) {
			record.Email = email
		}
		if !HasContact(record.Phone) {
			record.Phone = phone
		}
	}

	if !HasContact(record.Email) {
		record.Email = ""
	}
	if !HasContact(record.Phone) {
		record.Phone = ""
	}
}

// decodeCandidate recovers the embedded JSON object and weakly decodes it, so
// numeric experience values and stringly-typed ones both land in the record.
func decodeCandidate(raw string) (*Candidate, error) {
	var fields map[string]any
	if err := jsontext.Object(raw, &fields); err != nil {
		return nil, err
	}

	normalizeLists(fields)

	var record Candidate
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &record,
	})
	if err != nil {
		return nil, fmt.Errorf("build decoder: %w", err)
	}

	if err := decoder.Decode(fields); err != nil {
		return nil, fmt.Errorf("decode candidate record: %w", err)
	}

	return &record, nil
}

// normalizeLists joins array-valued fields the model sometimes emits for
// comma-separated ones (tech_stack in particular).
func normalizeLists(fields map[string]any) {
	for key, value := range fields {
		items, ok := value.([]any)
		if !ok {
			continue
		}

		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, strings.TrimSpace(fmt.Sprintf("%v", item)))
		}
		fields[key] = strings.Join(parts, ", ")
	}
}
