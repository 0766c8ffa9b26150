package interview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/ai"
	"github.com/talentsift/talentsift/internal/candidate"
)

type stubCompleter struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubCompleter) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	s.lastPrompt = req.Prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testCandidate() *candidate.Candidate {
	return &candidate.Candidate{
		ID:          "id-alice",
		Name:        "Alice",
		Experience:  "6",
		TechStack:   "Go, Kubernetes",
		CurrentRole: "Platform Engineer",
	}
}

func TestGenerateParsesQuestions(t *testing.T) {
	stub := &stubCompleter{response: `Here you go:
[
  {"category": "Technical", "question": "Explain goroutine scheduling.", "why_asking": "Core Go knowledge."},
  {"category": "Behavioral", "question": "Describe a rollout that went wrong.", "why_asking": "STAR format probe."}
]`}

	questions := NewGenerator(stub, zap.NewNop()).Generate(context.Background(), testCandidate(), "Senior Go engineer role")

	require.Len(t, questions, 2)
	assert.Equal(t, "Technical", questions[0].Category)
	assert.Equal(t, "Explain goroutine scheduling.", questions[0].Question)
	assert.Equal(t, "STAR format probe.", questions[1].WhyAsking)

	assert.Contains(t, stub.lastPrompt, "- Name: Alice")
	assert.Contains(t, stub.lastPrompt, "- Tech: Go, Kubernetes")
}

func TestGenerateTruncatesJobDescription(t *testing.T) {
	stub := &stubCompleter{response: "[]"}
	long := strings.Repeat("x", 5000)

	NewGenerator(stub, zap.NewNop()).Generate(context.Background(), testCandidate(), long)

	assert.Contains(t, stub.lastPrompt, "JOB: "+strings.Repeat("x", 1000)+"\n")
	assert.NotContains(t, stub.lastPrompt, strings.Repeat("x", 1001))
}

func TestGenerateTruncationKeepsRunesIntact(t *testing.T) {
	stub := &stubCompleter{response: "[]"}
	// The first multi-byte rune straddles the truncation boundary.
	long := strings.Repeat("a", 999) + "日本語" + strings.Repeat("x", 50)

	NewGenerator(stub, zap.NewNop()).Generate(context.Background(), testCandidate(), long)

	assert.True(t, utf8.ValidString(stub.lastPrompt), "prompt contains a split rune")
	assert.NotContains(t, stub.lastPrompt, "日")
}

func TestGenerateFailuresReturnEmpty(t *testing.T) {
	cases := map[string]*stubCompleter{
		"transport error": {err: errors.New("timeout")},
		"no json array":   {response: "Sorry, I cannot help with that."},
		"malformed json":  {response: `[{"category": "Technical"`},
	}

	for name, stub := range cases {
		t.Run(name, func(t *testing.T) {
			questions := NewGenerator(stub, zap.NewNop()).Generate(context.Background(), testCandidate(), "role")

			assert.Empty(t, questions)
		})
	}
}
