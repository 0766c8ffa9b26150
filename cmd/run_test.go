package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/ai"
	"github.com/talentsift/talentsift/internal/candidate"
	"github.com/talentsift/talentsift/internal/session"
)

// queuedCompleter replays one canned response per model call, in order.
type queuedCompleter struct {
	responses []string
	calls     int
}

func (q *queuedCompleter) Complete(_ context.Context, _ ai.CompletionRequest) (string, error) {
	if q.calls >= len(q.responses) {
		return "", errors.New("no queued response")
	}
	resp := q.responses[q.calls]
	q.calls++
	return resp, nil
}

func seededSession() *session.Session {
	state := session.New()
	state.AddCandidate(
		&candidate.Candidate{ID: "id-senior", Name: "Senior", Experience: "7", TechStack: "Python, AWS"},
		"Senior engineer building python data pipelines on aws",
	)
	state.AddCandidate(
		&candidate.Candidate{ID: "id-junior", Name: "Junior", Experience: "2", TechStack: "Python"},
		"Junior python developer",
	)
	state.AddCandidate(
		&candidate.Candidate{ID: "id-other", Name: "Other", Experience: "8", TechStack: "COBOL"},
		"Mainframe programmer",
	)
	return state
}

func TestScreenAndRankNeverNarrowsSessionTable(t *testing.T) {
	stub := &queuedCompleter{responses: []string{
		`{"minimum_experience_years": 5, "required_technical_skills": ["Python"], "job_title": "Data Engineer"}`,
		`[{"rank": 1, "id": "id-senior", "name": "Senior", "match_percentage": 80}]`,
	}}
	state := seededSession()
	config := &Config{
		Screening: &ScreeningConfig{SkillMatchRatio: 0.3},
		Ranking:   &RankingConfig{TopN: 5},
	}

	pool, summaries := screenAndRank(context.Background(), stub, config, state, "python data pipelines", zap.NewNop())

	require.Len(t, pool, 1)
	assert.Equal(t, "Senior", pool[0].Name)
	require.Len(t, summaries, 2)

	// The screened pool feeds the ranker only; the full table stays in the
	// session for exports and the interview picker.
	require.Len(t, state.Candidates(), 3)
	assert.Equal(t, "Junior", state.Candidates()[1].Name)
	assert.Equal(t, "Other", state.Candidates()[2].Name)

	require.Len(t, state.Results(), 1)
	assert.Greater(t, state.Results()[0].SemanticScore, 0.0)
}

func TestScreenAndRankResolvesTextWithoutEchoedID(t *testing.T) {
	// The model drops the id field; the session resolves the resume text by
	// scanning the table for the name, so the lexical score still lands.
	stub := &queuedCompleter{responses: []string{
		`{"minimum_experience_years": 0}`,
		`[{"rank": 1, "name": "Senior", "match_percentage": 80}]`,
	}}
	state := seededSession()
	config := &Config{}

	_, _ = screenAndRank(context.Background(), stub, config, state, "python data pipelines", zap.NewNop())

	require.Len(t, state.Results(), 1)
	assert.Greater(t, state.Results()[0].SemanticScore, 0.0)
	assert.Less(t, state.Results()[0].FinalScore, 80.0)
}

func TestScreenAndRankEmptyPoolSkipsRanker(t *testing.T) {
	stub := &queuedCompleter{responses: []string{
		`{"minimum_experience_years": 10}`,
	}}
	state := seededSession()

	pool, summaries := screenAndRank(context.Background(), stub, &Config{}, state, "role", zap.NewNop())

	assert.Empty(t, pool)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, stub.calls, "the ranker must not be called for an empty pool")
	require.Len(t, state.Candidates(), 3)
	assert.Empty(t, state.Results())
}
