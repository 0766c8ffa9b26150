package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentsift/talentsift/internal/candidate"
	"github.com/talentsift/talentsift/internal/jobdesc"
	"github.com/talentsift/talentsift/internal/ranking"
)

func TestSessionResumeTextLookup(t *testing.T) {
	s := New()
	s.AddCandidate(&candidate.Candidate{ID: "id-1", Name: "Alice"}, "alice resume text")
	s.AddCandidate(&candidate.Candidate{ID: "id-2", Name: "Bob"}, "bob resume text")

	assert.Equal(t, "alice resume text", s.ResumeText("id-1"))
	assert.Equal(t, "bob resume text", s.ResumeText("id-2"))
	assert.Equal(t, "", s.ResumeText("id-unknown"))
}

func TestSessionResumeTextFallsBackToName(t *testing.T) {
	s := New()
	s.AddCandidate(&candidate.Candidate{ID: "id-1", Name: "Alice"}, "alice resume text")

	assert.Equal(t, "alice resume text", s.ResumeText("Alice"))
}

func TestSessionRequirementsAndResults(t *testing.T) {
	s := New()
	assert.Nil(t, s.Requirements())
	assert.Nil(t, s.Results())

	reqs := &jobdesc.Requirements{JobTitle: "Go Engineer"}
	s.SetRequirements(reqs)
	assert.Same(t, reqs, s.Requirements())

	results := []*ranking.MatchResult{{Rank: 1, Name: "Alice"}}
	s.SetResults(results)
	assert.Equal(t, results, s.Results())
}
