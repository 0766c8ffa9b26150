// Package session holds the mutable state of one screening run: the parsed
// candidate table, the raw resume texts keyed by candidate ID, the extracted
// job requirements and the ranking results. Commands pass a *Session around
// explicitly instead of sharing globals. The candidate table is only ever
// replaced wholesale by building a fresh session on re-parse; pre-screening
// hands its narrowed pool to the ranker separately and never mutates the
// table.
package session

import (
	"github.com/talentsift/talentsift/internal/candidate"
	"github.com/talentsift/talentsift/internal/jobdesc"
	"github.com/talentsift/talentsift/internal/ranking"
)

type Session struct {
	candidates   []*candidate.Candidate
	resumeTexts  map[string]string
	requirements *jobdesc.Requirements
	results      []*ranking.MatchResult
}

func New() *Session {
	return &Session{
		resumeTexts: make(map[string]string),
	}
}

// AddCandidate records a parsed candidate together with its raw resume text.
func (s *Session) AddCandidate(c *candidate.Candidate, resumeText string) {
	s.candidates = append(s.candidates, c)
	s.resumeTexts[c.ID] = resumeText
}

func (s *Session) Candidates() []*candidate.Candidate {
	return s.candidates
}

// ResumeText returns the raw text for the given candidate ID. The text map
// is keyed by ID, so when the ranker hands over a candidate name instead
// (the model did not echo the ID back) the lookup falls back to scanning the
// table by name.
func (s *Session) ResumeText(id string) string {
	if text, ok := s.resumeTexts[id]; ok {
		return text
	}

	for _, c := range s.candidates {
		if c.Name == id {
			if text, ok := s.resumeTexts[c.ID]; ok {
				return text
			}
		}
	}
	return ""
}

func (s *Session) SetRequirements(reqs *jobdesc.Requirements) {
	s.requirements = reqs
}

func (s *Session) Requirements() *jobdesc.Requirements {
	return s.requirements
}

func (s *Session) SetResults(results []*ranking.MatchResult) {
	s.results = results
}

func (s *Session) Results() []*ranking.MatchResult {
	return s.results
}
