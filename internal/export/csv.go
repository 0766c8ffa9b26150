// Package export persists candidate tables and ranking results to CSV and
// Excel files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/talentsift/talentsift/internal/candidate"
	"github.com/talentsift/talentsift/internal/ranking"
)

var candidateHeader = []string{
	"id", "name", "email", "phone", "experience_years", "tech_stack",
	"current_role", "education", "key_projects", "certifications",
	"domain_expertise", "filename", "submission_date",
}

var resultHeader = []string{
	"rank", "name", "match_percentage", "semantic_score", "final_score",
	"strengths", "gaps", "recommendation", "interview_priority",
}

// WriteCandidates writes the candidate table as CSV.
func WriteCandidates(w io.Writer, pool []*candidate.Candidate) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(candidateHeader); err != nil {
		return fmt.Errorf("writing candidate header: %w", err)
	}
	for _, c := range pool {
		row := []string{
			c.ID, c.Name, c.Email, c.Phone, c.Experience, c.TechStack,
			c.CurrentRole, c.Education, c.KeyProjects, c.Certifications,
			c.DomainExpertise, c.Filename, c.SubmissionDate,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing candidate row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCandidates parses a candidate CSV produced by WriteCandidates. Column
// order follows the header row, so files with reordered or additional
// columns still load.
func ReadCandidates(r io.Reader) ([]*candidate.Candidate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading candidate header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var pool []*candidate.Candidate
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading candidate row: %w", err)
		}

		pool = append(pool, &candidate.Candidate{
			ID:              field(row, "id"),
			Name:            field(row, "name"),
			Email:           field(row, "email"),
			Phone:           field(row, "phone"),
			Experience:      field(row, "experience_years"),
			TechStack:       field(row, "tech_stack"),
			CurrentRole:     field(row, "current_role"),
			Education:       field(row, "education"),
			KeyProjects:     field(row, "key_projects"),
			Certifications:  field(row, "certifications"),
			DomainExpertise: field(row, "domain_expertise"),
			Filename:        field(row, "filename"),
			SubmissionDate:  field(row, "submission_date"),
		})
	}

	return pool, nil
}

// WriteResults writes ranking results as CSV, preserving order.
func WriteResults(w io.Writer, results []*ranking.MatchResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(resultHeader); err != nil {
		return fmt.Errorf("writing result header: %w", err)
	}
	for _, res := range results {
		row := []string{
			strconv.Itoa(res.Rank),
			res.Name,
			formatScore(res.MatchPercentage),
			formatScore(res.SemanticScore),
			formatScore(res.FinalScore),
			res.Strengths,
			res.Gaps,
			res.Recommendation,
			res.InterviewPriority,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing result row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
