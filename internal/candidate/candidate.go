// Package candidate defines the parsed resume record and the LLM-backed
// structurer that produces it.
package candidate

import (
	"strconv"
	"strings"
)

// Candidate is one parsed resume. Records are immutable once produced; the
// session replaces the whole table on re-parse instead of mutating rows.
type Candidate struct {
	// ID is a synthetic identifier assigned at parse time. Downstream joins
	// (resume text lookup, ranking) key on it instead of the name, which is
	// not unique.
	ID string `json:"id"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	// Experience keeps whatever the model produced. It is coerced to a
	// number only at comparison time; see ExperienceYears.
	Experience string `json:"experience_years"`

	TechStack       string `json:"tech_stack"`
	CurrentRole     string `json:"current_role"`
	Education       string `json:"education"`
	KeyProjects     string `json:"key_projects"`
	Certifications  string `json:"certifications"`
	DomainExpertise string `json:"domain_expertise"`

	// Provenance metadata, not used in scoring.
	Filename       string `json:"filename"`
	SubmissionDate string `json:"submission_date"`
}

// ExperienceYears coerces the experience field to a number. The second return
// is false when the value is absent or not numeric; such candidates cannot
// satisfy an experience threshold.
func (c *Candidate) ExperienceYears() (float64, bool) {
	raw := strings.TrimSpace(c.Experience)
	if raw == "" {
		return 0, false
	}

	years, err := strconv.ParseFloat(raw, 64)
	if err != nil || years < 0 {
		return 0, false
	}

	return years, true
}

// HasContact reports whether the given value carries real contact data, as
// opposed to a null marker or masked placeholder echoed back by the model.
func HasContact(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}

	switch strings.ToLower(trimmed) {
	case "null", "none", "n/a":
		return false
	}

	return !strings.HasPrefix(trimmed, "[")
}
