package screening

import (
	"fmt"
	"math"
	"strings"

	"github.com/talentsift/talentsift/internal/candidate"
	"github.com/talentsift/talentsift/internal/jobdesc"
)

// DefaultSkillMatchRatio is the share of required skills a candidate must
// match to pass. Deliberately lenient: pre-screening favors recall over
// precision and the LLM ranker sorts out the rest.
const DefaultSkillMatchRatio = 0.3

// skillSynonyms maps a required skill to spellings that count as a match in
// the candidate's tech stack. The "np" entry is a known over-broad substring;
// it is kept for recall.
var skillSynonyms = map[string][]string{
	"scikit-learn": {"sklearn", "scikit"},
	"tensorflow":   {"tensor"},
	"pytorch":      {"torch"},
	"numpy":        {"np"},
}

type skillsFilter struct {
	ratio float64
}

// NewSkills creates the required-skills overlap filter. A non-positive ratio
// falls back to DefaultSkillMatchRatio. The filter skips itself when the
// required-skills list is empty.
func NewSkills(ratio float64) Filter {
	if ratio <= 0 {
		ratio = DefaultSkillMatchRatio
	}
	return &skillsFilter{ratio: ratio}
}

func (f *skillsFilter) Name() string { return "technical_skills" }

func (f *skillsFilter) Apply(pool []*candidate.Candidate, reqs *jobdesc.Requirements) ([]*candidate.Candidate, Step, string) {
	initial := len(pool)

	required := reqs.RequiredSkills
	if len(required) == 0 {
		return pool, Step{Initial: initial, Left: initial}, ""
	}

	// At least one skill, or the configured share of the required list.
	threshold := math.Max(1, f.ratio*float64(len(required)))

	kept := make([]*candidate.Candidate, 0, initial)
	for _, c := range pool {
		if float64(matchedSkills(c.TechStack, required)) >= threshold {
			kept = append(kept, c)
		}
	}

	summary := fmt.Sprintf("technical skills filter: %s -> %d/%d candidates passed",
		skillPreview(required), len(kept), initial)
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, summary
}

// matchedSkills counts required skills found in the tech-stack text, either
// as a case-insensitive substring or via a known synonym.
func matchedSkills(techStack string, required []string) int {
	stack := strings.ToLower(techStack)
	if strings.TrimSpace(stack) == "" {
		return 0
	}

	matched := 0
	for _, skill := range required {
		lower := strings.ToLower(strings.TrimSpace(skill))
		if lower == "" {
			continue
		}

		if strings.Contains(stack, lower) {
			matched++
			continue
		}

		for _, alias := range skillSynonyms[lower] {
			if strings.Contains(stack, alias) {
				matched++
				break
			}
		}
	}

	return matched
}

func skillPreview(skills []string) string {
	if len(skills) <= 3 {
		return strings.Join(skills, ", ")
	}
	return strings.Join(skills[:3], ", ") + "..."
}
