package screening

import (
	"fmt"

	"github.com/talentsift/talentsift/internal/candidate"
	"github.com/talentsift/talentsift/internal/jobdesc"
)

type experienceFilter struct{}

// NewExperience creates the minimum-experience filter. It skips itself when
// the job description sets no floor.
func NewExperience() Filter {
	return &experienceFilter{}
}

func (f *experienceFilter) Name() string { return "experience" }

func (f *experienceFilter) Apply(pool []*candidate.Candidate, reqs *jobdesc.Requirements) ([]*candidate.Candidate, Step, string) {
	initial := len(pool)

	min := reqs.MinimumExperienceYears
	if min <= 0 {
		return pool, Step{Initial: initial, Left: initial}, ""
	}

	kept := make([]*candidate.Candidate, 0, initial)
	for _, c := range pool {
		// Non-numeric experience cannot satisfy the threshold.
		years, ok := c.ExperienceYears()
		if !ok {
			continue
		}
		if years >= min {
			kept = append(kept, c)
		}
	}

	summary := fmt.Sprintf("experience filter: %g+ years -> %d/%d candidates passed", min, len(kept), initial)
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, summary
}
