// Package screening applies deterministic pre-filters to the candidate table
// before any LLM ranking happens. Filters run sequentially; each reports
// before/after counts plus a human-readable summary line for display.
package screening

import (
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/candidate"
	"github.com/talentsift/talentsift/internal/jobdesc"
)

// Filter represents a single deterministic screening step.
type Filter interface {
	Name() string

	// Apply filters the pool against the requirement record. The returned
	// summary is empty when the filter decided to skip itself (no threshold
	// configured); it is informational output, not part of the scoring
	// contract.
	Apply(pool []*candidate.Candidate, reqs *jobdesc.Requirements) (remaining []*candidate.Candidate, info Step, summary string)
}

// Step describes the result of executing a screening step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters in order and returns the remaining pool
// plus one summary line per filter that actually ran. A nil requirement
// record skips screening entirely.
func Run(logger *zap.Logger, filters []Filter, pool []*candidate.Candidate, reqs *jobdesc.Requirements) ([]*candidate.Candidate, []string) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if reqs == nil {
		logger.Info("no requirement record; skipping pre-screening")
		return pool, nil
	}

	summaries := make([]string, 0, len(filters))
	for _, filter := range filters {
		next, info, summary := filter.Apply(pool, reqs)

		logger.Info("screening step",
			zap.String("name", filter.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		pool = next
		if summary != "" {
			summaries = append(summaries, summary)
		}
	}

	return pool, summaries
}
