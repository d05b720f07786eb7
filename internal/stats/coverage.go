package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/wordsearch/internal/model"
)

// Coverage reports how much of a rule the corpus can satisfy.
type Coverage struct {
	Rule      model.Rule
	Available int
	Claimable int
}

// Short reports whether the rule will be under-filled.
func (c Coverage) Short() bool {
	return c.Claimable < c.Rule.Count
}

// RuleCoverage walks rules in order against the histogram, consuming words the
// same way the quota selector does, so repeated sizes see a shrinking pool.
func RuleCoverage(buckets []model.LengthBucket, rules []model.Rule) []Coverage {
	left := map[int]int{}
	for _, b := range buckets {
		left[b.Length] = b.Words
	}
	out := make([]Coverage, 0, len(rules))
	for _, r := range rules {
		avail := left[r.Size]
		claim := min(avail, r.Count)
		left[r.Size] = avail - claim
		out = append(out, Coverage{Rule: r, Available: avail, Claimable: claim})
	}
	return out
}

// RenderCoverageTable prints rule coverage rows.
func RenderCoverageTable(w io.Writer, coverage []Coverage) error {
	if len(coverage) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Rules"); err != nil {
		return err
	}
	r := newReport(
		column{"Size", true},
		column{"Count", true},
		column{"Available", true},
		column{"Claimed", true},
		column{"Status", false},
	)
	for _, c := range coverage {
		status := "ok"
		if c.Short() {
			status = fmt.Sprintf("short by %d", c.Rule.Count-c.Claimable)
		}
		r.add(
			fmt.Sprintf("%d", c.Rule.Size),
			fmt.Sprintf("%d", c.Rule.Count),
			fmt.Sprintf("%d", c.Available),
			fmt.Sprintf("%d", c.Claimable),
			status,
		)
	}
	return r.write(w)
}
