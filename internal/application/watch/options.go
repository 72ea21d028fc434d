// Package watch implements the similarity-matching and alert-ranking engine:
// it scores newly published filings against the portfolio index, ranks the
// conflicts into risk tiers, and produces the deterministic alert report.
package watch

import (
	"runtime"

	"github.com/harshitalegal/markwatch/pkg/errors"
)

// Default scoring parameters.  The weights and cutoffs are operating defaults
// rather than hard business rules; they are configurable and should be tuned
// against real adjudication outcomes.
const (
	DefaultThreshold     = 0.80
	DefaultEditWeight    = 0.8
	DefaultContainWeight = 0.2
	DefaultHighCutoff    = 0.95
	DefaultMediumCutoff  = 0.85
)

// maxWorkers caps the matching pool so a misconfigured deployment cannot
// exhaust the scheduler on a large feed.
const maxWorkers = 64

// Cutoffs are the composite-score boundaries between risk tiers.  Scores at
// or above High are HIGH; at or above Medium are MEDIUM; everything else that
// cleared the match threshold is LOW.
type Cutoffs struct {
	High   float64 `mapstructure:"high" json:"high"`
	Medium float64 `mapstructure:"medium" json:"medium"`
}

// Options carries every tunable of the watch engine.
type Options struct {
	// Threshold is the minimum composite score for a candidate to be
	// emitted.  A score exactly equal to the threshold is included.
	Threshold float64 `mapstructure:"threshold" json:"threshold"`

	// EditWeight and ContainWeight blend the token-sorted string similarity
	// and the substring-containment bonus into the composite score.
	EditWeight    float64 `mapstructure:"edit_weight" json:"edit_weight"`
	ContainWeight float64 `mapstructure:"contain_weight" json:"contain_weight"`

	// Tiers holds the risk-tier score cutoffs.
	Tiers Cutoffs `mapstructure:"tiers" json:"tiers"`

	// ClassPrefilter narrows matching to portfolio entries sharing a
	// classification code with the filing.
	ClassPrefilter bool `mapstructure:"class_prefilter" json:"class_prefilter"`

	// Workers bounds the matching worker pool.  Zero means one worker per
	// available CPU.
	Workers int `mapstructure:"workers" json:"workers"`
}

// DefaultOptions returns the engine defaults: threshold 0.80, 0.8/0.2
// weighting, 0.95/0.85 tier cutoffs, class pre-filtering on.
func DefaultOptions() Options {
	return Options{
		Threshold:      DefaultThreshold,
		EditWeight:     DefaultEditWeight,
		ContainWeight:  DefaultContainWeight,
		Tiers:          Cutoffs{High: DefaultHighCutoff, Medium: DefaultMediumCutoff},
		ClassPrefilter: true,
	}
}

// Validate rejects out-of-range tunables.  Any error here is fatal and must
// abort the run before matching starts, since downstream classification would
// be meaningless.
func (o Options) Validate() error {
	if o.Threshold < 0 || o.Threshold > 1 {
		return errors.NewConfiguration("watch: threshold %.4f outside [0,1]", o.Threshold)
	}
	if o.EditWeight < 0 || o.ContainWeight < 0 {
		return errors.NewConfiguration("watch: similarity weights must be non-negative")
	}
	if o.EditWeight+o.ContainWeight == 0 {
		return errors.NewConfiguration("watch: at least one similarity weight must be positive")
	}
	if o.Tiers.High <= 0 || o.Tiers.High > 1 || o.Tiers.Medium <= 0 || o.Tiers.Medium > 1 {
		return errors.NewConfiguration("watch: tier cutoffs must be in (0,1]")
	}
	if o.Tiers.Medium >= o.Tiers.High {
		return errors.NewConfiguration(
			"watch: tier cutoffs must ascend: medium (%.4f) must be below high (%.4f)",
			o.Tiers.Medium, o.Tiers.High)
	}
	if o.Workers < 0 {
		return errors.NewConfiguration("watch: workers must be non-negative, got %d", o.Workers)
	}
	return nil
}

// workerCount resolves the effective pool size.
func (o Options) workerCount() int {
	n := o.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}
