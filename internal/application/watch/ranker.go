package watch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harshitalegal/markwatch/internal/domain/filing"
)

// RiskTier summarizes alert urgency for human triage.
type RiskTier int

const (
	RiskHigh RiskTier = iota + 1
	RiskMedium
	RiskLow
)

// MarshalJSON renders the tier by name so JSON reports stay readable without
// the enum mapping.
func (t RiskTier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// String returns the human-readable representation of a RiskTier.
func (t RiskTier) String() string {
	switch t {
	case RiskHigh:
		return "HIGH"
	case RiskMedium:
		return "MEDIUM"
	case RiskLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// Alert flags one filing for human review.  At most one Alert exists per
// filing; every supporting candidate tied at the maximum score is retained as
// evidence, since legal risk review must see all plausible conflicts.
type Alert struct {
	Filing *filing.Record `json:"filing"`

	// Evidence holds the best-supporting candidate(s), ordered by portfolio
	// entry id.  Never empty.
	Evidence []MatchCandidate `json:"evidence"`

	// MaxScore is the composite score of the strongest candidate.
	MaxScore float64 `json:"max_score"`

	Tier      RiskTier `json:"tier"`
	Rationale string   `json:"rationale"`
}

// Rank aggregates a filing's match candidates into a single Alert, or nil
// when there are no candidates (the valid no-conflict case, never an error).
// When several portfolio entries tie at the maximum score all of them are
// kept as evidence; ties are never silently dropped.
func Rank(f *filing.Record, candidates []MatchCandidate, o Options) *Alert {
	if f == nil || len(candidates) == 0 {
		return nil
	}

	maxScore := candidates[0].Score
	for _, c := range candidates[1:] {
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}

	var evidence []MatchCandidate
	for _, c := range candidates {
		if c.Score == maxScore {
			evidence = append(evidence, c)
		}
	}
	sort.Slice(evidence, func(a, b int) bool {
		return evidence[a].Entry.ID < evidence[b].Entry.ID
	})

	tier := o.tierFor(maxScore)
	return &Alert{
		Filing:    f,
		Evidence:  evidence,
		MaxScore:  maxScore,
		Tier:      tier,
		Rationale: rationale(f, evidence, maxScore, tier),
	}
}

// tierFor maps a composite score to a risk tier.  Callers only pass scores
// that already cleared the match threshold.
func (o Options) tierFor(score float64) RiskTier {
	switch {
	case score >= o.Tiers.High:
		return RiskHigh
	case score >= o.Tiers.Medium:
		return RiskMedium
	default:
		return RiskLow
	}
}

// rationale renders the single-line justification attached to every alert.
func rationale(f *filing.Record, evidence []MatchCandidate, maxScore float64, tier RiskTier) string {
	marks := make([]string, 0, len(evidence))
	for _, c := range evidence {
		m := fmt.Sprintf("%q", c.Entry.Mark)
		if c.Method == MethodKeyword {
			m = fmt.Sprintf("%q (via watch keyword %q)", c.Entry.Mark, c.MatchedTerm)
		}
		marks = append(marks, m)
	}

	return fmt.Sprintf("filing %q scored %.3f (%s) against portfolio mark(s) %s",
		f.Mark, maxScore, tier, strings.Join(marks, ", "))
}

// SortAlerts orders the final report: risk tier first (HIGH before MEDIUM
// before LOW), then max score descending, then filing date ascending, then
// filing source id ascending.  The order is total, so re-runs over identical
// inputs produce byte-identical reports.
func SortAlerts(alerts []*Alert) {
	sort.Slice(alerts, func(a, b int) bool {
		x, y := alerts[a], alerts[b]
		if x.Tier != y.Tier {
			return x.Tier < y.Tier
		}
		if x.MaxScore != y.MaxScore {
			return x.MaxScore > y.MaxScore
		}
		if !x.Filing.FilingDate.Equal(y.Filing.FilingDate) {
			return x.Filing.FilingDate.Before(y.Filing.FilingDate)
		}
		return x.Filing.SourceID < y.Filing.SourceID
	})
}
