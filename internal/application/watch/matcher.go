package watch

import (
	"sort"

	"github.com/harshitalegal/markwatch/internal/domain/filing"
	"github.com/harshitalegal/markwatch/internal/domain/portfolio"
)

// MatchMethod records which watch term produced a candidate's score.
type MatchMethod string

const (
	// MethodMark means the filing was scored against the registered mark.
	MethodMark MatchMethod = "mark"

	// MethodKeyword means the best score came from one of the entry's extra
	// watch keywords.
	MethodKeyword MatchMethod = "keyword"
)

// MatchCandidate pairs a filing with one portfolio entry it may conflict
// with.  Candidates are transient: the ranker consumes them immediately and
// they are never persisted.
type MatchCandidate struct {
	Filing *filing.Record             `json:"-"`
	Entry  *portfolio.TrademarkRecord `json:"-"`

	// Score is the composite similarity in [0,1].
	Score float64 `json:"score"`

	// Method identifies the term kind behind the score; MatchedTerm carries
	// the normalized keyword when Method is MethodKeyword.
	Method      MatchMethod `json:"method"`
	MatchedTerm string      `json:"matched_term,omitempty"`

	// ClassOverlap reports whether filing and entry share a classification
	// code.  Always true when class pre-filtering is enabled.
	ClassOverlap bool `json:"class_overlap"`
}

// Match scores one filing against every plausible portfolio entry and returns
// the candidates whose composite score clears o.Threshold (inclusive),
// ordered by score descending with portfolio entry id ascending as the
// deterministic tiebreaker.
//
// Match is pure: it mutates neither the index nor the filing, so calls for
// distinct filings may run concurrently against a shared index.
func Match(f *filing.Record, idx *portfolio.Index, o Options) []MatchCandidate {
	if f == nil || idx == nil {
		return nil
	}

	var out []MatchCandidate
	for _, entry := range idx.CandidatesFor(f.Classes) {
		if cand, ok := scoreEntry(f, entry, o); ok {
			out = append(out, cand)
		}
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return out[a].Entry.ID < out[b].Entry.ID
	})
	return out
}

// scoreEntry computes the best composite score of a filing against one
// portfolio entry, considering the registered mark and every watch keyword,
// and keeping the strongest signal.  The registered mark wins score ties so
// the rationale cites the actual registration whenever possible.
func scoreEntry(f *filing.Record, entry *portfolio.TrademarkRecord, o Options) (MatchCandidate, bool) {
	best := MatchCandidate{
		Filing: f,
		Entry:  entry,
		Method: MethodMark,
		Score:  compositeScore(f.NormalizedMark, entry.NormalizedMark, o),
	}

	for _, kw := range entry.WatchKeywords {
		score := compositeScore(f.NormalizedMark, kw, o)
		// Strict inequality: the registered mark wins ties.
		if score > best.Score {
			best.Score = score
			best.Method = MethodKeyword
			best.MatchedTerm = kw
		}
	}

	if best.Score < o.Threshold {
		return MatchCandidate{}, false
	}

	best.ClassOverlap = classesOverlap(f.Classes, entry.Classes)
	return best, true
}

func classesOverlap(a, b []string) bool {
	for _, ca := range a {
		for _, cb := range b {
			if ca == cb {
				return true
			}
		}
	}
	return false
}
