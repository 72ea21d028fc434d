package portfolio

import (
	"sort"

	"github.com/harshitalegal/markwatch/pkg/types/common"
)

// IndexOptions controls index construction.
type IndexOptions struct {
	// ClassPrefilter narrows CandidatesFor to entries sharing at least one
	// classification code with the query.  When disabled, every lookup
	// returns the full portfolio.  Pre-filtering bounds the
	// O(filings × portfolio) comparison to plausibly conflicting pairs.
	ClassPrefilter bool
}

// RecordError reports one rejected portfolio record.  Rejections are
// row-level: the rest of the batch is still indexed.
type RecordError struct {
	// Position is the zero-based position of the record in the input batch.
	Position int `json:"position"`

	// Mark is the raw mark text of the rejected record, when present.
	Mark string `json:"mark,omitempty"`

	// Err is the underlying malformed-record error.
	Err error `json:"-"`
}

func (e RecordError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e RecordError) Unwrap() error {
	return e.Err
}

// Index is the read-only lookup structure over a loaded portfolio.  Build it
// once per run with BuildIndex; it performs no mutation afterwards, so it is
// safe to share across matcher goroutines without locking.
type Index struct {
	records   []*TrademarkRecord
	byClass   map[string][]*TrademarkRecord
	prefilter bool
}

// BuildIndex validates and indexes the given records.  Records that fail
// validation (missing mark text or classification codes) are skipped and
// reported in the returned RecordError slice; they never abort the build.
// Indexed records are held in ascending id order so every lookup is
// deterministic.
func BuildIndex(records []*TrademarkRecord, opts IndexOptions) (*Index, []RecordError) {
	idx := &Index{
		byClass:   make(map[string][]*TrademarkRecord),
		prefilter: opts.ClassPrefilter,
	}

	var errs []RecordError
	for i, r := range records {
		if r == nil {
			errs = append(errs, RecordError{Position: i, Err: errMissingRecord(i)})
			continue
		}
		if err := validateRecord(r); err != nil {
			errs = append(errs, RecordError{Position: i, Mark: r.Mark, Err: err})
			continue
		}
		// Records built outside NewTrademarkRecord may lack the derived
		// normalized form; index a completed copy rather than mutating the
		// caller's record.
		if r.NormalizedMark == "" {
			clone := *r
			clone.NormalizedMark = Normalize(clone.Mark)
			r = &clone
		}
		idx.records = append(idx.records, r)
	}

	sort.Slice(idx.records, func(a, b int) bool {
		return idx.records[a].ID < idx.records[b].ID
	})

	for _, r := range idx.records {
		for _, c := range r.Classes {
			idx.byClass[c] = append(idx.byClass[c], r)
		}
	}

	return idx, errs
}

// CandidatesFor returns the portfolio entries that could plausibly conflict
// with a filing in the given classes, in ascending id order.  With class
// pre-filtering disabled (or an empty query) the full portfolio is returned.
// The returned slice must be treated as read-only.
func (idx *Index) CandidatesFor(classes []string) []*TrademarkRecord {
	if !idx.prefilter || len(classes) == 0 {
		return idx.records
	}

	seen := make(map[common.ID]struct{})
	var out []*TrademarkRecord
	for _, c := range classes {
		for _, r := range idx.byClass[c] {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}

	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// Records returns every indexed record in ascending id order.  Read-only.
func (idx *Index) Records() []*TrademarkRecord {
	return idx.records
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Classes returns the sorted set of classification codes present in the
// portfolio.
func (idx *Index) Classes() []string {
	out := make([]string, 0, len(idx.byClass))
	for c := range idx.byClass {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
