// Package filing defines incoming trademark filing records — the candidate
// marks the watch pipeline scores against the portfolio.  Filings are
// immutable once ingested.
package filing

import (
	"sort"
	"strings"

	"github.com/harshitalegal/markwatch/internal/domain/portfolio"
	"github.com/harshitalegal/markwatch/pkg/errors"
	"github.com/harshitalegal/markwatch/pkg/types/common"
)

// Record is one newly published trademark filing.
type Record struct {
	// SourceID identifies the filing in its originating feed (e.g. the
	// application number).  Used as the deterministic tiebreaker in report
	// ordering, so it must be stable across runs.
	SourceID string `json:"source_id"`

	Applicant      string      `json:"applicant"`
	Mark           string      `json:"mark"`
	NormalizedMark string      `json:"normalized_mark"`
	Classes        []string    `json:"classes"`
	FilingDate     common.Date `json:"filing_date"`
}

// NewRecord validates and constructs a filing Record, deriving the normalized
// mark text.  Classification codes are trimmed, deduplicated, and sorted.
func NewRecord(sourceID, applicant, mark string, classes []string, filingDate common.Date) (*Record, error) {
	if strings.TrimSpace(sourceID) == "" {
		return nil, errors.NewMalformedRecord("filing record is missing source id")
	}
	if strings.TrimSpace(mark) == "" {
		return nil, errors.NewMalformedRecord("filing %s is missing mark text", sourceID)
	}
	cleaned := cleanClasses(classes)
	if len(cleaned) == 0 {
		return nil, errors.NewMalformedRecord("filing %s is missing classification codes", sourceID)
	}

	return &Record{
		SourceID:       strings.TrimSpace(sourceID),
		Applicant:      strings.TrimSpace(applicant),
		Mark:           strings.TrimSpace(mark),
		NormalizedMark: portfolio.Normalize(mark),
		Classes:        cleaned,
		FilingDate:     filingDate,
	}, nil
}

func cleanClasses(classes []string) []string {
	seen := make(map[string]struct{}, len(classes))
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
