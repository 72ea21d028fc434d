// Package portfolio defines the owned-trademark records and the immutable
// index the similarity matcher queries.  Records are validated on entry and
// never mutated afterwards; the index is built once per run and is safe for
// concurrent readers.
package portfolio

import (
	"sort"
	"strings"

	"github.com/harshitalegal/markwatch/pkg/errors"
	"github.com/harshitalegal/markwatch/pkg/types/common"
)

// Status represents the registration state of a portfolio entry.
type Status string

const (
	StatusActive  Status = "active"
	StatusLapsed  Status = "lapsed"
	StatusPending Status = "pending"
)

// ParseStatus maps a raw status cell to a Status, defaulting unknown values
// to active so that a sloppily maintained spreadsheet still gets watched.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusLapsed:
		return StatusLapsed
	case StatusPending:
		return StatusPending
	default:
		return StatusActive
	}
}

// TrademarkRecord is one owned mark in the tracked portfolio.  Immutable once
// loaded; the Portfolio Index owns all records for the lifetime of one run.
type TrademarkRecord struct {
	ID               common.ID   `json:"id"`
	Owner            string      `json:"owner"`
	OwnerEmail       string      `json:"owner_email,omitempty"`
	Mark             string      `json:"mark"`
	NormalizedMark   string      `json:"normalized_mark"`
	Classes          []string    `json:"classes"`
	RegistrationNo   string      `json:"registration_no,omitempty"`
	RegistrationDate common.Date `json:"registration_date,omitempty"`
	ExpiryDate       common.Date `json:"expiry_date,omitempty"`
	Status           Status      `json:"status"`

	// WatchKeywords are extra normalized terms to score filings against in
	// addition to the registered mark (e.g. common misspellings or the house
	// brand family).  Optional.
	WatchKeywords []string `json:"watch_keywords,omitempty"`
}

// NewTrademarkRecord validates and constructs a TrademarkRecord, deriving the
// normalized mark text and normalizing watch keywords.  An empty id is
// replaced with a generated one.  Classification codes are trimmed,
// deduplicated, and sorted.
func NewTrademarkRecord(
	id common.ID,
	owner, ownerEmail, mark string,
	classes []string,
	registrationNo string,
	registrationDate, expiryDate common.Date,
	status Status,
	watchKeywords []string,
) (*TrademarkRecord, error) {
	if strings.TrimSpace(mark) == "" {
		return nil, errors.NewMalformedRecord("portfolio record is missing mark text")
	}
	cleaned := cleanClasses(classes)
	if len(cleaned) == 0 {
		return nil, errors.NewMalformedRecord("portfolio record %q is missing classification codes", mark)
	}
	if id.IsZero() {
		id = common.NewID()
	}
	if status == "" {
		status = StatusActive
	}

	var keywords []string
	for _, kw := range watchKeywords {
		if n := Normalize(kw); n != "" {
			keywords = append(keywords, n)
		}
	}

	return &TrademarkRecord{
		ID:               id,
		Owner:            strings.TrimSpace(owner),
		OwnerEmail:       strings.TrimSpace(ownerEmail),
		Mark:             strings.TrimSpace(mark),
		NormalizedMark:   Normalize(mark),
		Classes:          cleaned,
		RegistrationNo:   strings.TrimSpace(registrationNo),
		RegistrationDate: registrationDate,
		ExpiryDate:       expiryDate,
		Status:           status,
		WatchKeywords:    keywords,
	}, nil
}

// IsActive reports whether the record participates in watching and renewal
// scheduling.
func (r *TrademarkRecord) IsActive() bool {
	return r.Status == StatusActive
}

// WatchTerms returns every normalized term this record should be matched on:
// the registered mark first, then any watch keywords.  Empty terms are
// omitted.
func (r *TrademarkRecord) WatchTerms() []string {
	terms := make([]string, 0, 1+len(r.WatchKeywords))
	if r.NormalizedMark != "" {
		terms = append(terms, r.NormalizedMark)
	}
	terms = append(terms, r.WatchKeywords...)
	return terms
}

// HasClass reports whether the record covers the given classification code.
func (r *TrademarkRecord) HasClass(class string) bool {
	class = strings.TrimSpace(class)
	for _, c := range r.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// validateRecord re-checks the invariants NewTrademarkRecord enforces, for
// records handed to BuildIndex that were constructed directly.
func validateRecord(r *TrademarkRecord) error {
	if strings.TrimSpace(r.Mark) == "" {
		return errors.NewMalformedRecord("portfolio record is missing mark text")
	}
	if len(cleanClasses(r.Classes)) == 0 {
		return errors.NewMalformedRecord("portfolio record %q is missing classification codes", r.Mark)
	}
	return nil
}

func errMissingRecord(position int) error {
	return errors.NewMalformedRecord("portfolio record at position %d is nil", position)
}

// cleanClasses trims, drops empties, deduplicates, and sorts classification
// codes so record comparisons are order-insensitive.
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
