// Package tabular is the CSV ingestion boundary.  All parsing of external
// feed data (dates, class lists, keyword lists) happens here; the domain
// packages only ever see validated, typed records.
//
// Header validation is strict and up front: a feed whose header is missing a
// required column is rejected as a whole, because a renamed or dropped column
// silently corrupting every row is worse than a hard failure.  Individual bad
// rows, by contrast, are skipped and collected so one typo cannot block a
// thousand-record feed.
package tabular

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/harshitalegal/markwatch/internal/domain/filing"
	"github.com/harshitalegal/markwatch/internal/domain/portfolio"
	"github.com/harshitalegal/markwatch/pkg/errors"
	"github.com/harshitalegal/markwatch/pkg/types/common"
)

// Portfolio feed columns.  Column names follow the intake spreadsheet
// template the legal team already uses.
const (
	colTrademark        = "Trademark"
	colClass            = "Class"
	colOwner            = "Owner"
	colOwnerEmail       = "OwnerEmail"
	colRegNo            = "RegNo"
	colRegistrationDate = "RegistrationDate"
	colRenewalDate      = "RenewalDate"
	colStatus           = "Status"
	colWatchKeywords    = "WatchKeywords"
	colRecordID         = "ID"
)

// Filing feed columns.
const (
	colApplicationNo = "ApplicationNo"
	colMark          = "Mark"
	colApplicant     = "Applicant"
	colFilingDate    = "FilingDate"
)

var (
	portfolioRequired = []string{colTrademark, colClass}
	filingRequired    = []string{colApplicationNo, colMark, colClass}
)

// classSeparator splits multi-valued Class and WatchKeywords cells.
const classSeparator = ";"

// header maps column names to their position in the CSV header row.
type header map[string]int

func readHeader(cr *csv.Reader, required []string) (header, error) {
	row, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFeedParseError, "failed to read feed header")
	}

	h := make(header, len(row))
	for i, name := range row {
		h[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := h[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Newf(errors.ErrCodeFeedSchemaInvalid,
			"feed header is missing required column(s): %s", strings.Join(missing, ", "))
	}
	return h, nil
}

// get returns the trimmed cell under the named column, or "" when the column
// is absent or the row is short.
func (h header) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, classSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDate parses an optional 2006-01-02 cell.  Empty cells are valid and
// yield the zero Date.
func parseDate(cell string) (common.Date, error) {
	if cell == "" {
		return common.Date{}, nil
	}
	return common.ParseDate(cell)
}

// LoadPortfolio parses the portfolio feed.  The header must carry at least
// the Trademark and Class columns or the whole feed is rejected.  Rows that
// fail validation are skipped and returned as RecordErrors alongside the
// parsed records.
func LoadPortfolio(r io.Reader) ([]*portfolio.TrademarkRecord, []portfolio.RecordError, error) {
	cr := newReader(r)
	h, err := readHeader(cr, portfolioRequired)
	if err != nil {
		return nil, nil, err
	}

	var (
		records []*portfolio.TrademarkRecord
		skipped []portfolio.RecordError
	)
	for pos := 0; ; pos++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped = append(skipped, portfolio.RecordError{
				Position: pos,
				Err:      errors.Wrap(err, errors.ErrCodeMalformedRecord, "unparseable csv row"),
			})
			continue
		}

		rec, err := portfolioRow(h, row)
		if err != nil {
			skipped = append(skipped, portfolio.RecordError{
				Position: pos,
				Mark:     h.get(row, colTrademark),
				Err:      err,
			})
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func portfolioRow(h header, row []string) (*portfolio.TrademarkRecord, error) {
	regDate, err := parseDate(h.get(row, colRegistrationDate))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMalformedRecord, "invalid registration date")
	}
	renewalDate, err := parseDate(h.get(row, colRenewalDate))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMalformedRecord, "invalid renewal date")
	}

	return portfolio.NewTrademarkRecord(
		common.ID(h.get(row, colRecordID)),
		h.get(row, colOwner),
		h.get(row, colOwnerEmail),
		h.get(row, colTrademark),
		splitList(h.get(row, colClass)),
		h.get(row, colRegNo),
		regDate,
		renewalDate,
		portfolio.ParseStatus(h.get(row, colStatus)),
		splitList(h.get(row, colWatchKeywords)),
	)
}

// LoadFilings parses the new-filings feed.  The header must carry the
// ApplicationNo, Mark, and Class columns.
func LoadFilings(r io.Reader) ([]*filing.Record, []portfolio.RecordError, error) {
	cr := newReader(r)
	h, err := readHeader(cr, filingRequired)
	if err != nil {
		return nil, nil, err
	}

	var (
		records []*filing.Record
		skipped []portfolio.RecordError
	)
	for pos := 0; ; pos++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped = append(skipped, portfolio.RecordError{
				Position: pos,
				Err:      errors.Wrap(err, errors.ErrCodeMalformedRecord, "unparseable csv row"),
			})
			continue
		}

		rec, err := filingRow(h, row)
		if err != nil {
			skipped = append(skipped, portfolio.RecordError{
				Position: pos,
				Mark:     h.get(row, colMark),
				Err:      err,
			})
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func filingRow(h header, row []string) (*filing.Record, error) {
	filingDate, err := parseDate(h.get(row, colFilingDate))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMalformedRecord, "invalid filing date")
	}

	return filing.NewRecord(
		h.get(row, colApplicationNo),
		h.get(row, colApplicant),
		h.get(row, colMark),
		splitList(h.get(row, colClass)),
		filingDate,
	)
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	// Rows may legitimately be shorter than the header when trailing
	// optional cells are omitted.
	cr.FieldsPerRecord = -1
	return cr
}
