// Package renewal scans portfolio expiry dates and produces due and overdue
// reminders.  It shares the portfolio records with the watch pipeline but is
// otherwise independent of matching.
package renewal

import (
	"sort"

	"github.com/harshitalegal/markwatch/internal/domain/portfolio"
	"github.com/harshitalegal/markwatch/pkg/errors"
	"github.com/harshitalegal/markwatch/pkg/types/common"
)

// Tier buckets a reminder by urgency.
type Tier string

const (
	// TierOverdue means the expiry date has already passed.
	TierOverdue Tier = "overdue"

	// TierUrgent means the mark expires within the urgent window.
	TierUrgent Tier = "urgent"

	// TierUpcoming means the mark expires within the upcoming window but
	// beyond the urgent one.
	TierUpcoming Tier = "upcoming"
)

// Windows holds the day-count cutoffs that define reminder tiers.
type Windows struct {
	// Urgent is the inclusive upper bound, in days from the reference date,
	// of the urgent tier.
	Urgent int `mapstructure:"urgent" json:"urgent"`

	// Upcoming is the inclusive upper bound of the upcoming tier.  Entries
	// expiring beyond it produce no reminder.
	Upcoming int `mapstructure:"upcoming" json:"upcoming"`
}

// DefaultWindows mirror the reminder lead times the legal team has been
// operating with: follow up within a month, plan within a quarter.
func DefaultWindows() Windows {
	return Windows{Urgent: 30, Upcoming: 90}
}

// Validate rejects non-positive or non-ascending windows.  A failed
// validation is a configuration error and must abort the run.
func (w Windows) Validate() error {
	if w.Urgent <= 0 {
		return errors.NewConfiguration("renewal windows: urgent must be positive, got %d", w.Urgent)
	}
	if w.Upcoming <= w.Urgent {
		return errors.NewConfiguration(
			"renewal windows: upcoming (%d) must be greater than urgent (%d)", w.Upcoming, w.Urgent)
	}
	return nil
}

// Reminder is one due or overdue renewal.  DaysUntil is signed: negative
// values mean the expiry date has passed.
type Reminder struct {
	RecordID       common.ID   `json:"record_id"`
	Mark           string      `json:"mark"`
	Classes        []string    `json:"classes"`
	RegistrationNo string      `json:"registration_no,omitempty"`
	Owner          string      `json:"owner"`
	OwnerEmail     string      `json:"owner_email,omitempty"`
	ExpiryDate     common.Date `json:"expiry_date"`
	DaysUntil      int         `json:"days_until"`
	Tier           Tier        `json:"tier"`
}

// Schedule scans the portfolio as of the given date and returns reminders for
// every active entry whose expiry falls inside the configured windows,
// ordered most urgent first (days ascending, record id as tiebreaker).
// Lapsed and pending entries, and entries without an expiry date, are
// skipped.  Invalid windows abort with a configuration error before any
// scanning.
func Schedule(records []*portfolio.TrademarkRecord, asOf common.Date, windows Windows) ([]Reminder, error) {
	if err := windows.Validate(); err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		return nil, errors.NewConfiguration("renewal schedule: as-of date is required")
	}

	var out []Reminder
	for _, r := range records {
		if r == nil || !r.IsActive() || r.ExpiryDate.IsZero() {
			continue
		}

		days := asOf.DaysUntil(r.ExpiryDate)
		tier, ok := classify(days, windows)
		if !ok {
			continue
		}

		out = append(out, Reminder{
			RecordID:       r.ID,
			Mark:           r.Mark,
			Classes:        r.Classes,
			RegistrationNo: r.RegistrationNo,
			Owner:          r.Owner,
			OwnerEmail:     r.OwnerEmail,
			ExpiryDate:     r.ExpiryDate,
			DaysUntil:      days,
			Tier:           tier,
		})
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].DaysUntil != out[b].DaysUntil {
			return out[a].DaysUntil < out[b].DaysUntil
		}
		return out[a].RecordID < out[b].RecordID
	})

	return out, nil
}

// classify maps a signed day count to a tier; ok is false beyond the
// upcoming window.
func classify(days int, w Windows) (Tier, bool) {
	switch {
	case days < 0:
		return TierOverdue, true
	case days <= w.Urgent:
		return TierUrgent, true
	case days <= w.Upcoming:
		return TierUpcoming, true
	default:
		return "", false
	}
}
