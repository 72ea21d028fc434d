// Package licensing validates trademark license terms and produces the
// placeholder values consumed by the external document generator.  Rendering
// the agreement itself (DOCX, PDF) is deliberately outside this module.
package licensing

import (
	"strconv"
	"strings"

	"github.com/harshitalegal/markwatch/pkg/errors"
	"github.com/harshitalegal/markwatch/pkg/types/common"
)

// LicenseType is the grant exclusivity of a trademark license.
type LicenseType string

const (
	Exclusive    LicenseType = "exclusive"
	NonExclusive LicenseType = "non-exclusive"
	Sole         LicenseType = "sole"
)

// ParseLicenseType normalizes a raw license-type string.
func ParseLicenseType(s string) (LicenseType, error) {
	switch LicenseType(strings.ToLower(strings.TrimSpace(s))) {
	case Exclusive:
		return Exclusive, nil
	case NonExclusive:
		return NonExclusive, nil
	case Sole:
		return Sole, nil
	default:
		return "", errors.Newf(errors.ErrCodeLicenseTermsInvalid,
			"unknown license type %q: expected exclusive, non-exclusive, or sole", s)
	}
}

// Terms are the negotiated commercial terms of one trademark license
// agreement.  Field names match the placeholders in the agreement template.
type Terms struct {
	LicensorName    string      `json:"licensor_name" mapstructure:"licensor_name"`
	LicensorAddress string      `json:"licensor_address" mapstructure:"licensor_address"`
	LicenseeName    string      `json:"licensee_name" mapstructure:"licensee_name"`
	LicenseeAddress string      `json:"licensee_address" mapstructure:"licensee_address"`
	Trademark       string      `json:"trademark" mapstructure:"trademark"`
	Class           string      `json:"class" mapstructure:"class"`
	Territory       string      `json:"territory" mapstructure:"territory"`
	LicenseType     LicenseType `json:"license_type" mapstructure:"license_type"`
	EffectiveDate   common.Date `json:"effective_date" mapstructure:"effective_date"`
	TermYears       int         `json:"term_years" mapstructure:"term_years"`
	RoyaltyPercent  float64     `json:"royalty_percent" mapstructure:"royalty_percent"`
	GoverningLaw    string      `json:"governing_law" mapstructure:"governing_law"`
	ArbitrationSeat string      `json:"arbitration_seat" mapstructure:"arbitration_seat"`
}

// Validate checks that the terms are complete enough to draft from.  Every
// failure is reported with the offending field named, since the values come
// from a human-filled intake form.
func (t *Terms) Validate() error {
	required := []struct {
		field, value string
	}{
		{"licensor_name", t.LicensorName},
		{"licensee_name", t.LicenseeName},
		{"trademark", t.Trademark},
		{"class", t.Class},
		{"territory", t.Territory},
		{"governing_law", t.GoverningLaw},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Newf(errors.ErrCodeLicenseTermsInvalid, "%s is required", r.field)
		}
	}

	if _, err := ParseLicenseType(string(t.LicenseType)); err != nil {
		return err
	}
	if t.EffectiveDate.IsZero() {
		return errors.New(errors.ErrCodeLicenseTermsInvalid, "effective_date is required")
	}
	if t.TermYears < 1 {
		return errors.Newf(errors.ErrCodeLicenseTermsInvalid,
			"term_years must be at least 1, got %d", t.TermYears)
	}
	if t.RoyaltyPercent < 0 || t.RoyaltyPercent > 100 {
		return errors.Newf(errors.ErrCodeLicenseTermsInvalid,
			"royalty_percent %.2f outside [0,100]", t.RoyaltyPercent)
	}
	return nil
}

// TemplateFields returns the placeholder-to-value map for the agreement
// template.  Keys match the {{Placeholder}} names in the template document.
func (t *Terms) TemplateFields() map[string]string {
	royalty := strconv.FormatFloat(t.RoyaltyPercent, 'f', -1, 64)
	return map[string]string{
		"LicensorName":    t.LicensorName,
		"LicensorAddress": t.LicensorAddress,
		"LicenseeName":    t.LicenseeName,
		"LicenseeAddress": t.LicenseeAddress,
		"Trademark":       t.Trademark,
		"Class":           t.Class,
		"Territory":       t.Territory,
		"LicenseType":     string(t.LicenseType),
		"EffectiveDate":   t.EffectiveDate.String(),
		"TermYears":       strconv.Itoa(t.TermYears),
		"RoyaltyPercent":  royalty,
		"GoverningLaw":    t.GoverningLaw,
		"ArbitrationSeat": t.ArbitrationSeat,
	}
}
