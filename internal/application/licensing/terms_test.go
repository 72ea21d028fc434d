package licensing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshitalegal/markwatch/pkg/errors"
	"github.com/harshitalegal/markwatch/pkg/types/common"
)

func validTerms() Terms {
	return Terms{
		LicensorName:    "Acme Foods Pvt Ltd",
		LicensorAddress: "Mumbai, India",
		LicenseeName:    "SnackCo Ltd",
		LicenseeAddress: "New Delhi, India",
		Trademark:       "BrandX",
		Class:           "30",
		Territory:       "India",
		LicenseType:     NonExclusive,
		EffectiveDate:   common.NewDate(2026, time.April, 1),
		TermYears:       3,
		RoyaltyPercent:  5,
		GoverningLaw:    "Laws of India",
		ArbitrationSeat: "New Delhi",
	}
}

func TestParseLicenseType(t *testing.T) {
	tests := []struct {
		in      string
		want    LicenseType
		wantErr bool
	}{
		{in: "exclusive", want: Exclusive},
		{in: "Non-Exclusive", want: NonExclusive},
		{in: " sole ", want: Sole},
		{in: "perpetual", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLicenseType(tt.in)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.in)
			assert.True(t, errors.IsCode(err, errors.ErrCodeLicenseTermsInvalid))
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestTermsValidate(t *testing.T) {
	t.Run("complete terms pass", func(t *testing.T) {
		terms := validTerms()
		assert.NoError(t, terms.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Terms)
	}{
		{name: "missing licensor", mutate: func(tr *Terms) { tr.LicensorName = " " }},
		{name: "missing trademark", mutate: func(tr *Terms) { tr.Trademark = "" }},
		{name: "missing territory", mutate: func(tr *Terms) { tr.Territory = "" }},
		{name: "bad license type", mutate: func(tr *Terms) { tr.LicenseType = "perpetual" }},
		{name: "zero effective date", mutate: func(tr *Terms) { tr.EffectiveDate = common.Date{} }},
		{name: "zero term", mutate: func(tr *Terms) { tr.TermYears = 0 }},
		{name: "royalty above 100", mutate: func(tr *Terms) { tr.RoyaltyPercent = 120 }},
		{name: "negative royalty", mutate: func(tr *Terms) { tr.RoyaltyPercent = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := validTerms()
			tt.mutate(&terms)
			err := terms.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeLicenseTermsInvalid))
		})
	}
}

func TestTemplateFields(t *testing.T) {
	terms := validTerms()
	fields := terms.TemplateFields()

	assert.Equal(t, "Acme Foods Pvt Ltd", fields["LicensorName"])
	assert.Equal(t, "BrandX", fields["Trademark"])
	assert.Equal(t, "non-exclusive", fields["LicenseType"])
	assert.Equal(t, "2026-04-01", fields["EffectiveDate"])
	assert.Equal(t, "3", fields["TermYears"])
	assert.Equal(t, "5", fields["RoyaltyPercent"])
	assert.Len(t, fields, 13, "one value per template placeholder")
}
