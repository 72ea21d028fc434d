package tabular

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshitalegal/markwatch/pkg/errors"
	"github.com/harshitalegal/markwatch/pkg/types/common"
)

func TestLoadPortfolio(t *testing.T) {
	in := strings.Join([]string{
		"ID,Trademark,Class,Owner,OwnerEmail,RegNo,RegistrationDate,RenewalDate,Status,WatchKeywords",
		"a1,ACME Tools,7;8,Acme Holdings,legal@acme.example,TM-1001,2016-03-01,2026-03-01,active,acme;acme tool",
		"b2,Zenith Optics,9,Zenith GmbH,,TM-2002,2018-07-15,2028-07-15,,",
	}, "\n")

	records, skipped, err := LoadPortfolio(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, records, 2)

	acme := records[0]
	assert.Equal(t, common.ID("a1"), acme.ID)
	assert.Equal(t, "ACME Tools", acme.Mark)
	assert.Equal(t, "acme tools", acme.NormalizedMark)
	assert.Equal(t, []string{"7", "8"}, acme.Classes)
	assert.Equal(t, "Acme Holdings", acme.Owner)
	assert.Equal(t, "TM-1001", acme.RegistrationNo)
	assert.Equal(t, common.NewDate(2026, time.March, 1), acme.ExpiryDate)
	assert.Equal(t, []string{"acme", "acme tool"}, acme.WatchKeywords)

	zenith := records[1]
	assert.True(t, zenith.IsActive(), "blank status defaults to active")
	assert.Empty(t, zenith.WatchKeywords)
}

func TestLoadPortfolioSkipsBadRows(t *testing.T) {
	in := strings.Join([]string{
		"Trademark,Class,RenewalDate",
		"ACME Tools,7,2026-03-01",
		",7,2026-03-01",           // missing mark
		"Zenith Optics,,",         // missing classes
		"Nova Labs,5,not-a-date",  // unparseable date
		"Orbit Coffee,30,",        // valid, no renewal date
	}, "\n")

	records, skipped, err := LoadPortfolio(strings.NewReader(in))
	require.NoError(t, err, "bad rows must not fail the whole feed")
	require.Len(t, records, 2)
	assert.Equal(t, "ACME Tools", records[0].Mark)
	assert.Equal(t, "Orbit Coffee", records[1].Mark)

	require.Len(t, skipped, 3)
	positions := []int{skipped[0].Position, skipped[1].Position, skipped[2].Position}
	assert.Equal(t, []int{1, 2, 3}, positions)
	for _, re := range skipped {
		assert.True(t, errors.IsMalformedRecord(re.Err))
	}
}

func TestLoadPortfolioRejectsBadHeader(t *testing.T) {
	in := "Mark,Class\nACME Tools,7\n"

	_, _, err := LoadPortfolio(strings.NewReader(in))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFeedSchemaInvalid))
	assert.Contains(t, err.Error(), "Trademark")
}

func TestLoadFilings(t *testing.T) {
	in := strings.Join([]string{
		"ApplicationNo,Mark,Class,Applicant,FilingDate",
		"F-100,AcmeToolsInc,7,Shadow Corp,2026-03-15",
		"F-200,Moonlight Bakery,30,Luna LLC,2026-03-16",
	}, "\n")

	records, skipped, err := LoadFilings(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, records, 2)

	f := records[0]
	assert.Equal(t, "F-100", f.SourceID)
	assert.Equal(t, "acmetoolsinc", f.NormalizedMark)
	assert.Equal(t, []string{"7"}, f.Classes)
	assert.Equal(t, common.NewDate(2026, time.March, 15), f.FilingDate)
}

func TestLoadFilingsSkipsBadRows(t *testing.T) {
	in := strings.Join([]string{
		"ApplicationNo,Mark,Class",
		"F-100,Acme Tools,7",
		",No AppNo,7",
	}, "\n")

	records, skipped, err := LoadFilings(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].Position)
	assert.True(t, errors.IsMalformedRecord(skipped[0].Err))
}

func TestLoadFilingsRejectsBadHeader(t *testing.T) {
	_, _, err := LoadFilings(strings.NewReader("Mark,Class\nAcme,7\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFeedSchemaInvalid))
}

func TestLoadPortfolioShortRows(t *testing.T) {
	// Trailing optional cells omitted entirely.
	in := "Trademark,Class,Owner\nACME Tools,7\n"

	records, skipped, err := LoadPortfolio(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Owner)
}
