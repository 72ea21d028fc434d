package filing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshitalegal/markwatch/pkg/errors"
	"github.com/harshitalegal/markwatch/pkg/types/common"
)

func TestNewRecord_Success(t *testing.T) {
	r, err := NewRecord(" APP-2024-001 ", " SnackCo Ltd ", " ACME TOOLS INC ",
		[]string{"007", "007", " 030 "}, common.NewDate(2024, 6, 1))
	require.NoError(t, err)

	assert.Equal(t, "APP-2024-001", r.SourceID)
	assert.Equal(t, "SnackCo Ltd", r.Applicant)
	assert.Equal(t, "ACME TOOLS INC", r.Mark)
	assert.Equal(t, "acme tools inc", r.NormalizedMark)
	assert.Equal(t, []string{"007", "030"}, r.Classes)
	assert.Equal(t, "2024-06-01", r.FilingDate.String())
}

func TestNewRecord_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		sourceID string
		mark     string
		classes  []string
	}{
		{"missing source id", "", "Acme", []string{"007"}},
		{"missing mark", "APP-1", "  ", []string{"007"}},
		{"missing classes", "APP-1", "Acme", []string{" "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecord(tt.sourceID, "Filer", tt.mark, tt.classes, common.Date{})
			require.Error(t, err)
			assert.True(t, errors.IsMalformedRecord(err))
		})
	}
}
