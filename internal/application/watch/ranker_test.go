package watch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshitalegal/markwatch/internal/domain/filing"
	"github.com/harshitalegal/markwatch/pkg/types/common"
)

func TestTierFor(t *testing.T) {
	o := DefaultOptions()

	tests := []struct {
		score float64
		want  RiskTier
	}{
		{score: 1.0, want: RiskHigh},
		{score: 0.95, want: RiskHigh},
		{score: 0.9499, want: RiskMedium},
		{score: 0.85, want: RiskMedium},
		{score: 0.8499, want: RiskLow},
		{score: 0.80, want: RiskLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, o.tierFor(tt.score), "score %.4f", tt.score)
	}
}

func TestRankNoCandidates(t *testing.T) {
	f := testFiling(t, "F-1", "Zenith Optics", []string{"9"})
	assert.Nil(t, Rank(f, nil, DefaultOptions()))
	assert.Nil(t, Rank(nil, []MatchCandidate{{Score: 1.0}}, DefaultOptions()))
}

func TestRankRetainsAllMaxScoreTies(t *testing.T) {
	f := testFiling(t, "F-1", "Acme Tools", []string{"7"})
	a := testRecord(t, "a1", "Acme Tools", []string{"7"})
	b := testRecord(t, "b2", "Acme Tools", []string{"7"})
	c := testRecord(t, "c3", "Acme Tool", []string{"7"})

	candidates := []MatchCandidate{
		{Filing: f, Entry: b, Score: 1.0, Method: MethodMark},
		{Filing: f, Entry: c, Score: 0.958, Method: MethodMark},
		{Filing: f, Entry: a, Score: 1.0, Method: MethodMark},
	}

	alert := Rank(f, candidates, DefaultOptions())
	require.NotNil(t, alert)
	assert.Equal(t, 1.0, alert.MaxScore)
	assert.Equal(t, RiskHigh, alert.Tier)
	require.Len(t, alert.Evidence, 2, "every candidate tied at the max score is kept")
	assert.Equal(t, common.ID("a1"), alert.Evidence[0].Entry.ID)
	assert.Equal(t, common.ID("b2"), alert.Evidence[1].Entry.ID)
}

func TestRankRationaleMentionsEvidence(t *testing.T) {
	f := testFiling(t, "F-1", "AuroraDerm", []string{"3"})
	rec := testRecord(t, "a1", "Aurora Skincare", []string{"3"}, "AuroraDerm")

	alert := Rank(f, []MatchCandidate{{
		Filing: f, Entry: rec, Score: 1.0,
		Method: MethodKeyword, MatchedTerm: "auroraderm",
	}}, DefaultOptions())
	require.NotNil(t, alert)
	assert.Contains(t, alert.Rationale, `"Aurora Skincare"`)
	assert.Contains(t, alert.Rationale, `watch keyword "auroraderm"`)
	assert.Contains(t, alert.Rationale, "HIGH")
}

func TestSortAlertsTotalOrder(t *testing.T) {
	mk := func(sourceID string, date common.Date, score float64, tier RiskTier) *Alert {
		f, err := filing.NewRecord(sourceID, "Applicant", "Mark", []string{"7"}, date)
		require.NoError(t, err)
		return &Alert{Filing: f, MaxScore: score, Tier: tier}
	}

	jan := common.NewDate(2026, time.January, 10)
	feb := common.NewDate(2026, time.February, 10)

	alerts := []*Alert{
		mk("F-5", feb, 0.82, RiskLow),
		mk("F-4", jan, 0.90, RiskMedium),
		mk("F-3", feb, 0.96, RiskHigh),
		mk("F-2", jan, 0.96, RiskHigh),
		mk("F-1", jan, 0.96, RiskHigh),
		mk("F-6", jan, 0.99, RiskHigh),
	}

	SortAlerts(alerts)

	var ids []string
	for _, a := range alerts {
		ids = append(ids, a.Filing.SourceID)
	}
	// Tier first, then score descending, then filing date ascending, then id.
	assert.Equal(t, []string{"F-6", "F-1", "F-2", "F-3", "F-4", "F-5"}, ids)
}

func TestRiskTierString(t *testing.T) {
	assert.Equal(t, "HIGH", RiskHigh.String())
	assert.Equal(t, "MEDIUM", RiskMedium.String())
	assert.Equal(t, "LOW", RiskLow.String())
	assert.Equal(t, "UNKNOWN", RiskTier(0).String())
}
