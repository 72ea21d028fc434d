package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

const portfolioCSV = `Trademark,Class,Owner,OwnerEmail,RegNo,RenewalDate,WatchKeywords
ACME Tools,7,Acme Holdings,legal@acme.example,TM-1001,2026-03-01,acme
Zenith Optics,9,Zenith GmbH,ip@zenith.example,TM-2002,2028-07-15,
`

const filingsCSV = `ApplicationNo,Mark,Class,Applicant,FilingDate
F-100,AcmeToolsInc,7,Shadow Corp,2026-03-15
F-200,Moonlight Bakery,30,Luna LLC,2026-03-16
`

func TestWatchCommand(t *testing.T) {
	dir := t.TempDir()
	pf := writeFile(t, dir, "portfolio.csv", portfolioCSV)
	ff := writeFile(t, dir, "filings.csv", filingsCSV)

	out, err := runCommand(t, "watch", "--portfolio", pf, "--filings", ff)
	require.NoError(t, err)

	assert.Contains(t, out, "MEDIUM")
	assert.Contains(t, out, "F-100")
	assert.Contains(t, out, "AcmeToolsInc")
	assert.Contains(t, out, "ACME Tools")
	assert.Contains(t, out, "2 filing(s) scanned against 2 portfolio record(s)")
}

func TestWatchCommandJSONOutput(t *testing.T) {
	dir := t.TempDir()
	pf := writeFile(t, dir, "portfolio.csv", portfolioCSV)
	ff := writeFile(t, dir, "filings.csv", filingsCSV)

	out, err := runCommand(t, "watch", "-o", "json", "--portfolio", pf, "--filings", ff)
	require.NoError(t, err)

	var report struct {
		Alerts []struct {
			MaxScore float64 `json:"max_score"`
			Tier     string  `json:"tier"`
		} `json:"alerts"`
		Stats struct {
			FilingsScanned int `json:"filings_scanned"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Alerts, 1)
	assert.InDelta(t, 0.8545, report.Alerts[0].MaxScore, 0.001)
	assert.Equal(t, "MEDIUM", report.Alerts[0].Tier)
	assert.Equal(t, 2, report.Stats.FilingsScanned)
}

func TestWatchCommandRequiresFlags(t *testing.T) {
	_, err := runCommand(t, "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "portfolio")
}

func TestWatchCommandBadFeedSchema(t *testing.T) {
	dir := t.TempDir()
	pf := writeFile(t, dir, "portfolio.csv", "Name,Class\nAcme,7\n")
	ff := writeFile(t, dir, "filings.csv", filingsCSV)

	_, err := runCommand(t, "watch", "--portfolio", pf, "--filings", ff)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Trademark")
}

func TestRenewalsCommand(t *testing.T) {
	dir := t.TempDir()
	pf := writeFile(t, dir, "portfolio.csv", portfolioCSV)

	out, err := runCommand(t, "renewals", "--portfolio", pf, "--as-of", "2026-02-12")
	require.NoError(t, err)

	// 2026-03-01 is 17 days out: urgent under the default 30-day window.
	assert.Contains(t, out, "urgent")
	assert.Contains(t, out, "17")
	assert.Contains(t, out, "ACME Tools")
	assert.NotContains(t, out, "Zenith Optics", "2028 renewal is outside the upcoming window")
}

func TestRenewalsCommandNotices(t *testing.T) {
	dir := t.TempDir()
	pf := writeFile(t, dir, "portfolio.csv", portfolioCSV)

	out, err := runCommand(t, "renewals", "--portfolio", pf, "--as-of", "2026-02-12", "--notices")
	require.NoError(t, err)
	assert.Contains(t, out, "Subject: Renewal reminder - ACME Tools")
}

func TestDraftCommand(t *testing.T) {
	dir := t.TempDir()
	terms := writeFile(t, dir, "terms.json", `{
		"licensor_name": "Acme Foods Pvt Ltd",
		"licensor_address": "Mumbai, India",
		"licensee_name": "SnackCo Ltd",
		"licensee_address": "New Delhi, India",
		"trademark": "BrandX",
		"class": "30",
		"territory": "India",
		"license_type": "non-exclusive",
		"effective_date": "2026-04-01",
		"term_years": 3,
		"royalty_percent": 5,
		"governing_law": "Laws of India",
		"arbitration_seat": "New Delhi"
	}`)

	out, err := runCommand(t, "draft", "--terms", terms)
	require.NoError(t, err)
	assert.Contains(t, out, "{{Trademark}}")
	assert.Contains(t, out, "BrandX")
	assert.Contains(t, out, "non-exclusive")
}

func TestDraftCommandInvalidTerms(t *testing.T) {
	dir := t.TempDir()
	terms := writeFile(t, dir, "terms.json", `{"licensor_name": "Acme"}`)

	_, err := runCommand(t, "draft", "--terms", terms)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "license"),
		"error should name the missing field: %v", err)
}
