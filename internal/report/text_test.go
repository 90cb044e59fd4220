package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"geoping/internal/models"
)

func sampleRun() *models.Run {
	eu := models.Target{Ordinal: 0, Name: "Cloudflare_EU", Address: "1.1.1.1", Location: "Frankfurt (Europe)",
		Labels: map[string]string{"ru": "Франкфурт (Европа)"}}
	us := models.Target{Ordinal: 1, Name: "Google_US_E", Address: "8.8.8.8", Location: "Virginia (North America)"}
	za := models.Target{Ordinal: 2, Name: "OpenDNS_ZA", Address: "196.43.46.190", Location: "Johannesburg (Africa)"}

	return &models.Run{
		ID:         "run-1",
		StartedAt:  time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
		Duration:   1500 * time.Millisecond,
		ProbeCount: 3,
		Results: models.ResultsTable{
			{Target: eu, AvgRTT: 12.5, LossPercent: 0, Sent: 3, Lost: 0, Status: models.StatusOK},
			{Target: us, AvgRTT: 95.25, LossPercent: 33, Sent: 3, Lost: 1, Status: models.StatusOK},
			models.UnreachableOutcome(za, 3, models.StatusTimeout, "probe command timed out"),
		},
	}
}

func determined(run *models.Run, tier models.Tier) models.Verdict {
	closest := run.Results[0]
	return models.Verdict{Tier: tier, Closest: &closest}
}

func TestWriteTextDetermined(t *testing.T) {
	run := sampleRun()

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, run, determined(run, models.TierSameRegion), Options{Language: language.English}))
	out := buf.String()

	assert.Contains(t, out, "Checking 3 global targets. Sending 3 packets to each target.")
	assert.Contains(t, out, "[✅ OK] Cloudflare_EU  : 12.50 ms     | Loss: 0.0% (0/3) | Location: Frankfurt (Europe)")
	assert.Contains(t, out, "Loss: 33.0% (1/3)")
	assert.Contains(t, out, "[❌ FAIL] OpenDNS_ZA     : TIMEOUT      | Loss: 100.0% (3/3)")
	assert.Contains(t, out, "Analysis completed in 1.50 seconds.")
	assert.Contains(t, out, "Responded: 2 of 3 targets.")
	assert.Contains(t, out, "-> TARGET: Cloudflare_EU (1.1.1.1)")
	assert.Contains(t, out, "-> AVERAGE PING: 12.50 ms")
	assert.Contains(t, out, "same region (or on the same continent) as Frankfurt (Europe)")
	assert.NotContains(t, out, "\x1b[", "colour codes must be disabled")
}

func TestWriteTextUndetermined(t *testing.T) {
	run := sampleRun()
	for i := range run.Results {
		run.Results[i] = models.UnreachableOutcome(run.Results[i].Target, 3, models.StatusNoReply, "no reply")
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, run, models.Verdict{Tier: models.TierUndetermined}, Options{Language: language.English}))
	out := buf.String()

	assert.Contains(t, out, "Unable to determine geographic location.")
	assert.NotContains(t, out, "CLOSEST")
	assert.NotContains(t, out, "Responded:")
	assert.Equal(t, 3, strings.Count(out, "FAIL"))
}

func TestWriteTextRussian(t *testing.T) {
	run := sampleRun()

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, run, determined(run, models.TierSameContinent), Options{Language: Language("ru")}))
	out := buf.String()

	assert.Contains(t, out, "Запуск гео-анализатора PING")
	assert.Contains(t, out, "Локация: Франкфурт (Европа)")
	assert.Contains(t, out, "ЗАКЛЮЧЕНИЕ")
	assert.Contains(t, out, "на том же континенте, что и Франкфурт (Европа)")
	assert.Contains(t, out, "Локация: Virginia (North America)", "targets without a Russian label keep the default")
}

func TestConclusionPerTier(t *testing.T) {
	run := sampleRun()
	opts := Options{Language: language.English}

	tests := map[models.Tier]string{
		models.TierSameRegion:     "same region",
		models.TierSameContinent:  "same continent",
		models.TierCrossContinent: "different continent",
		models.TierBestGuess:      "lowest latency (12.50 ms)",
	}
	for tier, want := range tests {
		var buf bytes.Buffer
		require.NoError(t, WriteText(&buf, run, determined(run, tier), opts))
		assert.Contains(t, buf.String(), want, "tier %s", tier)
	}
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, language.Russian, Language("ru"))
	assert.Equal(t, language.Russian, Language("ru-RU"))
	assert.Equal(t, language.English, Language("en"))
	assert.Equal(t, language.English, Language("de"))
	assert.Equal(t, language.English, Language(""))
}

func TestSummarize(t *testing.T) {
	s, err := summarize(sampleRun().Results)
	require.NoError(t, err)
	assert.Equal(t, 2, s.responded)
	assert.InDelta(t, 53.875, s.median, 1e-9)
	assert.InDelta(t, 53.875, s.mean, 1e-9)
	assert.InDelta(t, 41.375, s.stddev, 1e-9)

	_, err = summarize(models.ResultsTable{models.UnreachableOutcome(models.Target{}, 3, models.StatusTimeout, "")})
	assert.Error(t, err)
}

func TestGenerateReport(t *testing.T) {
	run := sampleRun()
	verdict := determined(run, models.TierSameRegion)

	dir, err := NewGenerator(t.TempDir(), Options{Language: language.English, Color: true}).GenerateReport(run, verdict)
	require.NoError(t, err)
	assert.Equal(t, "geoping_report_2026-10-17_12-00-00_Cloudflare_EU", filepath.Base(dir))

	summary, err := os.ReadFile(filepath.Join(dir, "summary.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "CONCLUSION")
	assert.NotContains(t, string(summary), "\x1b[")

	png, err := os.ReadFile(filepath.Join(dir, "latency.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "latency chart is not a PNG")

	raw, err := os.ReadFile(filepath.Join(dir, "results.json"))
	require.NoError(t, err)
	var decoded struct {
		Run     models.Run     `json:"run"`
		Verdict models.Verdict `json:"verdict"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Run.Results, 3)
	assert.False(t, decoded.Run.Results[2].Reachable())
	assert.Equal(t, models.TierSameRegion, decoded.Verdict.Tier)
}

func TestGenerateReportWithoutResponders(t *testing.T) {
	run := sampleRun()
	run.Results = models.ResultsTable{run.Results[2]}

	dir, err := NewGenerator(t.TempDir(), Options{Language: language.English}).GenerateReport(run, models.Verdict{Tier: models.TierUndetermined})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "summary.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "latency.png"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b_c_d_e_f", sanitizeFilename("a.b:c/d\\e f"))
}
