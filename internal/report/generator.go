package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"geoping/internal/models"
)

// Generator writes report directories with a text summary, the raw
// results and a latency chart
type Generator struct {
	outputDir string
	opts      Options
}

// NewGenerator creates a new report generator. Files never contain colour codes.
func NewGenerator(outputDir string, opts Options) *Generator {
	opts.Color = false
	return &Generator{outputDir: outputDir, opts: opts}
}

// GenerateReport writes a report for run into a fresh timestamped
// directory and returns its path
func (g *Generator) GenerateReport(run *models.Run, verdict models.Verdict) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("geoping_report_%s", run.StartedAt.Format("2006-01-02_15-04-05"))
	if verdict.Determined() {
		name += "_" + sanitizeFilename(verdict.Closest.Target.Name)
	}
	reportDir := filepath.Join(g.outputDir, name)
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := g.generateTextReport(filepath.Join(reportDir, "summary.txt"), run, verdict); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}

	if err := g.generateResultsFile(filepath.Join(reportDir, "results.json"), run, verdict); err != nil {
		log.WithError(err).Warn("failed to write results file")
	}

	if _, err := g.generateLatencyChart(filepath.Join(reportDir, "latency.png"), run, verdict); err != nil {
		log.WithError(err).Warn("failed to generate latency chart")
	}

	log.WithField("dir", reportDir).Info("report generated")
	return reportDir, nil
}

func (g *Generator) generateTextReport(filename string, run *models.Run, verdict models.Verdict) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteText(file, run, verdict, g.opts)
}

func (g *Generator) generateResultsFile(filename string, run *models.Run, verdict models.Verdict) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Run     *models.Run    `json:"run"`
		Verdict models.Verdict `json:"verdict"`
	}{run, verdict})
}
