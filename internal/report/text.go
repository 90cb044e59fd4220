package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/montanaflynn/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"geoping/internal/models"
)

const ruleWidth = 80

// Options controls how a report is rendered
type Options struct {
	Language language.Tag
	Color    bool
}

// WriteText renders the per-target table and the locality conclusion
func WriteText(w io.Writer, run *models.Run, verdict models.Verdict, opts Options) error {
	p := message.NewPrinter(opts.Language)
	lang := baseLanguage(opts.Language)
	rule := strings.Repeat("=", ruleWidth)

	okMark := color.New(color.FgGreen, color.Bold)
	failMark := color.New(color.FgRed, color.Bold)
	if !opts.Color {
		okMark.DisableColor()
		failMark.DisableColor()
	}

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		b.WriteString(p.Sprintf(format, args...))
		b.WriteString("\n")
	}

	line(msgBanner)
	line(msgChecking, len(run.Results), run.ProbeCount)
	b.WriteString(rule + "\n")

	for _, o := range run.Results {
		status := okMark.Sprint("✅ " + p.Sprintf(msgOK))
		latency := p.Sprintf(msgLatency, o.AvgRTT)
		if !o.Reachable() {
			status = failMark.Sprint("❌ " + p.Sprintf(msgFail))
			latency = p.Sprintf(msgTimeout)
		}
		fmt.Fprintf(&b, "[%s] %-15s: %-12s | %s | %s\n",
			status,
			o.Target.Name,
			latency,
			p.Sprintf(msgLoss, o.LossPercent, o.Lost, o.Sent),
			p.Sprintf(msgLocation, o.Target.LocationFor(lang)),
		)
	}

	b.WriteString(rule + "\n")
	line(msgDuration, run.Duration.Seconds())

	if s, err := summarize(run.Results); err == nil {
		line(msgSpread, s.responded, len(run.Results), s.median, s.mean, s.stddev)
	}

	if !verdict.Determined() {
		b.WriteString("\n")
		line(msgNoneResponded)
		_, err := io.WriteString(w, b.String())
		return err
	}

	closest := verdict.Closest
	location := closest.Target.LocationFor(lang)

	b.WriteString("\n" + rule + "\n\n")
	line(msgEstimate)
	b.WriteString(rule + "\n")
	line(msgClosestIntro)
	line(msgTarget, closest.Target.Name, closest.Target.Address)
	line(msgClosestLoc, location)
	line(msgAveragePing, closest.AvgRTT)
	line(msgClosestLoss, closest.LossPercent)
	b.WriteString("\n")
	line(msgConclusion)
	b.WriteString(Conclusion(p, verdict, location) + "\n")
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Conclusion phrases the verdict's tier for the closest location
func Conclusion(p *message.Printer, verdict models.Verdict, location string) string {
	switch verdict.Tier {
	case models.TierSameRegion:
		return p.Sprintf(msgSameRegion, location)
	case models.TierSameContinent:
		return p.Sprintf(msgSameContinent, location)
	case models.TierCrossContinent:
		return p.Sprintf(msgCrossDirect, location)
	case models.TierBestGuess:
		return p.Sprintf(msgBestGuess, verdict.Closest.AvgRTT)
	default:
		return p.Sprintf(msgNoneResponded)
	}
}

type latencySummary struct {
	responded int
	median    float64
	mean      float64
	stddev    float64
}

// summarize computes latency statistics over the responding targets
func summarize(results models.ResultsTable) (latencySummary, error) {
	var rtts stats.Float64Data
	for _, o := range results.Responded() {
		rtts = append(rtts, o.AvgRTT)
	}

	median, err := rtts.Median()
	if err != nil {
		return latencySummary{}, err
	}
	mean, err := rtts.Mean()
	if err != nil {
		return latencySummary{}, err
	}
	stddev, err := rtts.StandardDeviation()
	if err != nil {
		return latencySummary{}, err
	}

	return latencySummary{
		responded: len(rtts),
		median:    median,
		mean:      mean,
		stddev:    stddev,
	}, nil
}
