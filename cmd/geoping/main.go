// Command geoping estimates where the host sits on the global network by
// pinging reference endpoints with known locations.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"geoping/internal/classify"
	"geoping/internal/config"
	"geoping/internal/database"
	"geoping/internal/logging"
	"geoping/internal/models"
	"geoping/internal/monitor"
	"geoping/internal/ping"
	"geoping/internal/report"
)

// app carries the state shared by all subcommands
type app struct {
	v          *viper.Viper
	configPath string
	verbose    bool
	noColor    bool
	progress   bool

	cfg config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:               "geoping",
		Short:             "Estimate your network location from ping latency to known endpoints",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.analyze,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Configuration file (YAML, TOML or JSON)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable coloured output")
	if err := config.BindFlags(flags, a.v); err != nil {
		log.WithError(err).Fatal("failed to bind flags")
	}
	cmd.Flags().BoolVar(&a.progress, "progress", false, "Show a progress bar while probing")

	cmd.AddCommand(newTargetsCmd(a), newHistoryCmd(a), newServeCmd(a))
	return cmd
}

// setup installs logging and loads the configuration
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.noColor {
		color.NoColor = true
	}
	logging.Setup(os.Stderr, a.verbose)

	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *app) reportOptions() report.Options {
	return report.Options{
		Language: report.Language(a.cfg.Language),
		Color:    !color.NoColor,
	}
}

// newAnalyzer builds the orchestrator over the configured probe command
func (a *app) newAnalyzer() (*monitor.Monitor, error) {
	runner, err := ping.New(a.cfg)
	if err != nil {
		return nil, err
	}
	return monitor.New(a.cfg, runner), nil
}

// analyze runs one pass, prints the report and optionally records it
func (a *app) analyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon, err := a.newAnalyzer()
	if err != nil {
		return err
	}

	if a.progress {
		bar := progressbar.NewOptions(
			len(a.cfg.Targets),
			progressbar.OptionSetDescription("probing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetWriter(os.Stderr),
		)
		mon.OnResult(func(models.Outcome) { bar.Add(1) })
	}

	run, err := mon.Run(ctx)
	if err != nil {
		return err
	}

	verdict := classify.Classify(run.Results)
	opts := a.reportOptions()
	if err := report.WriteText(cmd.OutOrStdout(), run, verdict, opts); err != nil {
		return err
	}

	if a.cfg.DatabasePath != "" {
		if err := a.record(run, verdict); err != nil {
			log.WithError(err).Error("failed to record run")
		}
	}

	if a.cfg.ReportDir != "" {
		if _, err := report.NewGenerator(a.cfg.ReportDir, opts).GenerateReport(run, verdict); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) record(run *models.Run, verdict models.Verdict) error {
	db, err := database.Open(a.cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveRun(run, verdict); err != nil {
		return err
	}
	log.WithFields(log.Fields{"run": run.ID, "db": a.cfg.DatabasePath}).Info("run recorded")
	return nil
}

// historyPath is the database read by the history and serve commands
func (a *app) historyPath() string {
	if a.cfg.DatabasePath != "" {
		return a.cfg.DatabasePath
	}
	return config.DefaultDatabasePath
}
