package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"geoping/internal/database"
	"geoping/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	var keepDays int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the run history and on-demand analysis over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := database.Open(a.historyPath())
			if err != nil {
				return err
			}
			defer db.Close()

			mon, err := a.newAnalyzer()
			if err != nil {
				return err
			}

			if keepDays > 0 {
				go db.Maintain(ctx, time.Hour, keepDays)
			}

			log.WithField("url", fmt.Sprintf("http://localhost:%d", a.cfg.Port)).Info("web interface available")
			return web.New(db, mon, a.cfg.Targets, a.cfg.Port).Start(ctx)
		},
	}

	cmd.Flags().IntVar(&keepDays, "keep-days", 90, "Days of history kept by hourly maintenance (0 disables pruning)")
	return cmd
}
