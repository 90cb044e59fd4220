package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"geoping/internal/database"
	"geoping/internal/models"
)

func newTargetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the reference targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tADDRESS\tLOCATION")
			for _, t := range a.cfg.Targets {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.Ordinal, t.Name, t.Address, t.Location)
			}
			return tw.Flush()
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit int
		days  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs and per-target statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Open(a.historyPath())
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.RecentRuns(limit)
			if err != nil {
				return err
			}
			stats, err := db.GetTargetStats(days)
			if err != nil {
				return err
			}
			return writeHistory(cmd.OutOrStdout(), runs, stats, days)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to list")
	cmd.Flags().IntVar(&days, "days", 7, "Days of history aggregated into target statistics")
	return cmd
}

func writeHistory(w io.Writer, runs []models.RunSummary, stats []models.TargetStats, days int) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tRUN\tTIER\tCLOSEST\tRTT")
	for _, r := range runs {
		closest, rtt := "-", "-"
		if r.ClosestTarget != "" {
			closest = fmt.Sprintf("%s (%s)", r.ClosestTarget, r.ClosestLocation)
			rtt = fmt.Sprintf("%.2f ms", r.ClosestRTT)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", humanize.Time(r.StartedAt), shortID(r.ID), r.Tier, closest, rtt)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTargets over the last %d days:\n", days)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tRESPONDED\tAVG RTT\tMIN RTT\tAVG LOSS")
	for _, s := range stats {
		avgRTT, minRTT := "-", "-"
		if s.ReachableRuns > 0 {
			avgRTT = fmt.Sprintf("%.2f ms", s.AvgRTT)
			minRTT = fmt.Sprintf("%.2f ms", s.MinRTT)
		}
		fmt.Fprintf(tw, "%s\t%s/%s\t%s\t%s\t%.1f%%\n", s.Target,
			humanize.Comma(int64(s.ReachableRuns)), humanize.Comma(int64(s.Runs)), avgRTT, minRTT, s.AvgLossPercent)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
