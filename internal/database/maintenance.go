package database

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
)

// Prune deletes runs older than keepDays together with their outcomes
func (db *DB) Prune(keepDays int) error {
	cutoff := time.Now().AddDate(0, 0, -keepDays).UTC().UnixMilli()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleteOutcomes := `
        DELETE FROM probe_outcomes
        WHERE run_id IN (SELECT id FROM runs WHERE started_at < ?)
    `
	if _, err := tx.Exec(deleteOutcomes, cutoff); err != nil {
		return err
	}

	res, err := tx.Exec(`DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		log.WithField("runs", n).Info("pruned old runs")
	}

	// Vacuum to reclaim space (run occasionally)
	if time.Now().Day() == 1 { // Run on first day of month
		_, err := db.Exec("VACUUM")
		return err
	}

	return nil
}

// Maintain prunes the history immediately and then on every interval
// until ctx is cancelled
func (db *DB) Maintain(ctx context.Context, interval time.Duration, keepDays int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	db.performMaintenance(keepDays)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			db.performMaintenance(keepDays)
		}
	}
}

func (db *DB) performMaintenance(keepDays int) {
	log.Debug("running history maintenance")
	if err := db.Prune(keepDays); err != nil {
		log.WithError(err).Error("failed to prune history")
	}
}
