package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"geoping/internal/models"
)

// ErrRunNotFound is returned by GetRun for an unknown run ID
var ErrRunNotFound = errors.New("run not found")

// SaveRun records a completed run and its outcomes in one transaction
func (db *DB) SaveRun(run *models.Run, verdict models.Verdict) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		closestTarget, closestLocation sql.NullString
		closestRTT, closestLoss        sql.NullFloat64
	)
	if verdict.Determined() {
		closestTarget = sql.NullString{String: verdict.Closest.Target.Name, Valid: true}
		closestLocation = sql.NullString{String: verdict.Closest.Target.Location, Valid: true}
		closestRTT = sql.NullFloat64{Float64: verdict.Closest.AvgRTT, Valid: true}
		closestLoss = sql.NullFloat64{Float64: verdict.Closest.LossPercent, Valid: true}
	}

	_, err = tx.Exec(`
        INSERT INTO runs (id, started_at, duration_ms, probe_count, tier,
            closest_target, closest_location, closest_rtt_ms, closest_loss_percent)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		run.ID,
		run.StartedAt.UTC().UnixMilli(),
		run.Duration.Milliseconds(),
		run.ProbeCount,
		string(verdict.Tier),
		closestTarget,
		closestLocation,
		closestRTT,
		closestLoss,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.Prepare(`
        INSERT INTO probe_outcomes (run_id, ordinal, target, address, location, status,
            avg_rtt_ms, loss_percent, probes_sent, probes_lost, detail)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("prepare outcome insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range run.Results {
		var avg sql.NullFloat64
		if o.Reachable() {
			avg = sql.NullFloat64{Float64: o.AvgRTT, Valid: true}
		}
		_, err := stmt.Exec(
			run.ID,
			o.Target.Ordinal,
			o.Target.Name,
			o.Target.Address,
			o.Target.Location,
			string(o.Status),
			avg,
			o.LossPercent,
			o.Sent,
			o.Lost,
			o.Detail,
		)
		if err != nil {
			return fmt.Errorf("insert outcome for %s: %w", o.Target.Name, err)
		}
	}

	return tx.Commit()
}

// RecentRuns retrieves the most recent runs, newest first
func (db *DB) RecentRuns(limit int) ([]models.RunSummary, error) {
	query := `
        SELECT id, started_at, duration_ms, probe_count, tier,
            closest_target, closest_location, closest_rtt_ms, closest_loss_percent
        FROM runs
        ORDER BY started_at DESC
        LIMIT ?
    `

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.RunSummary
	for rows.Next() {
		var (
			s                              models.RunSummary
			startedAt, durationMS          int64
			tier                           string
			closestTarget, closestLocation sql.NullString
			closestRTT, closestLoss        sql.NullFloat64
		)
		err := rows.Scan(&s.ID, &startedAt, &durationMS, &s.ProbeCount, &tier,
			&closestTarget, &closestLocation, &closestRTT, &closestLoss)
		if err != nil {
			return nil, err
		}
		s.StartedAt = time.UnixMilli(startedAt).UTC()
		s.Duration = time.Duration(durationMS) * time.Millisecond
		s.Tier = models.Tier(tier)
		s.ClosestTarget = closestTarget.String
		s.ClosestLocation = closestLocation.String
		s.ClosestRTT = closestRTT.Float64
		s.ClosestLoss = closestLoss.Float64
		runs = append(runs, s)
	}

	return runs, rows.Err()
}

// GetRun loads a recorded run with its outcomes in catalog order
func (db *DB) GetRun(id string) (*models.Run, error) {
	run := &models.Run{ID: id}
	var startedAt, durationMS int64
	err := db.QueryRow(`SELECT started_at, duration_ms, probe_count FROM runs WHERE id = ?`, id).
		Scan(&startedAt, &durationMS, &run.ProbeCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	run.StartedAt = time.UnixMilli(startedAt).UTC()
	run.Duration = time.Duration(durationMS) * time.Millisecond

	rows, err := db.Query(`
        SELECT ordinal, target, address, location, status,
            avg_rtt_ms, loss_percent, probes_sent, probes_lost, detail
        FROM probe_outcomes
        WHERE run_id = ?
        ORDER BY ordinal
    `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			o      models.Outcome
			status string
			avg    sql.NullFloat64
			detail sql.NullString
		)
		err := rows.Scan(&o.Target.Ordinal, &o.Target.Name, &o.Target.Address, &o.Target.Location,
			&status, &avg, &o.LossPercent, &o.Sent, &o.Lost, &detail)
		if err != nil {
			return nil, err
		}
		o.Status = models.Status(status)
		o.AvgRTT = models.Unreachable
		if avg.Valid {
			o.AvgRTT = avg.Float64
		}
		o.Detail = detail.String
		run.Results = append(run.Results, o)
	}

	return run, rows.Err()
}

// GetTargetStats aggregates per-target history over the last days
func (db *DB) GetTargetStats(days int) ([]models.TargetStats, error) {
	query := `
        SELECT
            o.target,
            COUNT(*) as runs,
            SUM(CASE WHEN o.avg_rtt_ms IS NOT NULL THEN 1 ELSE 0 END) as reachable_runs,
            AVG(o.avg_rtt_ms) as avg_rtt,
            MIN(o.avg_rtt_ms) as min_rtt,
            AVG(o.loss_percent) as avg_loss
        FROM probe_outcomes o
        JOIN runs r ON r.id = o.run_id
        WHERE r.started_at >= ?
        GROUP BY o.target
        ORDER BY MIN(o.ordinal), o.target
    `

	cutoff := time.Now().AddDate(0, 0, -days).UTC().UnixMilli()
	rows, err := db.Query(query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.TargetStats
	for rows.Next() {
		var s models.TargetStats
		var avgRTT, minRTT sql.NullFloat64
		err := rows.Scan(&s.Target, &s.Runs, &s.ReachableRuns, &avgRTT, &minRTT, &s.AvgLossPercent)
		if err != nil {
			return nil, err
		}
		if avgRTT.Valid {
			s.AvgRTT = avgRTT.Float64
		}
		if minRTT.Valid {
			s.MinRTT = minRTT.Float64
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
