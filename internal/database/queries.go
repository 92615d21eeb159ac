// Package database queries for ETL run bookkeeping and FERC Form 1 loading.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// =============================================================================
// RUN BOOKKEEPING QUERIES
// =============================================================================

// StartRun inserts a new run record covering the given datasets and returns
// its generated ID.
func (c *Client) StartRun(ctx context.Context, datasets []string) (string, error) {
	runID := uuid.NewString()
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO etl_runs (id, datasets, status)
		VALUES ($1, $2, 'running')
	`, runID, pq.Array(datasets))
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	return runID, nil
}

// FinishRun marks a run as succeeded or failed.
func (c *Client) FinishRun(ctx context.Context, runID string, runErr error) error {
	status := "succeeded"
	var msg sql.NullString
	if runErr != nil {
		status = "failed"
		msg = sql.NullString{String: runErr.Error(), Valid: true}
	}
	_, err := c.db.ExecContext(ctx, `
		UPDATE etl_runs
		SET status = $2, error = $3, finished_at = NOW()
		WHERE id = $1
	`, runID, status, msg)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// GetRun retrieves one run record by ID.
func (c *Client) GetRun(ctx context.Context, runID string) (*EtlRun, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, datasets, status, error, started_at, finished_at
		FROM etl_runs
		WHERE id = $1
	`, runID)

	var r EtlRun
	err := row.Scan(&r.ID, pq.Array(&r.Datasets), &r.Status, &r.Error, &r.StartedAt, &r.FinishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// RecordPartition upserts the outcome of loading one dataset partition.
func (c *Client) RecordPartition(ctx context.Context, p *RunPartition) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO etl_run_partitions (run_id, dataset, partition_key, rows_loaded, bytes_read, artifact)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id, dataset, partition_key) DO UPDATE
		SET rows_loaded = EXCLUDED.rows_loaded,
		    bytes_read = EXCLUDED.bytes_read,
		    artifact = EXCLUDED.artifact
	`, p.RunID, p.Dataset, p.PartitionKey, p.RowsLoaded, p.BytesRead, p.Artifact)
	if err != nil {
		return fmt.Errorf("failed to record partition: %w", err)
	}
	return nil
}

// ListRunPartitions retrieves the partitions loaded by a run, ordered by
// dataset and partition key.
func (c *Client) ListRunPartitions(ctx context.Context, runID string) ([]RunPartition, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT run_id, dataset, partition_key, rows_loaded, bytes_read, artifact
		FROM etl_run_partitions
		WHERE run_id = $1
		ORDER BY dataset, partition_key
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list run partitions: %w", err)
	}
	defer rows.Close()

	var parts []RunPartition
	for rows.Next() {
		var p RunPartition
		if err := rows.Scan(&p.RunID, &p.Dataset, &p.PartitionKey, &p.RowsLoaded, &p.BytesRead, &p.Artifact); err != nil {
			return nil, fmt.Errorf("failed to scan run partition: %w", err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

// =============================================================================
// FERC FORM 1 LOAD QUERIES
// =============================================================================

// InsertElectricOperatingRevenues bulk-loads rows into
// electric_operating_revenues_ferc1 using COPY within a transaction.
func (c *Client) InsertElectricOperatingRevenues(ctx context.Context, recs []ElectricOperatingRevenue) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	var n int64
	err := c.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("electric_operating_revenues_ferc1",
			"record_id", "utility_id_ferc1", "report_year", "revenue_type",
			"dollar_value", "sales_mwh", "avg_customers_per_month"))
		if err != nil {
			return fmt.Errorf("failed to prepare copy: %w", err)
		}

		for _, r := range recs {
			if _, err := stmt.ExecContext(ctx, r.RecordID, r.UtilityIDFerc1, r.ReportYear,
				r.RevenueType, r.DollarValue, r.SalesMwh, r.AvgCustomersPerMonth); err != nil {
				stmt.Close()
				return fmt.Errorf("failed to buffer row %s: %w", r.RecordID, err)
			}
		}

		// Flush the copy buffer.
		if _, err := stmt.ExecContext(ctx); err != nil {
			stmt.Close()
			return fmt.Errorf("failed to flush copy: %w", err)
		}
		if err := stmt.Close(); err != nil {
			return fmt.Errorf("failed to close copy: %w", err)
		}
		n = int64(len(recs))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// TableColumns returns the column names of a table in the public schema,
// in ordinal order.
func (c *Client) TableColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}
