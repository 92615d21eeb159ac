// Package database models for the ETL pipeline schema.
package database

import (
	"database/sql"
	"time"
)

// =============================================================================
// RUN BOOKKEEPING MODELS
// =============================================================================

// EtlRun records one pipeline run and the datasets it covered.
type EtlRun struct {
	ID         string         `json:"id"`
	Datasets   []string       `json:"datasets"`
	Status     string         `json:"status"`
	Error      sql.NullString `json:"error"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt sql.NullTime   `json:"finishedAt"`
}

// RunPartition records the outcome of loading one dataset partition within
// a run.
type RunPartition struct {
	RunID        string         `json:"runId"`
	Dataset      string         `json:"dataset"`
	PartitionKey string         `json:"partitionKey"`
	RowsLoaded   int64          `json:"rowsLoaded"`
	BytesRead    int64          `json:"bytesRead"`
	Artifact     sql.NullString `json:"artifact"`
}

// =============================================================================
// FERC FORM 1 MODELS
// =============================================================================

// ElectricOperatingRevenue is one row of the electric_operating_revenues_ferc1
// table. FercAccount and RowTypeXbrl are nullable metadata columns added by a
// later migration.
type ElectricOperatingRevenue struct {
	RecordID             string          `json:"recordId"`
	UtilityIDFerc1       int             `json:"utilityIdFerc1"`
	ReportYear           int             `json:"reportYear"`
	RevenueType          string          `json:"revenueType"`
	DollarValue          sql.NullFloat64 `json:"dollarValue"`
	SalesMwh             sql.NullFloat64 `json:"salesMwh"`
	AvgCustomersPerMonth sql.NullFloat64 `json:"avgCustomersPerMonth"`
	FercAccount          sql.NullString  `json:"fercAccount"`
	RowTypeXbrl          sql.NullString  `json:"rowTypeXbrl"`
}
