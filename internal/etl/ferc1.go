package etl

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/denimalpaca/pudl/internal/database"
	"github.com/denimalpaca/pudl/internal/datastore"
	"github.com/denimalpaca/pudl/internal/settings"
)

// revenuesTable is the FERC1 table with a mapped relational schema; its
// staged CSV is bulk-loaded into PostgreSQL when present.
const revenuesTable = "electric_operating_revenues_ferc1"

// runFerc1 processes the FERC Form 1 selection year by year: every
// requested table's staged CSV is inventoried, and the electric operating
// revenues table is additionally loaded into the database.
func (r *Runner) runFerc1(ctx context.Context, runID string, s *settings.Ferc1Settings) (*DatasetReport, error) {
	rep := &DatasetReport{Name: "ferc1"}
	for _, year := range s.Years {
		var yearBytes int64
		var yearRows int64

		for _, table := range s.Tables {
			name := fmt.Sprintf("year=%d/%s.csv", year, table)
			data, err := r.ds.GetArchive(ctx, "ferc1", name)
			if datastore.IsNotFound(err) {
				// Not every table is reported every year.
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("ferc1 %s %d: %w", table, year, err)
			}
			yearBytes += int64(len(data))
		}

		name := fmt.Sprintf("year=%d/%s.csv", year, revenuesTable)
		data, err := r.ds.GetArchive(ctx, "ferc1", name)
		if err != nil && !datastore.IsNotFound(err) {
			return nil, fmt.Errorf("ferc1 %s %d: %w", revenuesTable, year, err)
		}
		if err == nil {
			recs, err := parseRevenuesCSV(data, year)
			if err != nil {
				return nil, fmt.Errorf("ferc1 %s %d: %w", revenuesTable, year, err)
			}
			n, err := r.store.InsertElectricOperatingRevenues(ctx, recs)
			if err != nil {
				return nil, fmt.Errorf("ferc1 %s %d: %w", revenuesTable, year, err)
			}
			yearBytes += int64(len(data))
			yearRows += n
		}

		if err := r.store.RecordPartition(ctx, &database.RunPartition{
			RunID:        runID,
			Dataset:      "ferc1",
			PartitionKey: fmt.Sprintf("year=%d", year),
			RowsLoaded:   yearRows,
			BytesRead:    yearBytes,
		}); err != nil {
			return nil, err
		}
		rep.Partitions++
		rep.RowsLoaded += yearRows
		rep.BytesRead += yearBytes
	}
	return rep, nil
}

// parseRevenuesCSV decodes a staged electric operating revenues CSV. The
// header row names the columns; missing numeric values stay NULL.
func parseRevenuesCSV(data []byte, year int) ([]database.ElectricOperatingRevenue, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"record_id", "utility_id_ferc1", "revenue_type"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	var recs []database.ElectricOperatingRevenue
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		utilityID, err := strconv.Atoi(row[col["utility_id_ferc1"]])
		if err != nil {
			return nil, fmt.Errorf("bad utility_id_ferc1 %q: %w", row[col["utility_id_ferc1"]], err)
		}

		rec := database.ElectricOperatingRevenue{
			RecordID:       row[col["record_id"]],
			UtilityIDFerc1: utilityID,
			ReportYear:     year,
			RevenueType:    row[col["revenue_type"]],
		}
		if rec.DollarValue, err = nullFloat(row, col, "dollar_value"); err != nil {
			return nil, err
		}
		if rec.SalesMwh, err = nullFloat(row, col, "sales_mwh"); err != nil {
			return nil, err
		}
		if rec.AvgCustomersPerMonth, err = nullFloat(row, col, "avg_customers_per_month"); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// nullFloat parses an optional numeric column. An absent column or empty
// cell loads as NULL; a malformed value is an error, not a silent NULL.
func nullFloat(row []string, col map[string]int, name string) (sql.NullFloat64, error) {
	i, ok := col[name]
	if !ok || row[i] == "" {
		return sql.NullFloat64{}, nil
	}
	f, err := strconv.ParseFloat(row[i], 64)
	if err != nil {
		return sql.NullFloat64{}, fmt.Errorf("bad %s %q: %w", name, row[i], err)
	}
	return sql.NullFloat64{Float64: f, Valid: true}, nil
}
