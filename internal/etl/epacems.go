package etl

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/denimalpaca/pudl/internal/database"
	"github.com/denimalpaca/pudl/internal/settings"
)

// hourlyEmission is one hour of CEMS data for one unit.
type hourlyEmission struct {
	PlantIDEia           int64
	UnitID               string
	OperatingDatetimeUTC string
	OperatingTimeHours   float64
	GrossLoadMw          float64
	So2MassLbs           float64
	NoxMassLbs           float64
	Co2MassTons          float64
}

// runEpaCems converts each selected (year, state) partition's staged hourly
// CSV into a Parquet artifact in the datastore's outputs prefix.
func (r *Runner) runEpaCems(ctx context.Context, runID string, s *settings.EpaCemsSettings) (*DatasetReport, error) {
	rep := &DatasetReport{Name: "epacems"}
	for _, year := range s.Years {
		for _, state := range s.States {
			name := fmt.Sprintf("year=%d/state=%s/epacems-%d-%s.csv", year, state, year, state)
			data, err := r.ds.GetArchive(ctx, "epacems", name)
			if err != nil {
				return nil, fmt.Errorf("epacems %d %s: %w", year, state, err)
			}

			emissions, err := parseEmissionsCSV(data)
			if err != nil {
				return nil, fmt.Errorf("epacems %d %s: %w", year, state, err)
			}

			parquetBytes, err := writeEmissionsParquet(emissions)
			if err != nil {
				return nil, fmt.Errorf("epacems %d %s: %w", year, state, err)
			}

			outName := fmt.Sprintf("year=%d/state=%s/epacems-%d-%s.parquet", year, state, year, state)
			artifact, err := r.ds.PutOutput(ctx, "epacems", outName, parquetBytes)
			if err != nil {
				return nil, fmt.Errorf("epacems %d %s: %w", year, state, err)
			}

			if err := r.store.RecordPartition(ctx, &database.RunPartition{
				RunID:        runID,
				Dataset:      "epacems",
				PartitionKey: fmt.Sprintf("year=%d/state=%s", year, state),
				RowsLoaded:   int64(len(emissions)),
				BytesRead:    int64(len(data)),
				Artifact:     toNullString(artifact),
			}); err != nil {
				return nil, err
			}
			rep.Partitions++
			rep.RowsLoaded += int64(len(emissions))
			rep.BytesRead += int64(len(data))
			rep.Artifacts = append(rep.Artifacts, artifact)
		}
	}
	return rep, nil
}

// parseEmissionsCSV decodes a staged CEMS hourly CSV.
func parseEmissionsCSV(data []byte) ([]hourlyEmission, error) {
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
	for _, required := range []string{"plant_id_eia", "unit_id", "operating_datetime_utc"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	var emissions []hourlyEmission
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		plantID, err := strconv.ParseInt(row[col["plant_id_eia"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad plant_id_eia %q: %w", row[col["plant_id_eia"]], err)
		}

		em := hourlyEmission{
			PlantIDEia:           plantID,
			UnitID:               row[col["unit_id"]],
			OperatingDatetimeUTC: row[col["operating_datetime_utc"]],
		}
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"operating_time_hours", &em.OperatingTimeHours},
			{"gross_load_mw", &em.GrossLoadMw},
			{"so2_mass_lbs", &em.So2MassLbs},
			{"nox_mass_lbs", &em.NoxMassLbs},
			{"co2_mass_tons", &em.Co2MassTons},
		} {
			v, err := floatCol(row, col, f.name)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}
		emissions = append(emissions, em)
	}
	return emissions, nil
}

// floatCol parses an optional measure column. An absent column or empty
// cell reads as zero; a malformed value is an error, not a silent zero.
func floatCol(row []string, col map[string]int, name string) (float64, error) {
	i, ok := col[name]
	if !ok || row[i] == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(row[i], 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", name, row[i], err)
	}
	return f, nil
}
