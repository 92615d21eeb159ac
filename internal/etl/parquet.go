package etl

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"

	writerfile "github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// emissionsParquetSchema describes the CEMS hourly output layout for the
// parquet JSON writer.
var emissionsParquetSchema = buildParquetSchema([]parquetField{
	{"plant_id_eia", "INT64"},
	{"unit_id", "BYTE_ARRAY"},
	{"operating_datetime_utc", "BYTE_ARRAY"},
	{"operating_time_hours", "DOUBLE"},
	{"gross_load_mw", "DOUBLE"},
	{"so2_mass_lbs", "DOUBLE"},
	{"nox_mass_lbs", "DOUBLE"},
	{"co2_mass_tons", "DOUBLE"},
})

type parquetField struct {
	Name string
	Type string
}

func buildParquetSchema(fields []parquetField) string {
	tagged := make([]map[string]string, 0, len(fields))
	for _, f := range fields {
		tag := fmt.Sprintf("name=%s, type=%s, repetitiontype=OPTIONAL", f.Name, f.Type)
		if f.Type == "BYTE_ARRAY" {
			tag += ", convertedtype=UTF8"
		}
		tagged = append(tagged, map[string]string{"Tag": tag})
	}
	out := map[string]any{
		"Tag":    "name=parquet_go_root, repetitiontype=REQUIRED",
		"Fields": tagged,
	}
	b, _ := json.Marshal(out)
	return string(b)
}

// writeEmissionsParquet serializes hourly emissions as a snappy-compressed
// Parquet file.
func writeEmissionsParquet(emissions []hourlyEmission) ([]byte, error) {
	buf := &bytes.Buffer{}
	pfw := writerfile.NewWriterFile(buf)
	pw, err := writer.NewJSONWriter(emissionsParquetSchema, pfw, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, e := range emissions {
		row, err := json.Marshal(map[string]any{
			"plant_id_eia":           e.PlantIDEia,
			"unit_id":                e.UnitID,
			"operating_datetime_utc": e.OperatingDatetimeUTC,
			"operating_time_hours":   e.OperatingTimeHours,
			"gross_load_mw":          e.GrossLoadMw,
			"so2_mass_lbs":           e.So2MassLbs,
			"nox_mass_lbs":           e.NoxMassLbs,
			"co2_mass_tons":          e.Co2MassTons,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode parquet row: %w", err)
		}
		if err := pw.Write(string(row)); err != nil {
			_ = pw.WriteStop()
			_ = pfw.Close()
			return nil, fmt.Errorf("failed to write parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = pfw.Close()
		return nil, fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	_ = pfw.Close()
	return buf.Bytes(), nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
