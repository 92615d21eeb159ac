package settings

import (
	"fmt"
	"time"
)

// Working partitions for the EIA Form 860 and Form 923 datasets.
var (
	Eia860WorkingYears = yearRange(2001, 2019)

	Eia860WorkingTables = []string{
		"boiler_generator_assn_eia860",
		"generators_eia860",
		"ownership_eia860",
		"plants_eia860",
		"utilities_eia860",
	}

	Eia923WorkingYears = yearRange(2001, 2019)

	Eia923WorkingTables = []string{
		"boiler_fuel_eia923",
		"coalmine_eia923",
		"fuel_receipts_costs_eia923",
		"generation_eia923",
		"generation_fuel_eia923",
	}
)

// eia860mDate is the year-month of the EIA 860M release that may be layered
// on top of the annual 860 data.
const eia860mDate = "2020-11"

// eia923MinimalTables are the EIA 923 tables required to process EIA 860
// data, used to backfill a missing eia923 selection.
var eia923MinimalTables = []string{"boiler_fuel_eia923", "generation_eia923"}

// Eia860Settings selects the EIA Form 860 years and tables to process.
// Eia860M layers the monthly 860M update on top of the annual data.
type Eia860Settings struct {
	Years   []int    `yaml:"years"`
	Tables  []string `yaml:"tables"`
	Eia860M bool     `yaml:"eia860m"`
}

// Validate checks the requested partitions against the working set and
// normalizes them in place. When eia860m is requested, the 860M release
// year must be exactly one year past the most recent working 860 year;
// a release inside the annual range would double-count.
func (s *Eia860Settings) Validate() error {
	years, err := normalizePartition("eia860", "years", s.Years, Eia860WorkingYears)
	if err != nil {
		return err
	}
	tables, err := normalizePartition("eia860", "tables", s.Tables, Eia860WorkingTables)
	if err != nil {
		return err
	}
	s.Years = years
	s.Tables = tables

	if s.Eia860M {
		release, err := time.Parse("2006-01", eia860mDate)
		if err != nil {
			return fmt.Errorf("eia860: bad eia860m release date %q: %w", eia860mDate, err)
		}
		if release.Year() != maxYear(Eia860WorkingYears)+1 {
			return fmt.Errorf("eia860: the eia860m year (%d) is within the eia860 "+
				"working years %v; switch eia860m to false", release.Year(), Eia860WorkingYears)
		}
	}
	return nil
}

// Eia923Settings selects the EIA Form 923 years and tables to process.
type Eia923Settings struct {
	Years  []int    `yaml:"years"`
	Tables []string `yaml:"tables"`
}

// Validate checks the requested partitions against the working set and
// normalizes them in place.
func (s *Eia923Settings) Validate() error {
	years, err := normalizePartition("eia923", "years", s.Years, Eia923WorkingYears)
	if err != nil {
		return err
	}
	tables, err := normalizePartition("eia923", "tables", s.Tables, Eia923WorkingTables)
	if err != nil {
		return err
	}
	s.Years = years
	s.Tables = tables
	return nil
}

// EiaSettings bundles the EIA datasets and resolves the dependencies
// between them:
//
//   - eia860 harvesting requires the eia923 boiler_fuel and generation
//     tables, so a missing eia923 selection is backfilled with those
//     tables over eia860's years.
//   - eia923 harvesting requires eia860, so a missing eia860 selection is
//     backfilled with the full table set over eia923's years.
type EiaSettings struct {
	Eia860 *Eia860Settings `yaml:"eia860"`
	Eia923 *Eia923Settings `yaml:"eia923"`
}

// Validate validates both datasets and resolves their cross-dependencies.
// When neither dataset is specified, both default to their full working
// partitions.
func (s *EiaSettings) Validate() error {
	if s.Eia860 == nil && s.Eia923 == nil {
		s.Eia860 = &Eia860Settings{}
		s.Eia923 = &Eia923Settings{}
	}

	if s.Eia860 != nil {
		if err := s.Eia860.Validate(); err != nil {
			return err
		}
	}
	if s.Eia923 != nil {
		if err := s.Eia923.Validate(); err != nil {
			return err
		}
	}

	if s.Eia923 == nil {
		s.Eia923 = &Eia923Settings{
			Years:  s.Eia860.Years,
			Tables: eia923MinimalTables,
		}
		if err := s.Eia923.Validate(); err != nil {
			return err
		}
	}
	if s.Eia860 == nil {
		s.Eia860 = &Eia860Settings{Years: s.Eia923.Years}
		if err := s.Eia860.Validate(); err != nil {
			return err
		}
	}
	return nil
}
