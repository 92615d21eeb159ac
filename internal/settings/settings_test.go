package settings

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizePartition_SortsAndDeduplicates(t *testing.T) {
	got, err := normalizePartition("ferc1", "years", []int{2000, 1996, 2000, 1994}, Ferc1WorkingYears)
	if err != nil {
		t.Fatalf("normalizePartition failed: %v", err)
	}
	want := []int{1994, 1996, 2000}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizePartition_NilSelectsFullWorkingSet(t *testing.T) {
	got, err := normalizePartition("eia923", "tables", nil, Eia923WorkingTables)
	if err != nil {
		t.Fatalf("normalizePartition failed: %v", err)
	}
	if !reflect.DeepEqual(got, Eia923WorkingTables) {
		t.Errorf("got %v, want full working set %v", got, Eia923WorkingTables)
	}
}

func TestNormalizePartition_ExplicitEmptyStaysEmpty(t *testing.T) {
	got, err := normalizePartition("ferc1", "tables", []string{}, Ferc1WorkingTables)
	if err != nil {
		t.Fatalf("normalizePartition failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("explicit empty selection expanded to %v", got)
	}
}

func TestNormalizePartition_RejectsValuesOutsideWorkingSet(t *testing.T) {
	_, err := normalizePartition("ferc1", "years", []int{1994, 1960, 2021}, Ferc1WorkingYears)
	if err == nil {
		t.Fatal("expected an error for years outside the working set")
	}

	var perr *InvalidPartitionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *InvalidPartitionError, got %T: %v", err, err)
	}
	if perr.Dataset != "ferc1" || perr.Field != "years" {
		t.Errorf("error names dataset=%q field=%q", perr.Dataset, perr.Field)
	}
	if !reflect.DeepEqual(perr.Invalid, []string{"1960", "2021"}) {
		t.Errorf("invalid values = %v, want [1960 2021]", perr.Invalid)
	}
	// The message must identify the field and the allowed set.
	msg := err.Error()
	for _, frag := range []string{"ferc1", "years", "1960", "1994"} {
		if !strings.Contains(msg, frag) {
			t.Errorf("error message %q missing %q", msg, frag)
		}
	}
}

func TestFerc1Settings_Defaults(t *testing.T) {
	s := &Ferc1Settings{}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !reflect.DeepEqual(s.Years, Ferc1WorkingYears) {
		t.Errorf("years = %v, want all working years", s.Years)
	}
	if !reflect.DeepEqual(s.Tables, Ferc1WorkingTables) {
		t.Errorf("tables = %v, want all working tables", s.Tables)
	}
}

func TestFerc1Settings_RejectsUnknownTable(t *testing.T) {
	s := &Ferc1Settings{Tables: []string{"fuel_ferc1", "nope_ferc1"}}
	if err := s.Validate(); err == nil {
		t.Fatal("expected an error for unknown table")
	}
}

func TestFerc1DBFSettings_RefYearDefaultsToMostRecent(t *testing.T) {
	s := &Ferc1DBFSettings{}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if s.RefYear != 2020 {
		t.Errorf("refyear = %d, want 2020", s.RefYear)
	}
}

func TestFerc1DBFSettings_RejectsRefYearOutsideWorkingYears(t *testing.T) {
	s := &Ferc1DBFSettings{RefYear: 1993}
	err := s.Validate()
	if err == nil {
		t.Fatal("expected an error for refyear outside working years")
	}
	if !strings.Contains(err.Error(), "1993") {
		t.Errorf("error message %q does not name the bad refyear", err)
	}
}

func TestEia860Settings_Eia860MReleaseFollowsWorkingYears(t *testing.T) {
	s := &Eia860Settings{Eia860M: true}
	if err := s.Validate(); err != nil {
		t.Fatalf("eia860m should be allowed one year past the working years: %v", err)
	}
}

func TestEpaCemsSettings_AllExpandsToEveryWorkingState(t *testing.T) {
	s := &EpaCemsSettings{States: []string{"all"}, Years: []int{2019}}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !reflect.DeepEqual(s.States, EpaCemsWorkingStates) {
		t.Errorf("states = %v, want full working state list", s.States)
	}
}

func TestEpaCemsSettings_RejectsUnknownState(t *testing.T) {
	s := &EpaCemsSettings{States: []string{"CA", "PR"}}
	if err := s.Validate(); err == nil {
		t.Fatal("expected an error for non-working state")
	}
}

func TestEiaSettings_Eia860BackfillsMinimalEia923Tables(t *testing.T) {
	s := &EiaSettings{
		Eia860: &Eia860Settings{Years: []int{2018, 2019}},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if s.Eia923 == nil {
		t.Fatal("eia923 was not backfilled")
	}
	if !reflect.DeepEqual(s.Eia923.Tables, []string{"boiler_fuel_eia923", "generation_eia923"}) {
		t.Errorf("eia923 tables = %v, want the minimal harvesting set", s.Eia923.Tables)
	}
	if !reflect.DeepEqual(s.Eia923.Years, []int{2018, 2019}) {
		t.Errorf("eia923 years = %v, want eia860's years", s.Eia923.Years)
	}
}

func TestEiaSettings_Eia923BackfillsEia860(t *testing.T) {
	s := &EiaSettings{
		Eia923: &Eia923Settings{Years: []int{2017}},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if s.Eia860 == nil {
		t.Fatal("eia860 was not backfilled")
	}
	if !reflect.DeepEqual(s.Eia860.Years, []int{2017}) {
		t.Errorf("eia860 years = %v, want eia923's years", s.Eia860.Years)
	}
	if !reflect.DeepEqual(s.Eia860.Tables, Eia860WorkingTables) {
		t.Errorf("eia860 tables = %v, want full working set", s.Eia860.Tables)
	}
}

func TestEiaSettings_EmptyDefaultsToBothDatasets(t *testing.T) {
	s := &EiaSettings{}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if s.Eia860 == nil || s.Eia923 == nil {
		t.Fatalf("eia860=%v eia923=%v, want both populated", s.Eia860, s.Eia923)
	}
}

func TestDatasetsSettings_EmptyDefaultsToFerc1AndEia(t *testing.T) {
	s := &DatasetsSettings{}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if s.Ferc1 == nil || s.Eia == nil {
		t.Fatalf("ferc1=%v eia=%v, want both requested by default", s.Ferc1, s.Eia)
	}
	if s.EpaCems != nil {
		t.Error("epacems should not be requested by default")
	}
}

func TestDatasetsSettings_GlueDerivedWhenFerc1AndEiaRequested(t *testing.T) {
	s := &DatasetsSettings{
		Ferc1: &Ferc1Settings{},
		Eia:   &EiaSettings{},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if s.Glue == nil || !s.Glue.Eia || !s.Glue.Ferc1 {
		t.Errorf("glue = %+v, want both sources enabled", s.Glue)
	}
}

func TestDatasetsSettings_NoGlueForSingleDataset(t *testing.T) {
	s := &DatasetsSettings{Ferc1: &Ferc1Settings{}}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if s.Glue != nil {
		t.Errorf("glue = %+v, want nil when only ferc1 is requested", s.Glue)
	}
}

func TestDatasetsSettings_Active(t *testing.T) {
	s := &DatasetsSettings{}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	want := []string{"ferc1", "eia", "glue"}
	if got := s.Active(); !reflect.DeepEqual(got, want) {
		t.Errorf("Active() = %v, want %v", got, want)
	}
}
