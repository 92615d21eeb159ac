package settings

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_NestedSelections(t *testing.T) {
	doc := `
ferc1:
  years: [1994, 1996]
  tables: [fuel_ferc1, plants_steam_ferc1]
eia:
  eia923:
    years: [2017, 2018]
epacems:
  states: [all]
  years: [2019, 2020]
`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !reflect.DeepEqual(s.Ferc1.Years, []int{1994, 1996}) {
		t.Errorf("ferc1 years = %v", s.Ferc1.Years)
	}
	if s.Eia.Eia860 == nil {
		t.Error("eia860 was not backfilled from eia923")
	}
	if !reflect.DeepEqual(s.EpaCems.States, EpaCemsWorkingStates) {
		t.Errorf("epacems states = %v, want all working states", s.EpaCems.States)
	}
	if s.Glue == nil {
		t.Error("glue was not derived for ferc1+eia")
	}
}

func TestParse_EmptyDocumentDefaults(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.Ferc1 == nil || s.Eia == nil {
		t.Fatalf("ferc1=%v eia=%v, want default datasets", s.Ferc1, s.Eia)
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	doc := `
ferc1:
  years: [1994]
  refyear: 2020
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("expected an error for unknown field 'refyear' on ferc1")
	}
}

func TestParse_RejectsUnknownGlueField(t *testing.T) {
	doc := `
glue:
  eia: false
  bogus_field: true
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected an error for unknown field under glue")
	}
	if !strings.Contains(err.Error(), "bogus_field") {
		t.Errorf("error %q does not name the unknown field", err)
	}
}

func TestParse_RejectsUnknownDataset(t *testing.T) {
	if _, err := Parse([]byte("eia861: {}\n")); err == nil {
		t.Fatal("expected an error for unknown dataset")
	}
}

func TestParse_ValidationErrorNamesSettingsProblem(t *testing.T) {
	doc := `
epacems:
  states: [CA, ZZ]
`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(err.Error(), "ZZ") || !strings.Contains(err.Error(), "states") {
		t.Errorf("error %q does not identify the bad state", err)
	}
}

func TestGlueSettings_YAMLDefaultsTrue(t *testing.T) {
	doc := `
ferc1:
  years: [1994]
glue:
  eia: false
`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// Only ferc1 requested, so the user's glue selection is preserved.
	if s.Glue == nil {
		t.Fatal("glue selection was dropped")
	}
	if s.Glue.Eia {
		t.Error("glue.eia = true, want explicit false preserved")
	}
	if !s.Glue.Ferc1 {
		t.Error("glue.ferc1 = false, want default true")
	}
}
