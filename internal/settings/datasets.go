package settings

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// GlueSettings selects which sources participate in the glue tables that
// link FERC and EIA entities. Both default to true.
type GlueSettings struct {
	Eia   bool `yaml:"eia"`
	Ferc1 bool `yaml:"ferc1"`
}

// UnmarshalYAML decodes glue settings with both sources defaulting to true
// when a key is omitted. Unknown keys are rejected; a nested Decode would
// not inherit the outer decoder's strict mode, so the mapping is walked
// directly.
func (g *GlueSettings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("glue: expected a mapping, got %s", value.Tag)
	}
	g.Eia = true
	g.Ferc1 = true
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "eia":
			if err := val.Decode(&g.Eia); err != nil {
				return err
			}
		case "ferc1":
			if err := val.Decode(&g.Ferc1); err != nil {
				return err
			}
		default:
			return fmt.Errorf("glue: unknown field %q", key.Value)
		}
	}
	return nil
}

// DatasetsSettings is the top-level selection of datasets for an ETL run.
// A nil field means the dataset is not requested.
type DatasetsSettings struct {
	Ferc1   *Ferc1Settings   `yaml:"ferc1"`
	Eia     *EiaSettings     `yaml:"eia"`
	Glue    *GlueSettings    `yaml:"glue"`
	EpaCems *EpaCemsSettings `yaml:"epacems"`
}

// Validate validates every requested dataset and applies the bundle-level
// rules: an empty request defaults to FERC1 and EIA, and the glue tables
// are (re)derived whenever both FERC1 and EIA data are requested.
func (s *DatasetsSettings) Validate() error {
	if s.Ferc1 == nil && s.Eia == nil && s.Glue == nil && s.EpaCems == nil {
		s.Ferc1 = &Ferc1Settings{}
		s.Eia = &EiaSettings{}
	}

	if s.Ferc1 != nil {
		if err := s.Ferc1.Validate(); err != nil {
			return err
		}
	}
	if s.Eia != nil {
		if err := s.Eia.Validate(); err != nil {
			return err
		}
	}
	if s.EpaCems != nil {
		if err := s.EpaCems.Validate(); err != nil {
			return err
		}
	}

	if s.Ferc1 != nil && s.Eia != nil {
		s.Glue = &GlueSettings{Eia: true, Ferc1: true}
	}
	return nil
}

// Active returns the names of the requested datasets in pipeline run order.
func (s *DatasetsSettings) Active() []string {
	var active []string
	if s.Ferc1 != nil {
		active = append(active, "ferc1")
	}
	if s.Eia != nil {
		active = append(active, "eia")
	}
	if s.EpaCems != nil {
		active = append(active, "epacems")
	}
	if s.Glue != nil {
		active = append(active, "glue")
	}
	return active
}

// Parse decodes and validates a datasets settings document. Unknown fields
// are rejected.
func Parse(data []byte) (*DatasetsSettings, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s DatasetsSettings
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads, decodes, and validates a datasets settings file.
func LoadFile(path string) (*DatasetsSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
