package settings

// Working partitions for EPA CEMS hourly emissions data. The working
// states are the lower 48 plus DC; hourly data for the territories and
// non-contiguous states is not yet integrated.
var (
	EpaCemsWorkingYears = yearRange(1995, 2020)

	EpaCemsWorkingStates = []string{
		"AL", "AR", "AZ", "CA", "CO", "CT", "DC", "DE", "FL", "GA",
		"IA", "ID", "IL", "IN", "KS", "KY", "LA", "MA", "MD", "ME",
		"MI", "MN", "MO", "MS", "MT", "NC", "ND", "NE", "NH", "NJ",
		"NM", "NV", "NY", "OH", "OK", "OR", "PA", "RI", "SC", "SD",
		"TN", "TX", "UT", "VA", "VT", "WA", "WI", "WV", "WY",
	}
)

// EpaCemsSettings selects the EPA CEMS years and states to process.
type EpaCemsSettings struct {
	Years  []int    `yaml:"years"`
	States []string `yaml:"states"`
}

// Validate checks the requested partitions against the working set and
// normalizes them in place. The single keyword "all" selects every
// working state.
func (s *EpaCemsSettings) Validate() error {
	years, err := normalizePartition("epacems", "years", s.Years, EpaCemsWorkingYears)
	if err != nil {
		return err
	}

	states := s.States
	if len(states) == 1 && states[0] == "all" {
		states = nil // full working set
	}
	states, err = normalizePartition("epacems", "states", states, EpaCemsWorkingStates)
	if err != nil {
		return err
	}

	s.Years = years
	s.States = states
	return nil
}
