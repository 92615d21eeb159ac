// Package settings validates and normalizes ETL run configuration: which
// datasets, years, tables, and states a pipeline run should process. Every
// dataset carries a static set of working partitions (the years/tables/states
// the pipeline is known to support); requested partitions must be a subset of
// the working set. Validated settings are treated as immutable by callers.
package settings

import (
	"fmt"
	"sort"
)

// InvalidPartitionError reports requested partition values that fall outside
// the dataset's working partition set.
type InvalidPartitionError struct {
	Dataset string
	Field   string
	Invalid []string
	Working []string
}

func (e *InvalidPartitionError) Error() string {
	return fmt.Sprintf("%s: requested %s %v are not within the working %s %v",
		e.Dataset, e.Field, e.Invalid, e.Field, e.Working)
}

// normalizePartition checks requested is a subset of working, then returns the requested
// values sorted and de-duplicated. A nil request selects the full working set.
// An explicit empty request stays empty.
func normalizePartition[T int | string](dataset, field string, requested, working []T) ([]T, error) {
	if requested == nil {
		out := make([]T, len(working))
		copy(out, working)
		sortSlice(out)
		return out, nil
	}

	workingSet := make(map[T]struct{}, len(working))
	for _, w := range working {
		workingSet[w] = struct{}{}
	}

	seen := make(map[T]struct{}, len(requested))
	var out []T
	var invalid []T
	for _, r := range requested {
		if _, ok := workingSet[r]; !ok {
			invalid = append(invalid, r)
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(invalid) > 0 {
		sortSlice(invalid)
		return nil, &InvalidPartitionError{
			Dataset: dataset,
			Field:   field,
			Invalid: stringify(invalid),
			Working: stringify(working),
		}
	}
	sortSlice(out)
	return out, nil
}

func sortSlice[T int | string](s []T) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}

func stringify[T int | string](s []T) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = fmt.Sprint(v)
	}
	return out
}

// yearRange returns the inclusive range of years [from, to].
func yearRange(from, to int) []int {
	years := make([]int, 0, to-from+1)
	for y := from; y <= to; y++ {
		years = append(years, y)
	}
	return years
}

func maxYear(years []int) int {
	m := 0
	for _, y := range years {
		if y > m {
			m = y
		}
	}
	return m
}
