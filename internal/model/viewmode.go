package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSortMode = errors.New("unknown sort mode")
	ErrUnknownFilter   = errors.New("unknown checked filter")
)

// SortMode selects the ordering applied to a projection.
type SortMode string

const (
	SortByName      SortMode = "by-name"
	SortByCreated   SortMode = "by-creation-time"
	SortByInsertion SortMode = "insertion"
)

// SortModes lists the modes in the order the UI cycles through them.
var SortModes = []SortMode{SortByName, SortByCreated, SortByInsertion}

// ParseSortMode accepts the canonical names plus the short aliases used on
// the command line ("name", "alpha", "created", "date").
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "by-name", "name", "alpha":
		return SortByName, nil
	case "by-creation-time", "created", "date", "time":
		return SortByCreated, nil
	case "insertion", "none", "store":
		return SortByInsertion, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortMode, s)
}

// Next returns the mode after m in SortModes, wrapping around.
func (m SortMode) Next() SortMode {
	for i, v := range SortModes {
		if v == m {
			return SortModes[(i+1)%len(SortModes)]
		}
	}
	return SortModes[0]
}

func (m SortMode) String() string { return string(m) }

// CheckedFilter restricts a projection by checked state.
type CheckedFilter string

const (
	FilterAll       CheckedFilter = "all"
	FilterChecked   CheckedFilter = "checked-only"
	FilterUnchecked CheckedFilter = "unchecked-only"
)

var CheckedFilters = []CheckedFilter{FilterAll, FilterChecked, FilterUnchecked}

func ParseCheckedFilter(s string) (CheckedFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return FilterAll, nil
	case "checked-only", "checked", "done":
		return FilterChecked, nil
	case "unchecked-only", "unchecked", "pending":
		return FilterUnchecked, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

func (f CheckedFilter) Next() CheckedFilter {
	for i, v := range CheckedFilters {
		if v == f {
			return CheckedFilters[(i+1)%len(CheckedFilters)]
		}
	}
	return FilterAll
}

// Keep reports whether an entry with the given checked state passes f.
func (f CheckedFilter) Keep(checked bool) bool {
	switch f {
	case FilterChecked:
		return checked
	case FilterUnchecked:
		return !checked
	default:
		return true
	}
}

func (f CheckedFilter) String() string { return string(f) }
