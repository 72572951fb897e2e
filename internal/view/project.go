// Package view derives the display order of a list from a view
// configuration. Nothing here mutates its input.
package view

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/Makepad-fr/shoplist/internal/model"
)

// DefaultSearchThreshold is the length a search term has to exceed before it
// narrows the list. Shorter terms show everything.
const DefaultSearchThreshold = 3

// Config is the transient view state.
type Config struct {
	Sort   model.SortMode
	Filter model.CheckedFilter
	Search string

	// SearchThreshold is compared against the rune length of Search.
	// Zero makes any non-empty term narrow the list.
	SearchThreshold int

	// Exclusive treats search and the checked filter as separate display
	// modes: an active search replaces the filter instead of narrowing it
	// further.
	Exclusive bool
}

func DefaultConfig() Config {
	return Config{
		Sort:            model.SortByName,
		Filter:          model.FilterAll,
		SearchThreshold: DefaultSearchThreshold,
	}
}

// SearchActive reports whether Search is long enough to apply.
func (c Config) SearchActive() bool {
	return c.Search != "" && utf8.RuneCountInString(c.Search) > c.SearchThreshold
}

// Project returns the entries to display for cfg: checked filter, then
// search, then a stable sort. The result never shares memory with entries.
func Project(entries []model.Entry, cfg Config) []model.Entry {
	out := make([]model.Entry, 0, len(entries))

	search := cfg.SearchActive()
	filter := cfg.Filter
	if cfg.Exclusive && search {
		filter = model.FilterAll
	}
	term := strings.ToLower(cfg.Search)

	for _, e := range entries {
		if !filter.Keep(e.Checked) {
			continue
		}
		if search && !strings.Contains(strings.ToLower(e.Name), term) {
			continue
		}
		out = append(out, e)
	}

	switch cfg.Sort {
	case model.SortByName:
		slices.SortStableFunc(out, byName)
	case model.SortByCreated:
		slices.SortStableFunc(out, byCreated)
	}
	return out
}

func byName(a, b model.Entry) int {
	return strings.Compare(strings.ToUpper(a.Name), strings.ToUpper(b.Name))
}

func byCreated(a, b model.Entry) int {
	return a.CreatedAt.Compare(b.CreatedAt)
}
