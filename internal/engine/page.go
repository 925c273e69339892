package engine

import "slices"

// Page is a capped, ordered view. Total counts every match and Amount sums
// every match, including entries past the cap. Available is the size of the
// unfiltered collection.
type Page[T any] struct {
	Items     []T     `json:"items" yaml:"items"`
	Total     int     `json:"total" yaml:"total"`
	Available int     `json:"available" yaml:"available"`
	Limit     int     `json:"limit" yaml:"limit"`
	Truncated bool    `json:"truncated" yaml:"truncated"`
	Amount    float64 `json:"amount" yaml:"amount"`
}

// Truncate returns at most limit leading items.
func Truncate[T any](items []T, limit int) []T {
	if limit < 0 || len(items) <= limit {
		return items
	}
	return items[:limit]
}

func newPage[T any](sorted []T, limit, available int, amount float64) Page[T] {
	shown := Truncate(sorted, limit)
	if shown == nil {
		shown = []T{}
	}
	return Page[T]{
		Items:     shown,
		Total:     len(sorted),
		Available: available,
		Limit:     limit,
		Truncated: len(shown) < len(sorted),
		Amount:    amount,
	}
}

func (p Page[T]) clone() Page[T] {
	p.Items = slices.Clone(p.Items)
	return p
}
