package engine

import (
	"slices"

	"filings/internal/core"
)

// Snapshot is the loaded dataset. It is built once and never modified, so it
// can be shared freely between goroutines. Slices returned by its accessors
// must be treated as read-only.
type Snapshot struct {
	records    []core.Record
	totals     []core.ContributorTotal
	totalIndex map[string]int
	recipients []core.RecipientAggregate
	employers  map[string][]string
	options    FilterOptions
}

// NewSnapshot derives every load-time structure from normalized records and
// the contributor rollup document.
func NewSnapshot(records []core.Record, totals map[string]core.RawTotal) *Snapshot {
	s := &Snapshot{
		records:    slices.Clip(records),
		totals:     WrapTotals(totals),
		recipients: BuildRecipients(records),
		employers:  employerIndex(records),
		options:    buildFilterOptions(records),
	}
	s.totalIndex = make(map[string]int, len(s.totals))
	for i, t := range s.totals {
		s.totalIndex[t.Key] = i
	}
	return s
}

// FromRaw normalizes rows and builds a Snapshot.
func FromRaw(rows []core.RawRow, totals map[string]core.RawTotal) *Snapshot {
	return NewSnapshot(core.NormalizeAll(rows), totals)
}

// Records returns the canonical filings in load order.
func (s *Snapshot) Records() []core.Record { return s.records }

// Contributors returns the contributor rollups ordered by key.
func (s *Snapshot) Contributors() []core.ContributorTotal { return s.totals }

// Contributor looks up a rollup entry by key.
func (s *Snapshot) Contributor(key string) (core.ContributorTotal, bool) {
	i, ok := s.totalIndex[key]
	if !ok {
		return core.ContributorTotal{}, false
	}
	return s.totals[i], true
}

// Recipients returns the per-recipient aggregates in first-seen order.
func (s *Snapshot) Recipients() []core.RecipientAggregate { return s.recipients }

// FilterOptions returns the selectable categorical values.
func (s *Snapshot) FilterOptions() FilterOptions { return s.options }

// Employers returns the employers seen on filings of a contributor key.
func (s *Snapshot) Employers(key string) []string { return s.employers[key] }
