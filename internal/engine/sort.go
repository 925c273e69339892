package engine

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"filings/internal/core"
)

// newCollator returns an English collator that ignores case and accents, so
// "José" and "jose" compare equal. Collators keep
// internal buffers, so every sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase, collate.IgnoreDiacritics)
}

func directed(c int, d Direction) int {
	if d == Desc {
		return -c
	}
	return c
}

// SortRecords returns a stably sorted copy of records.
func SortRecords(records []core.Record, field SortField, dir Direction) []core.Record {
	out := slices.Clone(records)
	col := newCollator()
	var by func(a, b core.Record) int
	switch ResolveSort(ViewRecords, field) {
	case SortContributor:
		by = func(a, b core.Record) int { return col.CompareString(a.ContributorFullName, b.ContributorFullName) }
	case SortRecipient:
		by = func(a, b core.Record) int { return col.CompareString(a.RecipientFullName, b.RecipientFullName) }
	default:
		by = func(a, b core.Record) int { return cmp.Compare(a.Amount, b.Amount) }
	}
	slices.SortStableFunc(out, func(a, b core.Record) int { return directed(by(a, b), dir) })
	return out
}

// SortContributors returns a stably sorted copy of totals.
func SortContributors(totals []core.ContributorTotal, field SortField, dir Direction) []core.ContributorTotal {
	out := slices.Clone(totals)
	col := newCollator()
	var by func(a, b core.ContributorTotal) int
	switch ResolveSort(ViewTotals, field) {
	case SortContributor:
		by = func(a, b core.ContributorTotal) int { return col.CompareString(a.FullName, b.FullName) }
	default:
		by = func(a, b core.ContributorTotal) int { return cmp.Compare(a.TotalAmount, b.TotalAmount) }
	}
	slices.SortStableFunc(out, func(a, b core.ContributorTotal) int { return directed(by(a, b), dir) })
	return out
}

// SortRecipients returns a stably sorted copy of aggs.
func SortRecipients(aggs []core.RecipientAggregate, field SortField, dir Direction) []core.RecipientAggregate {
	out := slices.Clone(aggs)
	col := newCollator()
	var by func(a, b core.RecipientAggregate) int
	switch ResolveSort(ViewRecipients, field) {
	case SortRecipient:
		by = func(a, b core.RecipientAggregate) int { return col.CompareString(a.Name, b.Name) }
	default:
		by = func(a, b core.RecipientAggregate) int { return cmp.Compare(a.Total, b.Total) }
	}
	slices.SortStableFunc(out, func(a, b core.RecipientAggregate) int { return directed(by(a, b), dir) })
	return out
}
