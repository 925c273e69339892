package engine

import (
	"cmp"
	"slices"

	"filings/internal/core"
	"filings/internal/slug"
)

// GroupByDate partitions the filings of the given contributors by raw receipt
// date label. Membership is decided by the key of each record's contributor
// name. Groups are ordered newest first; labels that do not parse as dates,
// including NoReceiptDate, go last in first-seen order.
func GroupByDate(keys map[string]struct{}, records []core.Record) []core.DateGroup {
	index := make(map[string]int)
	var groups []core.DateGroup
	var sums []core.Sum

	for _, rec := range records {
		if _, ok := keys[slug.Make(rec.ContributorFullName)]; !ok {
			continue
		}
		label := rec.ReceiptDate
		if label == "" {
			label = core.NoReceiptDate
		}
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, core.DateGroup{DateLabel: label})
			sums = append(sums, core.Sum{})
		}
		groups[i].Entries = append(groups[i].Entries, rec)
		sums[i].Add(rec.Amount)
	}

	dateKeys := make(map[string]int64, len(groups))
	for i := range groups {
		groups[i].TotalAmount = sums[i].Float64()
		dateKeys[groups[i].DateLabel] = core.DateKey(groups[i].DateLabel)
	}
	slices.SortStableFunc(groups, func(a, b core.DateGroup) int {
		return cmp.Compare(dateKeys[b.DateLabel], dateKeys[a.DateLabel])
	})
	return groups
}

// totalOfGroups sums the amounts of every entry across groups.
func totalOfGroups(groups []core.DateGroup) float64 {
	var s core.Sum
	for _, g := range groups {
		for _, e := range g.Entries {
			s.Add(e.Amount)
		}
	}
	return s.Float64()
}
