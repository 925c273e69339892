package engine

import (
	"maps"
	"slices"

	"filings/internal/core"
	"filings/internal/slug"
)

// WrapTotals attaches each rollup entry's map key as its Key. The result is
// ordered by key.
func WrapTotals(raw map[string]core.RawTotal) []core.ContributorTotal {
	keys := slices.Sorted(maps.Keys(raw))
	out := make([]core.ContributorTotal, 0, len(keys))
	for _, k := range keys {
		t := raw[k]
		out = append(out, core.ContributorTotal{
			Key:               k,
			FullName:          t.FullName,
			TotalAmount:       t.TotalAmount,
			ContributionCount: t.ContributionCount,
		})
	}
	return out
}

// BuildRecipients aggregates records per recipient name in one pass. Buckets
// come out in first-seen order.
func BuildRecipients(records []core.Record) []core.RecipientAggregate {
	index := make(map[string]int)
	var aggs []core.RecipientAggregate
	var sums []core.Sum

	for _, rec := range records {
		i, ok := index[rec.RecipientFullName]
		if !ok {
			i = len(aggs)
			index[rec.RecipientFullName] = i
			aggs = append(aggs, core.RecipientAggregate{Name: rec.RecipientFullName})
			sums = append(sums, core.Sum{})
		}
		a := &aggs[i]
		sums[i].Add(rec.Amount)
		a.Count++
		if a.Office == "" && rec.OfficeSought != "" {
			a.Office = rec.OfficeSought
		}
		if a.SampleLocation == "" {
			a.SampleLocation = rec.Place()
		}
	}
	for i := range aggs {
		aggs[i].Total = sums[i].Float64()
	}
	return aggs
}

// employerIndex maps a contributor key to the distinct employers listed on
// that contributor's filings, in first-seen order.
func employerIndex(records []core.Record) map[string][]string {
	idx := make(map[string][]string)
	for _, rec := range records {
		if rec.Employer == "" {
			continue
		}
		k := slug.Make(rec.ContributorFullName)
		if !slices.Contains(idx[k], rec.Employer) {
			idx[k] = append(idx[k], rec.Employer)
		}
	}
	return idx
}

// distinct returns the sorted distinct non-empty values of field.
func distinct(records []core.Record, field func(core.Record) string) []string {
	set := make(map[string]struct{})
	for _, rec := range records {
		if v := field(rec); v != "" {
			set[v] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// FilterOptions lists the selectable values of each categorical filter.
type FilterOptions struct {
	ContributionTypes []string `json:"contributionTypes" yaml:"contributionTypes"`
	ContributionModes []string `json:"contributionModes" yaml:"contributionModes"`
	Offices           []string `json:"offices" yaml:"offices"`
}

func buildFilterOptions(records []core.Record) FilterOptions {
	return FilterOptions{
		ContributionTypes: distinct(records, func(r core.Record) string { return r.ContributionType }),
		ContributionModes: distinct(records, func(r core.Record) string { return r.ContributionMode }),
		Offices:           distinct(records, func(r core.Record) string { return r.OfficeSought }),
	}
}
