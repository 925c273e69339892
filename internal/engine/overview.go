package engine

import (
	"cmp"
	"slices"

	"filings/internal/core"
)

const (
	overviewTopRecipients = 5
	overviewTopLocations  = 5
	overviewRecent        = 6
)

// Overview is the landing summary of a dataset.
type Overview struct {
	Summary       core.Summary              `json:"summary" yaml:"summary"`
	TopRecipients []core.RecipientAggregate `json:"topRecipients" yaml:"topRecipients"`
	TopLocations  []core.LocationAggregate  `json:"topLocations" yaml:"topLocations"`
	Recent        []core.Record             `json:"recent" yaml:"recent"`
}

// Overview computes dataset totals, the largest recipients, the busiest
// locations and the latest dated filings.
func (s *Snapshot) Overview() Overview {
	var total core.Sum
	contributors := make(map[string]struct{})
	recipients := make(map[string]struct{})

	locIndex := make(map[string]int)
	var locs []core.LocationAggregate
	var locSums []core.Sum

	for _, rec := range s.records {
		total.Add(rec.Amount)
		contributors[rec.ContributorFullName] = struct{}{}
		recipients[rec.RecipientFullName] = struct{}{}

		k := rec.LocationKey()
		i, ok := locIndex[k]
		if !ok {
			i = len(locs)
			locIndex[k] = i
			locs = append(locs, core.LocationAggregate{Location: k})
			locSums = append(locSums, core.Sum{})
		}
		locs[i].Count++
		locSums[i].Add(rec.Amount)
	}
	for i := range locs {
		locs[i].Total = locSums[i].Float64()
	}
	slices.SortStableFunc(locs, func(a, b core.LocationAggregate) int { return cmp.Compare(b.Count, a.Count) })

	return Overview{
		Summary: core.Summary{
			TotalAmount:        total.Float64(),
			TotalContributions: len(s.records),
			UniqueContributors: len(contributors),
			UniqueRecipients:   len(recipients),
		},
		TopRecipients: slices.Clone(Truncate(SortRecipients(s.recipients, SortAmount, Desc), overviewTopRecipients)),
		TopLocations:  slices.Clone(Truncate(locs, overviewTopLocations)),
		Recent:        recent(s.records, overviewRecent),
	}
}

// recent returns the n latest filings that carry a receipt date. Dates that
// do not parse rank below every real date.
func recent(records []core.Record, n int) []core.Record {
	dated := []core.Record{}
	for _, rec := range records {
		if rec.ReceiptDate != "" {
			dated = append(dated, rec)
		}
	}
	keys := make(map[string]int64, len(dated))
	for _, rec := range dated {
		if _, ok := keys[rec.ReceiptDate]; !ok {
			keys[rec.ReceiptDate] = core.DateKey(rec.ReceiptDate)
		}
	}
	slices.SortStableFunc(dated, func(a, b core.Record) int {
		return cmp.Compare(keys[b.ReceiptDate], keys[a.ReceiptDate])
	})
	return slices.Clone(Truncate(dated, n))
}
