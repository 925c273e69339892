// Package rollup builds the contributor totals document from raw filings.
package rollup

import (
	"encoding/json"
	"fmt"
	"io"

	"filings/internal/core"
	"filings/internal/slug"
)

// Key returns the rollup key of a raw row: the key of the contributor's
// resolved full name, so every entry joins back to its normalized records.
func Key(row core.RawRow) string {
	return slug.Make(fullName(row))
}

func fullName(row core.RawRow) string {
	return core.FullName(
		row.Get(core.FieldContributorFirstName),
		row.Get(core.FieldContributorLastName),
		row.Get(core.FieldFromOrganizationName),
		core.UnknownContributor,
	)
}

// Build sums amounts and counts filings per contributor key. The display name
// of an entry is the first name seen for its key.
func Build(rows []core.RawRow) map[string]core.RawTotal {
	sums := make(map[string]*core.Sum)
	out := make(map[string]core.RawTotal)
	for _, row := range rows {
		k := Key(row)
		t, ok := out[k]
		if !ok {
			t.FullName = fullName(row)
			sums[k] = &core.Sum{}
		}
		sums[k].Add(core.ParseAmount(row.Get(core.FieldAmount)))
		t.ContributionCount++
		out[k] = t
	}
	for k, t := range out {
		t.TotalAmount = sums[k].Float64()
		out[k] = t
	}
	return out
}

// Write encodes totals as an indented JSON object. encoding/json sorts map
// keys, so output is stable for the same input.
func Write(w io.Writer, totals map[string]core.RawTotal) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(totals); err != nil {
		return fmt.Errorf("encode contributor totals: %w", err)
	}
	return nil
}
