package engine

import (
	"fmt"

	"filings/internal/core"
	"filings/internal/slug"
)

func row(first, last, recipFirst, recipLast, amount, date string) core.RawRow {
	return core.RawRow{
		core.FieldContributorFirstName: first,
		core.FieldContributorLastName:  last,
		core.FieldRecipientFirstName:   recipFirst,
		core.FieldRecipientLastName:    recipLast,
		core.FieldAmount:               amount,
		core.FieldReceiptDate:          date,
	}
}

func with(r core.RawRow, kv ...string) core.RawRow {
	for i := 0; i+1 < len(kv); i += 2 {
		r[kv[i]] = kv[i+1]
	}
	return r
}

// rollupOf computes a totals document for rows the way the ETL does.
func rollupOf(records []core.Record) map[string]core.RawTotal {
	out := map[string]core.RawTotal{}
	for _, r := range records {
		k := slug.Make(r.ContributorFullName)
		t := out[k]
		if t.FullName == "" {
			t.FullName = r.ContributorFullName
		}
		t.TotalAmount += r.Amount
		t.ContributionCount++
		out[k] = t
	}
	return out
}

func fixture() *Snapshot {
	rows := []core.RawRow{
		with(row("Jane", "Doe", "John", "Smith", "100", "2024-01-05"),
			core.FieldCity, "Providence", core.FieldState, "RI", core.FieldOfficeSought, "Governor",
			core.FieldContributionType, "Individual", core.FieldContributionMode, "Check", core.FieldEmployer, "Acme Corp"),
		with(row("Jane", "Doe", "Ann", "Lee", "50", "2024-01-05"),
			core.FieldCity, "Newport", core.FieldState, "RI", core.FieldOfficeSought, "Senate",
			core.FieldContributionType, "Individual", core.FieldContributionMode, "Credit Card"),
		with(row("Bob", "Stone", "John", "Smith", "75.25", "01/10/2024"),
			core.FieldCity, "Providence", core.FieldState, "RI", core.FieldOfficeSought, "Governor",
			core.FieldContributionType, "Individual", core.FieldContributionMode, "Check", core.FieldEmployer, "Stone LLC"),
		with(row("", "", "Ann", "Lee", "", ""),
			core.FieldFromOrganizationName, "Acme PAC", core.FieldLocation, "Out of state",
			core.FieldContributionType, "PAC", core.FieldContributionMode, "Check"),
		with(row("Bob", "Stone", "", "", "abc", "not a date"),
			core.FieldContributionType, "Individual"),
		with(row("Zoë", "Álvarez", "John", "Smith", "-5", "2023-12-31"),
			core.FieldCity, "Warwick", core.FieldState, "RI", core.FieldContributionMode, "Cash"),
	}
	recs := core.NormalizeAll(rows)
	return NewSnapshot(recs, rollupOf(recs))
}

func names(recs []core.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = fmt.Sprintf("%s>%s", r.ContributorFullName, r.RecipientFullName)
	}
	return out
}
