package google

import (
	"testing"

	"filings/internal/core"
)

func TestParseRecords(t *testing.T) {
	values := [][]interface{}{
		{"Contributor First Name", "Contributor Last Name", "Amount", "", "City"},
		{"Jane", "Doe", 100.5, "ignored", " Providence "},
		{},
		{"", "", nil},
		{"Bob", "Stone", "abc"},
	}
	rows, err := parseRecords(values)
	if err != nil {
		t.Fatalf("parseRecords: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(rows), rows)
	}
	if rows[0][core.FieldAmount] != "100.5" || rows[0][core.FieldCity] != "Providence" {
		t.Fatalf("unexpected first row %v", rows[0])
	}
	if len(rows[0]) != 4 {
		t.Fatalf("blank header column must be skipped, got %v", rows[0])
	}
	if _, ok := rows[1][core.FieldCity]; ok {
		t.Fatalf("short rows must not invent cells")
	}
	rec := core.Normalize(rows[1], 1)
	if rec.ContributorFullName != "Bob Stone" || rec.Amount != 0 {
		t.Fatalf("unexpected normalized record %+v", rec)
	}
}

func TestParseRecordsEmpty(t *testing.T) {
	rows, err := parseRecords(nil)
	if err != nil || len(rows) != 0 {
		t.Fatalf("expected empty result, got %v %v", rows, err)
	}
	if _, err := parseRecords([][]interface{}{{"", nil}}); err == nil {
		t.Fatalf("expected error for blank header")
	}
}

func TestParseTotals(t *testing.T) {
	values := [][]interface{}{
		{"Key", "FullName", "TotalAmount", "ContributionCount"},
		{"jane-doe", "Jane Doe", 150.0, 2.0},
		{"", "Acme PAC", "25", "1"},
		{"", "", "", ""},
	}
	totals, err := parseTotals(values)
	if err != nil {
		t.Fatalf("parseTotals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 totals, got %v", totals)
	}
	if j := totals["jane-doe"]; j.TotalAmount != 150 || j.ContributionCount != 2 {
		t.Fatalf("unexpected jane-doe %+v", j)
	}
	if a := totals["acme-pac"]; a.FullName != "Acme PAC" || a.TotalAmount != 25 {
		t.Fatalf("missing key should derive from name, got %+v", a)
	}
}

func TestParseTotalsMissingColumns(t *testing.T) {
	_, err := parseTotals([][]interface{}{{"fullName", "amount"}})
	if err == nil {
		t.Fatalf("expected header error")
	}
	want := "unexpected totals header: missing totalAmount,contributionCount; got headers=[fullName amount]"
	if err.Error() != want {
		t.Fatalf("error = %q", err.Error())
	}
}
