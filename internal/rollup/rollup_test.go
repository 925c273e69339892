package rollup

import (
	"bytes"
	"encoding/json"
	"testing"

	"filings/internal/core"
	"filings/internal/engine"
	"filings/internal/slug"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		row  core.RawRow
		want string
	}{
		{"person", core.RawRow{core.FieldContributorFirstName: "Jane", core.FieldContributorLastName: "Doe"}, "jane-doe"},
		{"organization", core.RawRow{core.FieldFromOrganizationName: "Acme PAC"}, "acme-pac"},
		{"person wins over organization", core.RawRow{core.FieldContributorLastName: "Doe", core.FieldFromOrganizationName: "Acme PAC"}, "doe"},
		{"nothing", core.RawRow{}, "unknown-contributor"},
		{"blank name parts", core.RawRow{core.FieldContributorFirstName: "  ", core.FieldFromOrganizationName: " "}, "unknown-contributor"},
		{"name without latin letters", core.RawRow{core.FieldContributorFirstName: "李", core.FieldContributorLastName: "明"}, slug.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.row); got != tt.want {
				t.Fatalf("Key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	rows := []core.RawRow{
		{core.FieldContributorFirstName: "Jane", core.FieldContributorLastName: "Doe", core.FieldAmount: "100"},
		{core.FieldContributorFirstName: "JANE", core.FieldContributorLastName: "DOE", core.FieldAmount: "50"},
		{core.FieldFromOrganizationName: "Acme PAC", core.FieldAmount: "abc"},
		{core.FieldAmount: "7"},
	}
	totals := Build(rows)

	jane := totals["jane-doe"]
	if jane.FullName != "Jane Doe" || jane.TotalAmount != 150 || jane.ContributionCount != 2 {
		t.Fatalf("unexpected jane-doe total %+v", jane)
	}
	if acme := totals["acme-pac"]; acme.TotalAmount != 0 || acme.ContributionCount != 1 {
		t.Fatalf("unexpected acme-pac total %+v", acme)
	}
	if unknown := totals[slug.Make(core.UnknownContributor)]; unknown.FullName != core.UnknownContributor || unknown.TotalAmount != 7 {
		t.Fatalf("unexpected unknown total %+v", unknown)
	}
}

func TestBuildJoinsWithSnapshot(t *testing.T) {
	rows := []core.RawRow{
		{core.FieldContributorFirstName: "José", core.FieldContributorLastName: "Núñez", core.FieldAmount: "10", core.FieldReceiptDate: "2024-02-01"},
		{core.FieldFromOrganizationName: "Acme PAC", core.FieldAmount: "5", core.FieldReceiptDate: "2024-02-02"},
		{core.FieldAmount: "40", core.FieldReceiptDate: "2024-02-03"},
		{core.FieldContributorFirstName: "李", core.FieldContributorLastName: "明", core.FieldAmount: "3"},
	}
	snap := engine.FromRaw(rows, Build(rows))
	for _, tot := range snap.Contributors() {
		d := snap.ContributorDetail(tot.Key)
		if !d.Found {
			t.Fatalf("rollup key %q does not join to any record", tot.Key)
		}
		if d.Total != tot.TotalAmount {
			t.Fatalf("key %q: detail total %v != rollup %v", tot.Key, d.Total, tot.TotalAmount)
		}
	}
}

func TestBuildUnnamedRowReachesFanOut(t *testing.T) {
	rows := []core.RawRow{
		{core.FieldAmount: "40", core.FieldReceiptDate: "2024-02-03"},
		{core.FieldContributorFirstName: "Jane", core.FieldContributorLastName: "Doe", core.FieldAmount: "10", core.FieldReceiptDate: "2024-02-01"},
	}
	snap := engine.FromRaw(rows, Build(rows))

	d := snap.ContributorDetail(slug.Make(core.UnknownContributor))
	if !d.Found || len(d.Records) != 1 || d.Total != 40 {
		t.Fatalf("unnamed contributor detail = %+v", d)
	}

	contributors := snap.QueryContributors(engine.ContributorQuery{}.Normalize())
	dates := snap.QueryDateGroups(engine.ContributorQuery{}.Normalize())
	if contributors.Amount != 50 || dates.Amount != contributors.Amount {
		t.Fatalf("contributors amount %v, dates amount %v, want both 50", contributors.Amount, dates.Amount)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	totals := map[string]core.RawTotal{"b": {FullName: "B"}, "a": {FullName: "A", TotalAmount: 1.5, ContributionCount: 1}}
	if err := Write(&buf, totals); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var decoded map[string]core.RawTotal
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["a"].TotalAmount != 1.5 {
		t.Fatalf("unexpected decoded %+v", decoded)
	}
	if bytes.Index(buf.Bytes(), []byte(`"a"`)) > bytes.Index(buf.Bytes(), []byte(`"b"`)) {
		t.Fatalf("keys should be sorted")
	}
}
