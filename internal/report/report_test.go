package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"filings/internal/core"
	"filings/internal/engine"
)

func sampleRecords() []core.Record {
	return core.NormalizeAll([]core.RawRow{
		{
			core.FieldContributorFirstName: "Jane", core.FieldContributorLastName: "Doe",
			core.FieldRecipientFirstName: "John", core.FieldRecipientLastName: "Smith",
			core.FieldAmount: "1234.5", core.FieldReceiptDate: "2024-01-05",
			core.FieldCity: "Providence", core.FieldState: "RI",
		},
		{
			core.FieldContributorFirstName: "Bob", core.FieldContributorLastName: "Stone",
			core.FieldRecipientFirstName: "Ann", core.FieldRecipientLastName: "Lee",
			core.FieldAmount: "10", core.FieldReceiptDate: "2024-01-06",
		},
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"TABLE", FormatTable, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestMoney(t *testing.T) {
	tests := map[float64]string{
		0:         "$0.00",
		10:        "$10.00",
		1234.5:    "$1,234.50",
		-5:        "-$5.00",
		1000000.1: "$1,000,000.10",
	}
	for in, want := range tests {
		if got := Money(in); got != want {
			t.Errorf("Money(%v) = %q, want %q", in, got, want)
		}
	}
	if got := Count(12345); got != "12,345" {
		t.Errorf("Count = %q", got)
	}
}

func TestEncode(t *testing.T) {
	page := engine.Page[core.Record]{Items: sampleRecords(), Total: 2, Available: 2, Limit: 500, Amount: 1244.5}

	var js bytes.Buffer
	if err := Encode(&js, FormatJSON, page); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back engine.Page[core.Record]
	if err := json.Unmarshal(js.Bytes(), &back); err != nil || back.Total != 2 || back.Items[0].ContributorFullName != "Jane Doe" {
		t.Fatalf("json round trip: %+v (%v)", back, err)
	}

	var ym bytes.Buffer
	if err := Encode(&ym, FormatYAML, page); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(ym.String(), "contributorFullName: Jane Doe") {
		t.Errorf("yaml output missing field:\n%s", ym.String())
	}
	var decoded map[string]any
	if err := yaml.Unmarshal(ym.Bytes(), &decoded); err != nil || decoded["total"] != 2 {
		t.Errorf("yaml decode: %v %v", decoded["total"], err)
	}

	if err := Encode(&js, FormatTable, page); err == nil {
		t.Errorf("table is not an encoding")
	}
}

func TestRecordsTable(t *testing.T) {
	recs := sampleRecords()
	var buf bytes.Buffer
	if err := Records(&buf, engine.Page[core.Record]{Items: recs[:1], Total: 2, Amount: 1244.5}); err != nil {
		t.Fatalf("Records: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"CONTRIBUTOR", "Jane Doe", "$1,234.50", "Providence, RI", "Showing the first 1 of 2 filings. Total $1,244.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOtherTables(t *testing.T) {
	var buf bytes.Buffer
	totals := engine.Page[core.ContributorTotal]{
		Items: []core.ContributorTotal{{Key: "jane-doe", FullName: "Jane Doe", TotalAmount: 50, ContributionCount: 2}},
		Total: 1, Amount: 50,
	}
	if err := Contributors(&buf, totals); err != nil {
		t.Fatalf("Contributors: %v", err)
	}
	if !strings.Contains(buf.String(), "jane-doe") || !strings.Contains(buf.String(), "1 contributors. Total $50.00") {
		t.Errorf("unexpected contributors output:\n%s", buf.String())
	}

	buf.Reset()
	recips := engine.Page[core.RecipientAggregate]{
		Items: []core.RecipientAggregate{{Name: "John Smith", Total: 30, Count: 3, Office: "Governor"}},
		Total: 1, Amount: 30,
	}
	if err := Recipients(&buf, recips); err != nil {
		t.Fatalf("Recipients: %v", err)
	}
	if !strings.Contains(buf.String(), "$10.00") {
		t.Errorf("average missing:\n%s", buf.String())
	}

	buf.Reset()
	recs := sampleRecords()
	groups := engine.Page[core.DateGroup]{
		Items: []core.DateGroup{
			{DateLabel: "2024-01-06", TotalAmount: 10, Entries: recs[1:]},
			{DateLabel: "2024-01-05", TotalAmount: 1234.5, Entries: recs[:1]},
		},
		Total: 2, Amount: 1244.5,
	}
	if err := DateGroups(&buf, groups); err != nil {
		t.Fatalf("DateGroups: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "2024-01-06") > strings.Index(out, "2024-01-05") {
		t.Errorf("groups out of order:\n%s", out)
	}
}

func TestWorkbook(t *testing.T) {
	wb, err := NewWorkbook()
	if err != nil {
		t.Fatalf("NewWorkbook: %v", err)
	}
	defer wb.Close()

	recs := sampleRecords()
	if err := wb.AddRecords("Records", recs); err != nil {
		t.Fatalf("AddRecords: %v", err)
	}
	if err := wb.AddContributors("Contributors", []core.ContributorTotal{{Key: "jane-doe", FullName: "Jane Doe"}}); err != nil {
		t.Fatalf("AddContributors: %v", err)
	}
	if err := wb.AddRecipients("Recipients", engine.BuildRecipients(recs)); err != nil {
		t.Fatalf("AddRecipients: %v", err)
	}
	if err := wb.AddDateGroups("Dates", engine.GroupByDate(map[string]struct{}{"jane-doe": {}}, recs)); err != nil {
		t.Fatalf("AddDateGroups: %v", err)
	}

	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if strings.Join(sheets, ",") != "Records,Contributors,Recipients,Dates" {
		t.Fatalf("sheets = %v", sheets)
	}
	rows, err := f.GetRows("Records")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 || rows[0][1] != "Contributor" || rows[1][1] != "Jane Doe" || rows[2][2] != "Ann Lee" {
		t.Fatalf("unexpected rows %v", rows)
	}
	dates, _ := f.GetRows("Dates")
	if len(dates) != 2 || dates[1][0] != "2024-01-05" {
		t.Fatalf("unexpected date rows %v", dates)
	}
}

func TestEmptyWorkbook(t *testing.T) {
	wb, err := NewWorkbook()
	if err != nil {
		t.Fatalf("NewWorkbook: %v", err)
	}
	defer wb.Close()
	if _, err := wb.WriteTo(&bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for a workbook without sheets")
	}
}
