package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"filings/internal/core"
)

// Workbook collects result sheets and writes them as one XLSX file.
type Workbook struct {
	f      *excelize.File
	sheets int
	header int
	money  int
}

// NewWorkbook returns an empty workbook. Call Close when done.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	// 4 is the builtin "#,##0.00" format
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("amount style: %w", err)
	}
	return &Workbook{f: f, header: header, money: money}, nil
}

// Close releases the workbook's temporary files.
func (b *Workbook) Close() error { return b.f.Close() }

// Sheets lists the sheet names in order.
func (b *Workbook) Sheets() []string { return b.f.GetSheetList() }

// AddRecords adds a sheet of filings.
func (b *Workbook) AddRecords(name string, recs []core.Record) error {
	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = []any{
			r.ReceiptDate, r.ContributorFullName, r.RecipientFullName, b.amount(r.Amount),
			r.ContributionType, r.ContributionMode, r.OfficeSought, r.Employer, r.Place(),
		}
	}
	return b.addSheet(name,
		[]any{"Receipt Date", "Contributor", "Recipient", "Amount", "Type", "Mode", "Office", "Employer", "Place"},
		rows)
}

// AddContributors adds a sheet of contributor rollups.
func (b *Workbook) AddContributors(name string, totals []core.ContributorTotal) error {
	rows := make([][]any, len(totals))
	for i, t := range totals {
		rows[i] = []any{t.FullName, t.Key, b.amount(t.TotalAmount), t.ContributionCount}
	}
	return b.addSheet(name, []any{"Contributor", "Key", "Total", "Filings"}, rows)
}

// AddRecipients adds a sheet of recipient aggregates.
func (b *Workbook) AddRecipients(name string, aggs []core.RecipientAggregate) error {
	rows := make([][]any, len(aggs))
	for i, a := range aggs {
		rows[i] = []any{a.Name, a.Office, b.amount(a.Total), a.Count, b.amount(a.Average()), a.SampleLocation}
	}
	return b.addSheet(name, []any{"Recipient", "Office", "Total", "Filings", "Average", "Location"}, rows)
}

// AddDateGroups adds a sheet with one row per filing, labelled by group.
func (b *Workbook) AddDateGroups(name string, groups []core.DateGroup) error {
	var rows [][]any
	for _, g := range groups {
		for _, e := range g.Entries {
			rows = append(rows, []any{g.DateLabel, b.amount(g.TotalAmount), e.ContributorFullName, e.RecipientFullName, b.amount(e.Amount)})
		}
	}
	return b.addSheet(name, []any{"Receipt Date", "Date Total", "Contributor", "Recipient", "Amount"}, rows)
}

func (b *Workbook) amount(v float64) excelize.Cell {
	return excelize.Cell{StyleID: b.money, Value: v}
}

func (b *Workbook) addSheet(name string, header []any, rows [][]any) error {
	if b.sheets == 0 {
		if err := b.f.SetSheetName(b.f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else if _, err := b.f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}
	b.sheets++

	sw, err := b.f.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("stream writer %s: %w", name, err)
	}
	if err := sw.SetColWidth(1, len(header), 20); err != nil {
		return err
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: b.header}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return sw.Flush()
}

// WriteTo writes the workbook in XLSX format.
func (b *Workbook) WriteTo(w io.Writer) (int64, error) {
	if b.sheets == 0 {
		return 0, fmt.Errorf("workbook has no sheets")
	}
	b.f.SetActiveSheet(0)
	return b.f.WriteTo(w)
}
