package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	applog "filings/internal/log"
	"filings/internal/report"
)

// Sheet names, also accepted by --view.
const (
	sheetRecords      = "Records"
	sheetContributors = "Contributors"
	sheetRecipients   = "Recipients"
	sheetDates        = "Dates"
)

var exportViews = map[string]string{
	"records":      sheetRecords,
	"contributors": sheetContributors,
	"recipients":   sheetRecipients,
	"dates":        sheetDates,
}

// resolveViews maps --view values to sheet names in a fixed order. An empty
// list selects every view.
func resolveViews(views []string) ([]string, error) {
	order := []string{sheetRecords, sheetContributors, sheetRecipients, sheetDates}
	if len(views) == 0 {
		return order, nil
	}
	selected := map[string]bool{}
	for _, v := range views {
		sheet, ok := exportViews[v]
		if !ok {
			return nil, fmt.Errorf("unknown view %q", v)
		}
		selected[sheet] = true
	}
	return slices.DeleteFunc(order, func(s string) bool { return !selected[s] }), nil
}

func exportCmd(g *globals) *cobra.Command {
	var (
		out   string
		views []string
	)
	f := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered lists to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := resolveViews(views)
			if err != nil {
				return err
			}
			eng, err := g.engine(cmd)
			if err != nil {
				return err
			}

			wb, err := report.NewWorkbook()
			if err != nil {
				return err
			}
			defer wb.Close()

			for _, sheet := range sheets {
				switch sheet {
				case sheetRecords:
					err = wb.AddRecords(sheet, eng.Records(f.recordQuery()).Items)
				case sheetContributors:
					err = wb.AddContributors(sheet, eng.Contributors(f.contributorQuery()).Items)
				case sheetRecipients:
					err = wb.AddRecipients(sheet, eng.Recipients(f.recipientQuery()).Items)
				case sheetDates:
					err = wb.AddDateGroups(sheet, eng.DateGroups(f.contributorQuery()).Items)
				}
				if err != nil {
					return fmt.Errorf("write %s sheet: %w", sheet, err)
				}
			}

			file, err := os.Create(out)
			if err != nil {
				return err
			}
			if _, err := wb.WriteTo(file); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}

			g.logger(cmd).Info("Workbook written",
				applog.FieldOperation, applog.OpExport,
				"path", out,
				"sheets", sheets)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return err
		},
	}
	cmd.Flags().StringVar(&out, "out", "filings.xlsx", "Destination workbook")
	cmd.Flags().StringSliceVar(&views, "view", nil, "Views to include (records, contributors, recipients, dates); default all")
	f.registerSearch(cmd)
	f.registerRecord(cmd)
	f.registerRecipient(cmd)
	f.registerEmployer(cmd)
	return cmd
}
