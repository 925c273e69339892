package main

import (
	"io"

	"github.com/spf13/cobra"

	"filings/internal/engine"
	"filings/internal/report"
)

// queryFlags are the list filters. Each view registers the subset it reads.
type queryFlags struct {
	search    string
	typ       string
	mode      string
	office    string
	sort      string
	direction string
	employer  bool
	format    string
}

func (f *queryFlags) registerSearch(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "Case-insensitive substring filter")
	cmd.Flags().StringVar(&f.sort, "sort", string(engine.SortAmount), "Sort field (amount, contributor, recipient)")
	cmd.Flags().StringVar(&f.direction, "direction", string(engine.Desc), "Sort direction (asc, desc)")
}

func (f *queryFlags) registerRecord(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.typ, "type", engine.All, "Contribution type filter")
	cmd.Flags().StringVar(&f.mode, "mode", engine.All, "Contribution mode filter")
}

func (f *queryFlags) registerEmployer(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.employer, "employer", false, "Also match the search against contributor employers")
}

func (f *queryFlags) registerRecipient(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.office, "office", engine.All, "Office sought filter")
}

func (f *queryFlags) registerFormat(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "o", string(report.FormatTable), "Output format (table, json, yaml)")
}

func (f *queryFlags) recordQuery() engine.RecordQuery {
	return engine.RecordQuery{
		Search:        f.search,
		Type:          f.typ,
		Mode:          f.mode,
		Sort:          engine.SortField(f.sort),
		Direction:     engine.ParseDirection(f.direction),
		MatchEmployer: f.employer,
	}.Normalize()
}

func (f *queryFlags) contributorQuery() engine.ContributorQuery {
	return engine.ContributorQuery{
		Search:        f.search,
		Sort:          engine.SortField(f.sort),
		Direction:     engine.ParseDirection(f.direction),
		MatchEmployer: f.employer,
	}.Normalize()
}

func (f *queryFlags) recipientQuery() engine.RecipientQuery {
	return engine.RecipientQuery{
		Search:    f.search,
		Office:    f.office,
		Sort:      engine.SortField(f.sort),
		Direction: engine.ParseDirection(f.direction),
	}.Normalize()
}

// render prints v in the chosen format, using table for the human layout.
func render(w io.Writer, format string, v any, table func(io.Writer) error) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	if f == report.FormatTable {
		return table(w)
	}
	return report.Encode(w, f, v)
}

func queryCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "List filings, contributors, recipients or filing dates",
	}
	cmd.AddCommand(queryRecordsCmd(g))
	cmd.AddCommand(queryContributorsCmd(g))
	cmd.AddCommand(queryRecipientsCmd(g))
	cmd.AddCommand(queryDatesCmd(g))
	return cmd
}

func queryRecordsCmd(g *globals) *cobra.Command {
	f := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List individual filings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := g.engine(cmd)
			if err != nil {
				return err
			}
			page := eng.Records(f.recordQuery())
			return render(cmd.OutOrStdout(), f.format, page, func(w io.Writer) error {
				return report.Records(w, page)
			})
		},
	}
	f.registerSearch(cmd)
	f.registerRecord(cmd)
	f.registerEmployer(cmd)
	f.registerFormat(cmd)
	return cmd
}

func queryContributorsCmd(g *globals) *cobra.Command {
	f := &queryFlags{}
	cmd := &cobra.Command{
		Use:     "contributors",
		Aliases: []string{"totals"},
		Short:   "List contributor totals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := g.engine(cmd)
			if err != nil {
				return err
			}
			page := eng.Contributors(f.contributorQuery())
			return render(cmd.OutOrStdout(), f.format, page, func(w io.Writer) error {
				return report.Contributors(w, page)
			})
		},
	}
	f.registerSearch(cmd)
	f.registerEmployer(cmd)
	f.registerFormat(cmd)
	return cmd
}

func queryRecipientsCmd(g *globals) *cobra.Command {
	f := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "recipients",
		Short: "List recipients with their received totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := g.engine(cmd)
			if err != nil {
				return err
			}
			page := eng.Recipients(f.recipientQuery())
			return render(cmd.OutOrStdout(), f.format, page, func(w io.Writer) error {
				return report.Recipients(w, page)
			})
		},
	}
	f.registerSearch(cmd)
	f.registerRecipient(cmd)
	f.registerFormat(cmd)
	return cmd
}

func queryDatesCmd(g *globals) *cobra.Command {
	f := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Group the filings of matching contributors by receipt date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := g.engine(cmd)
			if err != nil {
				return err
			}
			page := eng.DateGroups(f.contributorQuery())
			return render(cmd.OutOrStdout(), f.format, page, func(w io.Writer) error {
				return report.DateGroups(w, page)
			})
		},
	}
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "Case-insensitive contributor filter")
	f.registerEmployer(cmd)
	f.registerFormat(cmd)
	return cmd
}
