package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"filings/internal/core"
	"filings/internal/engine"
	"filings/internal/report"
)

func detailCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detail",
		Short: "Show every filing of one contributor or recipient",
	}
	cmd.AddCommand(detailContributorCmd(g))
	cmd.AddCommand(detailRecipientCmd(g))
	return cmd
}

func detailContributorCmd(g *globals) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "contributor <slug>",
		Short: "Show the filings of a contributor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := g.engine(cmd)
			if err != nil {
				return err
			}
			d := eng.ContributorDetail(args[0])
			return render(cmd.OutOrStdout(), format, d, func(w io.Writer) error {
				return detailTable(w, d.Name, d.Found, d.Total, d.Records,
					"Recipients", d.Recipients, "Offices", d.Offices)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", string(report.FormatTable), "Output format (table, json, yaml)")
	return cmd
}

func detailRecipientCmd(g *globals) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "recipient <slug>",
		Short: "Show the filings received by a recipient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := g.engine(cmd)
			if err != nil {
				return err
			}
			d := eng.RecipientDetail(args[0])
			return render(cmd.OutOrStdout(), format, d, func(w io.Writer) error {
				return detailTable(w, d.Name, d.Found, d.Total, d.Records,
					"Contributors", d.Contributors, "Offices", d.Offices)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", string(report.FormatTable), "Output format (table, json, yaml)")
	return cmd
}

func detailTable(w io.Writer, name string, found bool, total float64, recs []core.Record, labels ...any) error {
	if !found {
		_, err := fmt.Fprintf(w, "No filings found for %q.\n", name)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\nTotal: %s\n", name, report.Money(total)); err != nil {
		return err
	}
	for i := 0; i+1 < len(labels); i += 2 {
		values, _ := labels[i+1].([]string)
		if len(values) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", labels[i], strings.Join(values, ", ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return report.Records(w, engine.Page[core.Record]{
		Items:     recs,
		Total:     len(recs),
		Available: len(recs),
		Limit:     len(recs),
		Amount:    total,
	})
}
