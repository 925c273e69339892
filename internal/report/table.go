package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"filings/internal/core"
	"filings/internal/engine"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// footer reports the cap and the amount over every match.
func footer(w io.Writer, shown, total int, amount float64, noun string) error {
	var err error
	if shown < total {
		_, err = fmt.Fprintf(w, "\nShowing the first %s of %s %s. Total %s\n", Count(shown), Count(total), noun, Money(amount))
	} else {
		_, err = fmt.Fprintf(w, "\n%s %s. Total %s\n", Count(total), noun, Money(amount))
	}
	return err
}

// Records writes a filings page as a table.
func Records(w io.Writer, p engine.Page[core.Record]) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tCONTRIBUTOR\tRECIPIENT\tAMOUNT\tTYPE\tMODE\tPLACE")
	for _, r := range p.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ReceiptDate, r.ContributorFullName, r.RecipientFullName, Money(r.Amount),
			r.ContributionType, r.ContributionMode, r.Place())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return footer(w, len(p.Items), p.Total, p.Amount, "filings")
}

// Contributors writes a contributor rollup page as a table.
func Contributors(w io.Writer, p engine.Page[core.ContributorTotal]) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "CONTRIBUTOR\tKEY\tTOTAL\tFILINGS")
	for _, c := range p.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.FullName, c.Key, Money(c.TotalAmount), Count(c.ContributionCount))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return footer(w, len(p.Items), p.Total, p.Amount, "contributors")
}

// Recipients writes a recipient aggregate page as a table.
func Recipients(w io.Writer, p engine.Page[core.RecipientAggregate]) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "RECIPIENT\tOFFICE\tTOTAL\tFILINGS\tAVERAGE\tLOCATION")
	for _, r := range p.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.Office, Money(r.Total), Count(r.Count), Money(r.Average()), r.SampleLocation)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return footer(w, len(p.Items), p.Total, p.Amount, "recipients")
}

// DateGroups writes the date fan-out as one block per receipt date.
func DateGroups(w io.Writer, p engine.Page[core.DateGroup]) error {
	for i, g := range p.Items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %s  (%s filings)\n", g.DateLabel, Money(g.TotalAmount), Count(len(g.Entries)))
		tw := newTable(w)
		for _, e := range g.Entries {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.ContributorFullName, e.RecipientFullName, Money(e.Amount))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return footer(w, len(p.Items), p.Total, p.Amount, "dates")
}
