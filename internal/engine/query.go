package engine

import (
	"fmt"
	"slices"
	"strings"
)

// All is the categorical filter value that lets every entry through.
const All = "all"

// Display caps per list kind.
const (
	RecordLimit      = 500
	ContributorLimit = 500
	RecipientLimit   = 200
	DateGroupLimit   = 50
)

// View identifies the collection a query runs against.
type View string

const (
	ViewTotals     View = "totals"
	ViewRecords    View = "records"
	ViewRecipients View = "recipients"
)

// SortField names the attribute a list is ordered by.
type SortField string

const (
	SortAmount      SortField = "amount"
	SortContributor SortField = "contributor"
	SortRecipient   SortField = "recipient"
)

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps any value other than "asc" to Desc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Asc)) {
		return Asc
	}
	return Desc
}

var sortFields = map[View][]SortField{
	ViewTotals:     {SortAmount, SortContributor},
	ViewRecords:    {SortAmount, SortContributor, SortRecipient},
	ViewRecipients: {SortAmount, SortRecipient},
}

// ValidSortFields lists the sort fields offered for a view.
func ValidSortFields(v View) []SortField {
	return slices.Clone(sortFields[v])
}

// ResolveSort keeps field when the view supports it and falls back to
// SortAmount otherwise.
func ResolveSort(v View, field SortField) SortField {
	if slices.Contains(sortFields[v], field) {
		return field
	}
	return SortAmount
}

func normalizeChoice(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, All) {
		return All
	}
	return s
}

func normalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RecordQuery selects filings for the records list.
type RecordQuery struct {
	Search        string
	Type          string
	Mode          string
	Sort          SortField
	Direction     Direction
	MatchEmployer bool
}

// Normalize resolves defaults so equal queries compare and hash equally.
func (q RecordQuery) Normalize() RecordQuery {
	q.Search = normalizeSearch(q.Search)
	q.Type = normalizeChoice(q.Type)
	q.Mode = normalizeChoice(q.Mode)
	q.Sort = ResolveSort(ViewRecords, q.Sort)
	if q.Direction != Asc {
		q.Direction = Desc
	}
	return q
}

func (q RecordQuery) key() string {
	return fmt.Sprintf("records|%q|%q|%q|%s|%s|%t", q.Search, q.Type, q.Mode, q.Sort, q.Direction, q.MatchEmployer)
}

// ContributorQuery selects contributor rollups. It also defines the
// contributor set used for date fan-out.
type ContributorQuery struct {
	Search        string
	Sort          SortField
	Direction     Direction
	MatchEmployer bool
}

// Normalize resolves defaults so equal queries compare and hash equally.
func (q ContributorQuery) Normalize() ContributorQuery {
	q.Search = normalizeSearch(q.Search)
	q.Sort = ResolveSort(ViewTotals, q.Sort)
	if q.Direction != Asc {
		q.Direction = Desc
	}
	return q
}

func (q ContributorQuery) key() string {
	return fmt.Sprintf("totals|%q|%s|%s|%t", q.Search, q.Sort, q.Direction, q.MatchEmployer)
}

// fanoutKey ignores ordering, which has no effect on the grouped result.
func (q ContributorQuery) fanoutKey() string {
	return fmt.Sprintf("dates|%q|%t", q.Search, q.MatchEmployer)
}

// RecipientQuery selects recipient aggregates.
type RecipientQuery struct {
	Search    string
	Office    string
	Sort      SortField
	Direction Direction
}

// Normalize resolves defaults so equal queries compare and hash equally.
func (q RecipientQuery) Normalize() RecipientQuery {
	q.Search = normalizeSearch(q.Search)
	q.Office = normalizeChoice(q.Office)
	q.Sort = ResolveSort(ViewRecipients, q.Sort)
	if q.Direction != Asc {
		q.Direction = Desc
	}
	return q
}

func (q RecipientQuery) key() string {
	return fmt.Sprintf("recipients|%q|%q|%s|%s", q.Search, q.Office, q.Sort, q.Direction)
}
