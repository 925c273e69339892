package engine

import (
	"strings"

	"filings/internal/core"
)

// containsAny reports whether any candidate contains needle, ignoring case.
// needle must already be lowercased; an empty needle matches everything.
func containsAny(needle string, candidates ...string) bool {
	if needle == "" {
		return true
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	return false
}

func choiceMatches(selected, value string) bool {
	return selected == All || selected == value
}

// FilterRecords keeps the filings matching q. Search covers contributor,
// recipient, city, state and office, plus employer when q.MatchEmployer is set.
func FilterRecords(records []core.Record, q RecordQuery) []core.Record {
	q = q.Normalize()
	var out []core.Record
	for _, rec := range records {
		if !choiceMatches(q.Type, rec.ContributionType) || !choiceMatches(q.Mode, rec.ContributionMode) {
			continue
		}
		employer := ""
		if q.MatchEmployer {
			employer = rec.Employer
		}
		if !containsAny(q.Search, rec.ContributorFullName, rec.RecipientFullName, rec.City, rec.State, rec.OfficeSought, employer) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// FilterContributors keeps the rollups whose name matches q. With
// q.MatchEmployer, any employer listed on the contributor's filings also
// counts; employers is keyed by contributor key.
func FilterContributors(totals []core.ContributorTotal, q ContributorQuery, employers map[string][]string) []core.ContributorTotal {
	q = q.Normalize()
	var out []core.ContributorTotal
	for _, t := range totals {
		if containsAny(q.Search, t.FullName) || (q.MatchEmployer && containsAny(q.Search, employers[t.Key]...)) {
			out = append(out, t)
		}
	}
	return out
}

// FilterRecipients keeps the aggregates matching the name search and office.
func FilterRecipients(aggs []core.RecipientAggregate, q RecipientQuery) []core.RecipientAggregate {
	q = q.Normalize()
	var out []core.RecipientAggregate
	for _, a := range aggs {
		if choiceMatches(q.Office, a.Office) && containsAny(q.Search, a.Name) {
			out = append(out, a)
		}
	}
	return out
}
