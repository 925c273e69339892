// This file turns URL query strings into engine queries. Unknown values are
// not rejected: they normalize the same way the engine does, so a bad sort
// field falls back to amount and a bad direction to descending.

package http

import (
	"net/url"

	"filings/internal/engine"
)

// Query parameter names.
const (
	ParamSearch    = "search"
	ParamType      = "type"
	ParamMode      = "mode"
	ParamOffice    = "office"
	ParamSort      = "sort"
	ParamDirection = "direction"
	ParamEmployer  = "employer"
)

const maxSearchLength = 200

func searchParam(query url.Values) string {
	s := sanitizeInput(query.Get(ParamSearch))
	if r := []rune(s); len(r) > maxSearchLength {
		s = string(r[:maxSearchLength])
	}
	return s
}

func sortParams(query url.Values) (engine.SortField, engine.Direction) {
	return engine.SortField(sanitizeInput(query.Get(ParamSort))),
		engine.ParseDirection(query.Get(ParamDirection))
}

// ParseRecordQuery reads the filings list query.
func ParseRecordQuery(query url.Values) engine.RecordQuery {
	field, dir := sortParams(query)
	return engine.RecordQuery{
		Search:        searchParam(query),
		Type:          sanitizeInput(query.Get(ParamType)),
		Mode:          sanitizeInput(query.Get(ParamMode)),
		Sort:          field,
		Direction:     dir,
		MatchEmployer: parseFlag(query.Get(ParamEmployer)),
	}.Normalize()
}

// ParseContributorQuery reads the contributor list query, which also selects
// the contributors for the date fan-out.
func ParseContributorQuery(query url.Values) engine.ContributorQuery {
	field, dir := sortParams(query)
	return engine.ContributorQuery{
		Search:        searchParam(query),
		Sort:          field,
		Direction:     dir,
		MatchEmployer: parseFlag(query.Get(ParamEmployer)),
	}.Normalize()
}

// ParseRecipientQuery reads the recipient list query.
func ParseRecipientQuery(query url.Values) engine.RecipientQuery {
	field, dir := sortParams(query)
	return engine.RecipientQuery{
		Search:    searchParam(query),
		Office:    sanitizeInput(query.Get(ParamOffice)),
		Sort:      field,
		Direction: dir,
	}.Normalize()
}
