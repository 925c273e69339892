package engine

import (
	"slices"

	"filings/internal/core"
	"filings/internal/slug"
)

// ContributorDetail gathers the filings of one contributor key.
type ContributorDetail struct {
	Key        string                 `json:"key" yaml:"key"`
	Name       string                 `json:"name" yaml:"name"`
	Found      bool                   `json:"found" yaml:"found"`
	Total      float64                `json:"total" yaml:"total"`
	Recipients []string               `json:"recipients" yaml:"recipients"`
	Offices    []string               `json:"offices" yaml:"offices"`
	Rollup     *core.ContributorTotal `json:"rollup,omitempty" yaml:"rollup,omitempty"`
	Records    []core.Record          `json:"records" yaml:"records"`
}

// RecipientDetail gathers the filings received by one recipient key.
type RecipientDetail struct {
	Key          string        `json:"key" yaml:"key"`
	Name         string        `json:"name" yaml:"name"`
	Found        bool          `json:"found" yaml:"found"`
	Total        float64       `json:"total" yaml:"total"`
	Contributors []string      `json:"contributors" yaml:"contributors"`
	Offices      []string      `json:"offices" yaml:"offices"`
	Records      []core.Record `json:"records" yaml:"records"`
}

// ContributorDetail returns every filing whose contributor name maps to key.
// A key with no filings is reported with Found false, never as an error; a
// rollup entry under the same key is attached when present.
func (s *Snapshot) ContributorDetail(key string) ContributorDetail {
	recs := matching(s.records, key, func(r core.Record) string { return r.ContributorFullName })
	d := ContributorDetail{
		Key:        key,
		Name:       displayName(recs, key, func(r core.Record) string { return r.ContributorFullName }),
		Found:      len(recs) > 0,
		Total:      core.Total(recs, recordAmount),
		Recipients: firstSeen(recs, func(r core.Record) string { return r.RecipientFullName }),
		Offices:    firstSeen(recs, func(r core.Record) string { return r.OfficeSought }),
		Records:    recs,
	}
	if t, ok := s.Contributor(key); ok {
		d.Rollup = &t
	}
	return d
}

// RecipientDetail returns every filing whose recipient name maps to key.
func (s *Snapshot) RecipientDetail(key string) RecipientDetail {
	recs := matching(s.records, key, func(r core.Record) string { return r.RecipientFullName })
	return RecipientDetail{
		Key:          key,
		Name:         displayName(recs, key, func(r core.Record) string { return r.RecipientFullName }),
		Found:        len(recs) > 0,
		Total:        core.Total(recs, recordAmount),
		Contributors: firstSeen(recs, func(r core.Record) string { return r.ContributorFullName }),
		Offices:      firstSeen(recs, func(r core.Record) string { return r.OfficeSought }),
		Records:      recs,
	}
}

func recordAmount(r core.Record) float64 { return r.Amount }

func matching(records []core.Record, key string, name func(core.Record) string) []core.Record {
	out := []core.Record{}
	for _, rec := range records {
		if slug.Make(name(rec)) == key {
			out = append(out, rec)
		}
	}
	return out
}

func displayName(recs []core.Record, key string, name func(core.Record) string) string {
	if len(recs) > 0 {
		return name(recs[0])
	}
	return slug.Title(key)
}

func firstSeen(recs []core.Record, field func(core.Record) string) []string {
	out := []string{}
	for _, rec := range recs {
		if v := field(rec); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
