package engine

import (
	"slices"
	"sync"
	"time"

	"filings/internal/cache"
	"filings/internal/core"
	applog "filings/internal/log"
	"filings/internal/slug"
)

// DefaultCacheSize bounds each memo cache when no size is configured.
const DefaultCacheSize = 256

// QueryRecords filters, sorts and caps the filings.
func (s *Snapshot) QueryRecords(q RecordQuery) Page[core.Record] {
	q = q.Normalize()
	sorted := SortRecords(FilterRecords(s.records, q), q.Sort, q.Direction)
	return newPage(sorted, RecordLimit, len(s.records), core.Total(sorted, recordAmount))
}

// QueryContributors filters, sorts and caps the contributor rollups.
func (s *Snapshot) QueryContributors(q ContributorQuery) Page[core.ContributorTotal] {
	q = q.Normalize()
	sorted := SortContributors(FilterContributors(s.totals, q, s.employers), q.Sort, q.Direction)
	amount := core.Total(sorted, func(t core.ContributorTotal) float64 { return t.TotalAmount })
	return newPage(sorted, ContributorLimit, len(s.totals), amount)
}

// QueryRecipients filters, sorts and caps the recipient aggregates.
func (s *Snapshot) QueryRecipients(q RecipientQuery) Page[core.RecipientAggregate] {
	q = q.Normalize()
	sorted := SortRecipients(FilterRecipients(s.recipients, q), q.Sort, q.Direction)
	amount := core.Total(sorted, func(a core.RecipientAggregate) float64 { return a.Total })
	return newPage(sorted, RecipientLimit, len(s.recipients), amount)
}

// QueryDateGroups fans the contributors selected by q out by receipt date.
// Every matching contributor takes part, not only those within the
// contributor list cap.
func (s *Snapshot) QueryDateGroups(q ContributorQuery) Page[core.DateGroup] {
	q = q.Normalize()
	matched := FilterContributors(s.totals, q, s.employers)
	keys := make(map[string]struct{}, len(matched))
	for _, t := range matched {
		keys[t.Key] = struct{}{}
	}
	groups := GroupByDate(keys, s.records)
	return newPage(groups, DateGroupLimit, len(groups), totalOfGroups(groups))
}

// ContributorKeys returns the keys of every contributor selected by q.
func (s *Snapshot) ContributorKeys(q ContributorQuery) []string {
	matched := FilterContributors(s.totals, q, s.employers)
	keys := make([]string, len(matched))
	for i, t := range matched {
		keys[i] = t.Key
	}
	return keys
}

// Engine memoizes query results over one Snapshot. Cached pages are keyed by
// the normalized query, so repeated queries return identical results without
// recomputation. It is safe for concurrent use.
type Engine struct {
	snap   *Snapshot
	logger *applog.Logger

	records      *cache.LRUCache[Page[core.Record]]
	contributors *cache.LRUCache[Page[core.ContributorTotal]]
	recipients   *cache.LRUCache[Page[core.RecipientAggregate]]
	dates        *cache.LRUCache[Page[core.DateGroup]]

	overviewOnce sync.Once
	overview     Overview
}

// New wraps snap with memo caches of cacheSize entries each.
func New(snap *Snapshot, cacheSize int, logger *applog.Logger) *Engine {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Engine{
		snap:         snap,
		logger:       logger.WithComponent(applog.ComponentEngine),
		records:      cache.NewLRUCache[Page[core.Record]](cacheSize, 0),
		contributors: cache.NewLRUCache[Page[core.ContributorTotal]](cacheSize, 0),
		recipients:   cache.NewLRUCache[Page[core.RecipientAggregate]](cacheSize, 0),
		dates:        cache.NewLRUCache[Page[core.DateGroup]](cacheSize, 0),
	}
}

// Snapshot returns the underlying dataset.
func (e *Engine) Snapshot() *Snapshot { return e.snap }

// Records returns the filings page for q.
func (e *Engine) Records(q RecordQuery) Page[core.Record] {
	q = q.Normalize()
	return memo(e, e.records, q.key(), func() Page[core.Record] { return e.snap.QueryRecords(q) })
}

// Contributors returns the contributor rollup page for q.
func (e *Engine) Contributors(q ContributorQuery) Page[core.ContributorTotal] {
	q = q.Normalize()
	return memo(e, e.contributors, q.key(), func() Page[core.ContributorTotal] { return e.snap.QueryContributors(q) })
}

// Recipients returns the recipient aggregate page for q.
func (e *Engine) Recipients(q RecipientQuery) Page[core.RecipientAggregate] {
	q = q.Normalize()
	return memo(e, e.recipients, q.key(), func() Page[core.RecipientAggregate] { return e.snap.QueryRecipients(q) })
}

// DateGroups returns the receipt date fan-out for the contributors of q.
func (e *Engine) DateGroups(q ContributorQuery) Page[core.DateGroup] {
	q = q.Normalize()
	return memo(e, e.dates, q.fanoutKey(), func() Page[core.DateGroup] { return e.snap.QueryDateGroups(q) })
}

// ContributorDetail looks up one contributor key.
func (e *Engine) ContributorDetail(key string) ContributorDetail {
	return e.snap.ContributorDetail(slug.Make(key))
}

// RecipientDetail looks up one recipient key.
func (e *Engine) RecipientDetail(key string) RecipientDetail {
	return e.snap.RecipientDetail(slug.Make(key))
}

// Overview returns the dataset summary, computed on first use.
func (e *Engine) Overview() Overview {
	e.overviewOnce.Do(func() { e.overview = e.snap.Overview() })
	ov := e.overview
	ov.TopRecipients = slices.Clone(ov.TopRecipients)
	ov.TopLocations = slices.Clone(ov.TopLocations)
	ov.Recent = slices.Clone(ov.Recent)
	return ov
}

// CacheStats reports the memo caches by name.
func (e *Engine) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"records":      e.records.Stats(),
		"contributors": e.contributors.Stats(),
		"recipients":   e.recipients.Stats(),
		"dates":        e.dates.Stats(),
	}
}

func memo[T any](e *Engine, c *cache.LRUCache[Page[T]], key string, compute func() Page[T]) Page[T] {
	start := time.Now()
	page, hit := cache.Memoize[Page[T]](c, key, compute)
	e.logger.Debug("Query served",
		applog.FieldOperation, applog.OpQuery,
		applog.FieldCacheKey, key,
		applog.FieldCacheHit, hit,
		applog.FieldCount, page.Total,
		applog.FieldDuration, time.Since(start).Milliseconds())
	return page.clone()
}
