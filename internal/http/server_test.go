package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"filings/internal/core"
	"filings/internal/engine"
	"filings/internal/loader"
	applog "filings/internal/log"
)

type fixedState struct{ state loader.State }

func (f fixedState) State() loader.State { return f.state }

func testEngine() *engine.Engine {
	rows := []core.RawRow{
		{
			core.FieldContributorFirstName: "Jane", core.FieldContributorLastName: "Doe",
			core.FieldRecipientFirstName: "John", core.FieldRecipientLastName: "Smith",
			core.FieldAmount: "100", core.FieldReceiptDate: "2024-01-05",
			core.FieldOfficeSought: "Governor", core.FieldContributionType: "Individual",
		},
		{
			core.FieldContributorFirstName: "Bob", core.FieldContributorLastName: "Stone",
			core.FieldRecipientFirstName: "John", core.FieldRecipientLastName: "Smith",
			core.FieldAmount: "50", core.FieldReceiptDate: "2024-01-06",
			core.FieldOfficeSought: "Governor", core.FieldContributionType: "Individual",
		},
		{
			core.FieldContributorFirstName: "Jane", core.FieldContributorLastName: "Doe",
			core.FieldRecipientFirstName: "Ann", core.FieldRecipientLastName: "Lee",
			core.FieldAmount: "25", core.FieldReceiptDate: "2024-01-05",
			core.FieldOfficeSought: "Senate", core.FieldContributionType: "Individual",
		},
	}
	totals := map[string]core.RawTotal{
		"jane-doe":  {FullName: "Jane Doe", TotalAmount: 125, ContributionCount: 2},
		"bob-stone": {FullName: "Bob Stone", TotalAmount: 50, ContributionCount: 1},
	}
	return loader.LoadDataset(loader.Dataset{Rows: rows, Totals: totals}, loader.Options{Logger: applog.Discard()})
}

func readyServer(t *testing.T) *Server {
	t.Helper()
	srv := NewServer(":0", fixedState{loader.State{Engine: testEngine()}}, Options{})
	t.Cleanup(srv.rateLimiter.stop)
	return srv
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func TestHealthAndReady(t *testing.T) {
	srv := readyServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := get(t, srv, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
	if body := decode[ReadyBody](t, get(t, srv, "/readyz")); body.Status != "ready" || body.Records != 3 {
		t.Errorf("unexpected ready body %+v", body)
	}
}

func TestLoadingState(t *testing.T) {
	srv := NewServer(":0", fixedState{loader.State{Loading: true}}, Options{})
	defer srv.rateLimiter.stop()

	rr := get(t, srv, "/api/records")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while loading, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Errorf("Retry-After missing")
	}
	if body := decode[ErrorBody](t, rr); body.Error != MsgLoading || body.RequestID == "" {
		t.Errorf("unexpected body %+v", body)
	}

	if rr := get(t, srv, "/readyz"); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz while loading = %d", rr.Code)
	}
	if rr := get(t, srv, "/healthz"); rr.Code != http.StatusOK {
		t.Errorf("healthz while loading = %d", rr.Code)
	}
}

func TestFailedState(t *testing.T) {
	loadErr := &loader.LoadError{Message: loader.MsgRecordsFailed, Err: errors.New("404")}
	srv := NewServer(":0", fixedState{loader.State{Err: loadErr}}, Options{})
	defer srv.rateLimiter.stop()

	rr := get(t, srv, "/api/contributors")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after failed load, got %d", rr.Code)
	}
	if body := decode[ErrorBody](t, rr); body.Error != loader.MsgRecordsFailed {
		t.Errorf("error = %q, want %q", body.Error, loader.MsgRecordsFailed)
	}
	if body := decode[ReadyBody](t, get(t, srv, "/readyz")); body.Status != "failed" || body.Error != loader.MsgRecordsFailed {
		t.Errorf("unexpected ready body %+v", body)
	}
}

func TestRecordsEndpoint(t *testing.T) {
	srv := readyServer(t)

	page := decode[engine.Page[core.Record]](t, get(t, srv, "/api/records?search=jane&sort=amount&direction=asc"))
	if page.Total != 2 || page.Available != 3 || page.Truncated {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Items[0].Amount != 25 || page.Items[1].Amount != 100 {
		t.Errorf("unexpected order %+v", page.Items)
	}
	if page.Amount != 125 {
		t.Errorf("amount = %v", page.Amount)
	}

	page = decode[engine.Page[core.Record]](t, get(t, srv, "/api/records?type=PAC"))
	if page.Total != 0 || page.Items == nil {
		t.Errorf("expected empty non-nil items, got %+v", page)
	}
}

func TestContributorsAndDates(t *testing.T) {
	srv := readyServer(t)

	page := decode[engine.Page[core.ContributorTotal]](t, get(t, srv, "/api/contributors?sort=contributor&direction=asc"))
	if page.Total != 2 || page.Items[0].FullName != "Bob Stone" {
		t.Fatalf("unexpected contributors %+v", page)
	}

	groups := decode[engine.Page[core.DateGroup]](t, get(t, srv, "/api/dates"))
	if groups.Total != 2 || groups.Amount != 175 {
		t.Fatalf("unexpected groups %+v", groups)
	}
	if groups.Items[0].DateLabel != "2024-01-06" {
		t.Errorf("groups should be newest first: %+v", groups.Items)
	}
}

func TestRecipientsEndpoint(t *testing.T) {
	srv := readyServer(t)
	page := decode[engine.Page[core.RecipientAggregate]](t, get(t, srv, "/api/recipients?office=Senate"))
	if page.Total != 1 || page.Items[0].Name != "Ann Lee" {
		t.Fatalf("unexpected recipients %+v", page)
	}
}

func TestDetailEndpoints(t *testing.T) {
	srv := readyServer(t)

	c := decode[engine.ContributorDetail](t, get(t, srv, "/api/contributors/jane-doe"))
	if !c.Found || c.Name != "Jane Doe" || len(c.Records) != 2 || c.Rollup == nil {
		t.Fatalf("unexpected contributor detail %+v", c)
	}

	r := decode[engine.RecipientDetail](t, get(t, srv, "/api/recipients/john-smith"))
	if !r.Found || r.Total != 150 || len(r.Contributors) != 2 {
		t.Fatalf("unexpected recipient detail %+v", r)
	}

	rr := get(t, srv, "/api/contributors/nobody-here")
	if rr.Code != http.StatusOK {
		t.Fatalf("unknown key status=%d", rr.Code)
	}
	if miss := decode[engine.ContributorDetail](t, rr); miss.Found || miss.Name != "nobody here" {
		t.Errorf("unexpected miss %+v", miss)
	}
}

func TestOverviewFiltersAndStats(t *testing.T) {
	srv := readyServer(t)

	ov := decode[engine.Overview](t, get(t, srv, "/api/overview"))
	if ov.Summary.TotalContributions != 3 || ov.Summary.TotalAmount != 175 {
		t.Fatalf("unexpected overview %+v", ov.Summary)
	}

	opts := decode[engine.FilterOptions](t, get(t, srv, "/api/filters"))
	if len(opts.Offices) != 2 {
		t.Fatalf("unexpected filter options %+v", opts)
	}

	get(t, srv, "/api/records")
	get(t, srv, "/api/records")
	stats := decode[StatsBody](t, get(t, srv, "/api/stats"))
	if stats.Cache["records"].Hits != 1 || stats.Cache["records"].Misses != 1 {
		t.Errorf("unexpected cache stats %+v", stats.Cache["records"])
	}
	if stats.Requests.TotalRequests < 4 {
		t.Errorf("unexpected request count %+v", stats.Requests)
	}
}

func TestRoutingErrors(t *testing.T) {
	srv := readyServer(t)

	if rr := get(t, srv, "/api/unknown"); rr.Code != http.StatusNotFound {
		t.Errorf("unknown path status=%d", rr.Code)
	}

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/records", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status=%d", rr.Code)
	}
}

func TestSecurityHeadersAndRateLimit(t *testing.T) {
	srv := NewServer(":0", fixedState{loader.State{Engine: testEngine()}}, Options{RequestsPerMinute: 2})
	defer srv.rateLimiter.stop()

	rr := get(t, srv, "/api/filters")
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" || rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Errorf("security headers missing: %v", rr.Header())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Errorf("request id header missing")
	}

	get(t, srv, "/api/filters")
	if rr := get(t, srv, "/api/filters"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if rr := get(t, srv, "/healthz"); rr.Code != http.StatusOK {
		t.Errorf("healthz must bypass the limiter, got %d", rr.Code)
	}
	if srv.securityStats().RateLimitHits != 1 {
		t.Errorf("unexpected security stats %+v", srv.securityStats())
	}
}
