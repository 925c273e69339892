package http

import (
	"net/http"

	"filings/internal/cache"
	"filings/internal/engine"
	"filings/internal/loader"
	applog "filings/internal/log"
	"filings/internal/middleware/trace"
)

// MsgLoading is returned while the dataset is still being fetched.
const MsgLoading = "Loading data, please retry shortly"

type engineHandler func(w http.ResponseWriter, r *http.Request, eng *engine.Engine)

// withEngine resolves the published engine or answers with the load state:
// 503 while loading and 500 with the load error message after a failure.
func (s *Server) withEngine(h engineHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := s.states.State()
		requestID := trace.GetRequestID(r.Context())
		switch {
		case state.Ready():
			h(w, r, state.Engine)
		case state.Err != nil:
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Dataset unavailable",
				applog.FieldError, state.Err)
			InternalServerError(loader.Message(state.Err)).RequestID(requestID).Write(w)
		default:
			ServiceUnavailableError(MsgLoading, "2").RequestID(requestID).Write(w)
		}
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().NoCache().Data(map[string]string{"status": "ok"}).Write(w)
}

// ReadyBody describes the load state for probes.
type ReadyBody struct {
	Status  string `json:"status"`
	Records int    `json:"records,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	state := s.states.State()
	switch {
	case state.Ready():
		NewJSONResponse().NoCache().
			Data(ReadyBody{Status: "ready", Records: len(state.Engine.Snapshot().Records())}).
			Write(w)
	case state.Err != nil:
		NewJSONResponse().NoCache().Status(http.StatusServiceUnavailable).
			Data(ReadyBody{Status: "failed", Error: loader.Message(state.Err)}).
			Write(w)
	default:
		NewJSONResponse().NoCache().Status(http.StatusServiceUnavailable).
			Header("Retry-After", "2").
			Data(ReadyBody{Status: "loading"}).
			Write(w)
	}
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	NewJSONResponse().Data(eng.Overview()).Write(w)
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	NewJSONResponse().Data(eng.Snapshot().FilterOptions()).Write(w)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	NewJSONResponse().Data(eng.Records(ParseRecordQuery(r.URL.Query()))).Write(w)
}

func (s *Server) handleContributors(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	NewJSONResponse().Data(eng.Contributors(ParseContributorQuery(r.URL.Query()))).Write(w)
}

func (s *Server) handleRecipients(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	NewJSONResponse().Data(eng.Recipients(ParseRecipientQuery(r.URL.Query()))).Write(w)
}

func (s *Server) handleDates(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	NewJSONResponse().Data(eng.DateGroups(ParseContributorQuery(r.URL.Query()))).Write(w)
}

// Detail lookups answer 200 with found=false for keys without filings.
func (s *Server) handleContributor(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	NewJSONResponse().Data(eng.ContributorDetail(sanitizeInput(r.PathValue("slug")))).Write(w)
}

func (s *Server) handleRecipient(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	NewJSONResponse().Data(eng.RecipientDetail(sanitizeInput(r.PathValue("slug")))).Write(w)
}

// StatsBody reports cache, request and security counters.
type StatsBody struct {
	Cache    map[string]cache.Stats `json:"cache"`
	Requests trace.Metrics          `json:"requests"`
	Security SecurityStats          `json:"security"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request, eng *engine.Engine) {
	NewJSONResponse().NoCache().Data(StatsBody{
		Cache:    eng.CacheStats(),
		Requests: s.tracer.GetMetrics(),
		Security: s.securityStats(),
	}).Write(w)
}
