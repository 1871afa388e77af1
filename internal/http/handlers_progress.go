package http

import (
	"net/http"
	"strconv"

	"planner/internal/log"
	"planner/internal/progress"
	"planner/internal/quotes"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	date, err := parseQueryDate(r, "date")
	if err != nil {
		writeError(w, r, log.OpReport, err)
		return
	}
	rep, err := s.journal.Report(r.Context(), date)
	if err != nil {
		writeError(w, r, log.OpReport, err)
		return
	}
	NewJSONResponse().Body(rep).Write(w)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	points, err := s.journal.Series(r.Context(), key)
	if err != nil {
		writeError(w, r, log.OpRead, err)
		return
	}
	if points == nil {
		points = []progress.Point{}
	}
	NewJSONResponse().Body(map[string]any{
		"key":    key,
		"points": points,
	}).Write(w)
}

// handleQuote returns the quote of the day, or a random one with ?random=true.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q := quotes.ForDate(s.today())
	if raw := r.URL.Query().Get("random"); raw != "" {
		random, err := strconv.ParseBool(raw)
		if err != nil {
			BadRequestError("invalid random flag " + strconv.Quote(raw)).Write(w)
			return
		}
		if random {
			q = quotes.Random(nil)
		}
	}
	NewJSONResponse().Body(q).Write(w)
}
