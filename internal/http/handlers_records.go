package http

import (
	"net/http"

	"planner/internal/catalog"
	"planner/internal/core"
	"planner/internal/log"
)

type goalDTO struct {
	Shape  string  `json:"shape"`
	Target float64 `json:"target"`
}

// objectiveDTO carries the kind parameters a client needs to pick a widget.
type objectiveDTO struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Group    string   `json:"group"`
	Kind     string   `json:"kind"`
	Weight   float64  `json:"weight"`
	Snapshot bool     `json:"snapshot,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Step     float64  `json:"step,omitempty"`
	Integer  bool     `json:"integer,omitempty"`
	Goal     *goalDTO `json:"goal,omitempty"`
	Options  []string `json:"options,omitempty"`
	Terminal string   `json:"terminal,omitempty"`
}

type recordDTO struct {
	Date   core.Date      `json:"date"`
	Values map[string]any `json:"values"`
}

type updateFieldRequest struct {
	Value any `json:"value"`
}

func newObjectiveDTO(o catalog.Objective, weights catalog.Weights) objectiveDTO {
	dto := objectiveDTO{
		Key:    o.Key,
		Label:  o.Label,
		Group:  string(o.Group),
		Weight: weights[o.Key],
	}
	switch k := o.Kind.(type) {
	case catalog.Flag:
		dto.Kind = "flag"
		dto.Snapshot = k.Snapshot
	case catalog.Quantity:
		dto.Kind = "quantity"
		minimum := k.Min
		dto.Min = &minimum
		dto.Step = k.Step
		dto.Integer = k.Integer
		if k.Goal.Shape != catalog.NoGoal {
			dto.Goal = &goalDTO{Shape: k.Goal.Shape.String(), Target: k.Goal.Target}
		}
	case catalog.Choice:
		dto.Kind = "choice"
		dto.Options = append([]string(nil), k.Options...)
		dto.Terminal = k.Terminal
	}
	return dto
}

// newRecordDTO renders each value in its natural JSON type.
func newRecordDTO(r core.DailyRecord) recordDTO {
	dto := recordDTO{Date: r.Date, Values: make(map[string]any, len(r.Values))}
	for key, v := range r.Values {
		switch v.Kind {
		case core.KindBool:
			dto.Values[key] = v.Bool
		case core.KindNumber:
			dto.Values[key] = v.Number
		case core.KindChoice:
			dto.Values[key] = v.Choice
		}
	}
	return dto
}

func newRecordDTOs(records []core.DailyRecord) []recordDTO {
	out := make([]recordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, newRecordDTO(r))
	}
	return out
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.journal.Catalog()
	weights := s.journal.Weights()
	objectives := cat.Objectives()
	out := make([]objectiveDTO, 0, len(objectives))
	for _, o := range objectives {
		out = append(out, newObjectiveDTO(o, weights))
	}
	NewJSONResponse().Body(map[string]any{
		"objectives": out,
		"weights":    weights,
	}).Write(w)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	rec, err := s.journal.Today(r.Context())
	if err != nil {
		writeError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(newRecordDTO(rec)).Write(w)
}

func (s *Server) handleTrailing(w http.ResponseWriter, r *http.Request) {
	days, err := parseDays(r, s.trailingDays)
	if err != nil {
		writeError(w, r, log.OpList, err)
		return
	}
	records, err := s.journal.Trailing(r.Context(), days)
	if err != nil {
		writeError(w, r, log.OpList, err)
		return
	}
	NewJSONResponse().Body(newRecordDTOs(records)).Write(w)
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	date, err := parsePathDate(r, "date")
	if err != nil {
		writeError(w, r, log.OpRead, err)
		return
	}
	rec, err := s.journal.Record(r.Context(), date)
	if err != nil {
		writeError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(newRecordDTO(rec)).Write(w)
}

func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	date, err := parsePathDate(r, "date")
	if err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}
	key := r.PathValue("key")
	o, ok := s.journal.Catalog().Lookup(key)
	if !ok {
		NotFoundError("unknown objective " + key).Write(w)
		return
	}

	var req updateFieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}
	v, err := parseValue(o, req.Value)
	if err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}

	rec, err := s.journal.UpdateField(r.Context(), date, key, v)
	if err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}
	NewJSONResponse().Body(newRecordDTO(rec)).Write(w)
}
