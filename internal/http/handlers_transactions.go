package http

import (
	"net/http"
	"strings"

	"planner/internal/core"
	"planner/internal/log"
)

type transactionRequest struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Amount      any    `json:"amount"`
	Description string `json:"description"`
}

// toTransaction validates the request. A missing date means today.
func (req transactionRequest) toTransaction(today core.Date) (core.Transaction, error) {
	date := today
	if raw := strings.TrimSpace(req.Date); raw != "" {
		d, err := core.ParseDate(raw)
		if err != nil {
			return core.Transaction{}, err
		}
		date = d
	}
	dir, err := core.ParseDirection(req.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	rawAmount, err := parseAmount(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Date:        date,
		Type:        dir,
		Category:    sanitizeInput(req.Category),
		Amount:      amount,
		Description: sanitizeInput(req.Description),
	}, nil
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	var (
		txs []core.Transaction
		err error
	)
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", "month":
		txs, err = s.journal.MonthTransactions(r.Context())
	case "all":
		txs, err = s.journal.Transactions(r.Context())
	default:
		err = badRequest("invalid scope %q: want month or all", scope)
	}
	if err != nil {
		writeError(w, r, log.OpList, err)
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	NewJSONResponse().Body(txs).Write(w)
}

func (s *Server) handleAppendTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, log.OpAppend, err)
		return
	}
	tx, err := req.toTransaction(s.today())
	if err != nil {
		writeError(w, r, log.OpAppend, err)
		return
	}
	if err := s.journal.AppendTransaction(r.Context(), tx); err != nil {
		writeError(w, r, log.OpAppend, err)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).Body(tx).Write(w)
}

func (s *Server) handleFinance(w http.ResponseWriter, r *http.Request) {
	summary, err := s.journal.Finance(r.Context())
	if err != nil {
		writeError(w, r, log.OpReport, err)
		return
	}
	NewJSONResponse().Body(summary).Write(w)
}
