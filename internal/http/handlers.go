package http

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jaas29/DinFlow/internal/core"
	"github.com/jaas29/DinFlow/internal/log"
	"github.com/jaas29/DinFlow/internal/state"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

type userRequest struct {
	Email             string      `json:"email"`
	MonthlyIncome     json.Number `json:"monthlyIncome"`
	SavingsPercentage json.Number `json:"savingsPercentage"`
}

func (s *Server) handleSetUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}

	income, err := decimal.NewFromString(req.MonthlyIncome.String())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid monthly income")
		return
	}
	pct, err := decimal.NewFromString(req.SavingsPercentage.String())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid savings percentage")
		return
	}

	u := core.User{Email: req.Email, MonthlyIncome: income, SavingsPercentage: pct}
	if err := u.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.SetUser(r.Context(), u); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to set user",
			log.FieldError, err, log.FieldOperation, log.OpSetUser)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	writeJSON(w, http.StatusCreated, s.store.Snapshot())
}

type settingsRequest struct {
	Email             *string      `json:"email"`
	MonthlyIncome     *json.Number `json:"monthlyIncome"`
	SavingsPercentage *json.Number `json:"savingsPercentage"`
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	settings := state.UserSettings{Email: req.Email}
	if req.MonthlyIncome != nil {
		income, err := decimal.NewFromString(req.MonthlyIncome.String())
		if err != nil || income.IsNegative() {
			writeError(w, http.StatusUnprocessableEntity, "invalid monthly income")
			return
		}
		settings.MonthlyIncome = &income
	}
	if req.SavingsPercentage != nil {
		pct, err := decimal.NewFromString(req.SavingsPercentage.String())
		if err != nil || pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
			writeError(w, http.StatusUnprocessableEntity, "invalid savings percentage")
			return
		}
		settings.SavingsPercentage = &pct
	}

	if err := s.store.UpdateUserSettings(r.Context(), settings); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to update settings",
			log.FieldError, err, log.FieldOperation, log.OpUpdateSettings)
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

type transactionRequest struct {
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
}

// parseTransaction applies the entry-form rules: the amount must parse to a
// positive value and the category must be present. The store itself stays
// permissive; this boundary is where invalid input is stopped.
func parseTransaction(w http.ResponseWriter, r *http.Request) (state.TransactionInput, bool) {
	var req transactionRequest
	if !decodeBody(w, r, &req) {
		return state.TransactionInput{}, false
	}

	amount, err := core.ParseAmount(req.Amount.String())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return state.TransactionInput{}, false
	}
	in := state.TransactionInput{
		Amount:      amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := (core.Transaction{Amount: in.Amount, Category: in.Category, Description: in.Description}).Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return state.TransactionInput{}, false
	}
	return in, true
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	in, ok := parseTransaction(w, r)
	if !ok {
		return
	}
	tx, err := s.store.AddExpense(r.Context(), in)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to add expense",
			log.FieldError, err, log.FieldOperation, log.OpAddExpense)
		writeError(w, http.StatusInternalServerError, "failed to save expense")
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleAddIncome(w http.ResponseWriter, r *http.Request) {
	in, ok := parseTransaction(w, r)
	if !ok {
		return
	}
	tx, err := s.store.AddIncome(r.Context(), in)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to add income",
			log.FieldError, err, log.FieldOperation, log.OpAddIncome)
		writeError(w, http.StatusInternalServerError, "failed to save income")
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteExpense(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete expense",
			log.FieldError, err,
			log.FieldOperation, log.OpDeleteExpense,
			log.FieldTransaction, id)
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAllExpenses(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAllExpenses(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to delete expenses",
			log.FieldError, err, log.FieldOperation, log.OpDeleteAll)
		writeError(w, http.StatusInternalServerError, "failed to delete expenses")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ResetApp(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to reset",
			log.FieldError, err, log.FieldOperation, log.OpReset)
		writeError(w, http.StatusInternalServerError, "failed to reset")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

type categorySummary struct {
	core.CategoryTotal
	Icon string `json:"icon"`
}

type summaryResponse struct {
	state.Snapshot
	Categories []categorySummary `json:"categories"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	resp := summaryResponse{Snapshot: snap}
	for _, c := range snap.Categories {
		resp.Categories = append(resp.Categories, categorySummary{
			CategoryTotal: c,
			Icon:          core.IconFor(core.Expense, c.Category),
		})
	}
	if resp.Categories == nil {
		resp.Categories = []categorySummary{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	kind := core.TransactionKind(r.URL.Query().Get("kind"))
	switch kind {
	case "":
		kind = core.Expense
	case core.Expense, core.Income:
	default:
		writeError(w, http.StatusBadRequest, "unknown transaction kind")
		return
	}
	writeJSON(w, http.StatusOK, core.Categories(kind))
}
