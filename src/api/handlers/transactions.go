package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tracker/src/models"
	"tracker/src/repositories"
	"tracker/src/schemas"
	"tracker/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.TransactionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.HandleErrors(w, err)
		return
	}

	transaction, err := h.Controllers.Transaction.Create(ctx, requester.ID, requester.Role, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transaction, http.StatusCreated)
}

// timeRangeFilter reads the optional created_after/created_before query
// parameters as RFC 3339 timestamps.
func timeRangeFilter(r *http.Request, filter *repositories.TransactionFilter) error {
	if raw := r.URL.Query().Get("created_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return utils.UnprocessableEntity("created_after must be an RFC 3339 timestamp")
		}
		filter.CreatedAfter = &t
	}
	if raw := r.URL.Query().Get("created_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return utils.UnprocessableEntity("created_before must be an RFC 3339 timestamp")
		}
		filter.CreatedBefore = &t
	}
	return nil
}

// GetUserTransactions lists the requester's own visible transactions.
func (h *Handler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	params, err := pageParams(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	filter := repositories.TransactionFilter{UserID: &requester.ID}
	if raw := r.URL.Query().Get("portfolio_id"); raw != "" {
		portfolioID, err := uuid.Parse(raw)
		if err != nil {
			h.HandleErrors(w, utils.UnprocessableEntity("invalid portfolio id"))
			return
		}
		filter.PortfolioID = &portfolioID
	}
	if err := timeRangeFilter(r, &filter); err != nil {
		h.HandleErrors(w, err)
		return
	}

	transactions, err := h.Controllers.Transaction.List(ctx, filter, params)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transactions, http.StatusOK)
}

// GetAllTransactions lists every transaction in the system, optionally
// including soft-deleted rows; admin only.
func (h *Handler) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if requester.Role != models.UserRoleAdmin {
		h.HandleErrors(w, utils.Forbidden("not enough permissions"))
		return
	}

	params, err := pageParams(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	filter := repositories.TransactionFilter{
		IncludeDeleted: r.URL.Query().Get("include_deleted") == "true",
	}
	if err := timeRangeFilter(r, &filter); err != nil {
		h.HandleErrors(w, err)
		return
	}

	transactions, err := h.Controllers.Transaction.List(ctx, filter, params)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transactions, http.StatusOK)
}

func (h *Handler) GetTransactionByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.UnprocessableEntity("invalid transaction id"))
		return
	}

	transaction, err := h.Controllers.Transaction.GetByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if !utils.IsAuthorized(requester.ID, requester.Role, transaction.UserID) {
		h.HandleErrors(w, utils.Forbidden("not enough permissions"))
		return
	}

	h.respond(w, r, transaction, http.StatusOK)
}

func (h *Handler) UpdateTransactionByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.UnprocessableEntity("invalid transaction id"))
		return
	}

	var req schemas.TransactionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.authorizeTransaction(ctx, requester, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	transaction, err := h.Controllers.Transaction.Update(ctx, id, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transaction, http.StatusOK)
}

// DeleteTransactionByID soft-deletes: the row is hidden from listings and
// valuation but stays recoverable.
func (h *Handler) DeleteTransactionByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.UnprocessableEntity("invalid transaction id"))
		return
	}

	if err := h.authorizeTransaction(ctx, requester, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Controllers.Transaction.SoftDelete(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]string{"message": "Transaction deleted successfully"}, http.StatusOK)
}

func (h *Handler) HardDeleteTransactionByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if requester.Role != models.UserRoleAdmin {
		h.HandleErrors(w, utils.Forbidden("not enough permissions"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.UnprocessableEntity("invalid transaction id"))
		return
	}

	if err := h.Controllers.Transaction.HardDelete(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]string{"message": "Transaction hard deleted successfully"}, http.StatusOK)
}

func (h *Handler) authorizeTransaction(ctx context.Context, requester *schemas.UserOut, id uuid.UUID) error {
	transaction, err := h.Controllers.Transaction.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !utils.IsAuthorized(requester.ID, requester.Role, transaction.UserID) {
		return utils.Forbidden("not enough permissions")
	}
	return nil
}
