package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tracker/src/models"
	"tracker/src/schemas"
	"tracker/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Portfolio reads perform live valuations, so their deadline covers one
// price lookup per distinct asset across the whole response.
const portfolioTimeout = 30 * time.Second

func (h *Handler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.PortfolioCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.HandleErrors(w, err)
		return
	}

	portfolio, err := h.Controllers.Portfolio.Create(ctx, requester.ID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, portfolio, http.StatusCreated)
}

func (h *Handler) GetPortfolioByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), portfolioTimeout)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.UnprocessableEntity("invalid portfolio id"))
		return
	}

	portfolio, err := h.Controllers.Portfolio.GetByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if !utils.IsAuthorized(requester.ID, requester.Role, portfolio.UserID) {
		h.HandleErrors(w, utils.Forbidden("not enough permissions"))
		return
	}

	h.respond(w, r, portfolio, http.StatusOK)
}

// GetAllPortfolios lists every portfolio in the system; admin only.
func (h *Handler) GetAllPortfolios(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), portfolioTimeout)
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

	portfolios, err := h.Controllers.Portfolio.GetAll(ctx, params)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, portfolios, http.StatusOK)
}

func (h *Handler) GetUserPortfolios(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), portfolioTimeout)
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

	portfolios, err := h.Controllers.Portfolio.GetByUserID(ctx, requester.ID, params)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, portfolios, http.StatusOK)
}

func (h *Handler) UpdatePortfolioByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.UnprocessableEntity("invalid portfolio id"))
		return
	}

	var req schemas.PortfolioUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.authorizePortfolio(ctx, requester, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	portfolio, err := h.Controllers.Portfolio.Update(ctx, id, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, portfolio, http.StatusOK)
}

func (h *Handler) DeletePortfolioByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.UnprocessableEntity("invalid portfolio id"))
		return
	}

	if err := h.authorizePortfolio(ctx, requester, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Controllers.Portfolio.Delete(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]string{"message": "Portfolio deleted successfully"}, http.StatusOK)
}

// authorizePortfolio checks ownership without the full valuation a
// portfolio read performs.
func (h *Handler) authorizePortfolio(ctx context.Context, requester *schemas.UserOut, portfolioID uuid.UUID) error {
	ownerID, err := h.Controllers.Portfolio.GetOwnerID(ctx, portfolioID)
	if err != nil {
		return err
	}
	if !utils.IsAuthorized(requester.ID, requester.Role, ownerID) {
		return utils.Forbidden("not enough permissions")
	}
	return nil
}
