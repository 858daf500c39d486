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

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, user, http.StatusOK)
}

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
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

	users, err := h.Controllers.User.GetAll(ctx, params)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, users, http.StatusOK)
}

func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.UnprocessableEntity("invalid user id"))
		return
	}
	if !utils.IsAuthorized(requester.ID, requester.Role, id) {
		h.HandleErrors(w, utils.Forbidden("not enough permissions"))
		return
	}

	user, err := h.Controllers.User.GetByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, user, http.StatusOK)
}

func (h *Handler) UpdateUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requester, err := h.currentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.UnprocessableEntity("invalid user id"))
		return
	}
	if !utils.IsAuthorized(requester.ID, requester.Role, id) {
		h.HandleErrors(w, utils.Forbidden("not enough permissions"))
		return
	}

	var req schemas.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	user, err := h.Controllers.User.Update(ctx, id, &req, requester.Role)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, user, http.StatusOK)
}

func (h *Handler) DeleteUserByID(w http.ResponseWriter, r *http.Request) {
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
		h.HandleErrors(w, utils.UnprocessableEntity("invalid user id"))
		return
	}

	if err := h.Controllers.User.Delete(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]string{"message": "User deleted successfully"}, http.StatusOK)
}
