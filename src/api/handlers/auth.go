package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tracker/src/schemas"
	"tracker/src/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.HandleErrors(w, err)
		return
	}

	token, err := h.Controllers.User.Register(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, token, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	token, err := h.Controllers.User.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, token, http.StatusOK)
}
