package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tracker/src/api/controllers"
	"tracker/src/schemas"
	"tracker/src/services"
	"tracker/src/utils"

	"github.com/go-chi/jwtauth"
)

type Handler struct {
	Controllers *controllers.Controllers
	Auth        services.AuthServiceI
}

func NewHandler(ctrls *controllers.Controllers, auth services.AuthServiceI) *Handler {
	return &Handler{Controllers: ctrls, Auth: auth}
}

func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status": "ok"}`))
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if err != nil {
		h.respond(w, nil, map[string]string{"error": "Internal Server Error"}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

// currentUser resolves the authenticated, active user behind the verified
// JWT the middleware already checked.
func (h *Handler) currentUser(ctx context.Context) (*schemas.UserOut, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, utils.Unauthorized("Access denied. Invalid credentials")
	}
	userID, err := h.Auth.SubjectFromClaims(claims)
	if err != nil {
		return nil, err
	}
	return h.Controllers.User.GetCurrent(ctx, userID)
}

// pageParams reads the 1-based page/page_size query parameters, defaulting
// to the first page of ten.
func pageParams(r *http.Request) (schemas.PageParams, error) {
	page := 1
	pageSize := 10
	var err error

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return schemas.PageParams{}, utils.UnprocessableEntity("page must be an integer")
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil {
			return schemas.PageParams{}, utils.UnprocessableEntity("page_size must be an integer")
		}
	}
	return schemas.NewPageParams(page, pageSize)
}
