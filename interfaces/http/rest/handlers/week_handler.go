package handlers

import (
	"net/http"

	"forzeit/application/queries"
	"forzeit/domain/core/entities"
	"forzeit/pkg/common"
	pkgerrors "forzeit/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WeekHandler handles week-related HTTP requests
type WeekHandler struct {
	queryBus QueryAsker
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewWeekHandler creates a new week handler
func NewWeekHandler(queryBus QueryAsker, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *WeekHandler {
	return &WeekHandler{
		queryBus: queryBus,
		errors:   errors,
		logger:   logger,
	}
}

// GetWeek handles GET /weeks/{weekID}
func (h *WeekHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetWeekQuery{
		WeekID:    chi.URLParam(r, "weekID"),
		Principal: principalFrom(r),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	week, ok := result.(*entities.Week)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	respond(w, h.logger, http.StatusOK, week)
}

// ListUserWeeks handles GET /users/{userID}/weeks?limit=&offset=
func (h *WeekHandler) ListUserWeeks(w http.ResponseWriter, r *http.Request) {
	page := common.ExtractPageParams(r)

	result, err := h.queryBus.Ask(r.Context(), queries.ListWeeksQuery{
		UserID:    chi.URLParam(r, "userID"),
		Limit:     page.Limit,
		Offset:    page.Offset,
		Principal: principalFrom(r),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	weeks, ok := result.(*queries.ListWeeksResult)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	respond(w, h.logger, http.StatusOK, weeks)
}

// ListWeekSessions handles GET /weeks/{weekID}/sessions
func (h *WeekHandler) ListWeekSessions(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListWeekSessionsQuery{
		WeekID:    chi.URLParam(r, "weekID"),
		Principal: principalFrom(r),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	sessions, ok := result.([]queries.SessionDTO)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	respond(w, h.logger, http.StatusOK, map[string]interface{}{
		"weekId":   chi.URLParam(r, "weekID"),
		"sessions": sessions,
	})
}
