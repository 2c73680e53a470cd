package handlers

import (
	"net/http"

	"forzeit/application/queries"
	"forzeit/application/services"
	pkgerrors "forzeit/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CacheHeader reports whether insights came from the cache
const CacheHeader = "X-Cache"

// InsightsHandler serves week insights
type InsightsHandler struct {
	queryBus QueryAsker
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(queryBus QueryAsker, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{
		queryBus: queryBus,
		errors:   errors,
		logger:   logger,
	}
}

// GetInsights handles GET /weeks/{weekID}/insights
func (h *InsightsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetInsightsQuery{
		WeekID:    chi.URLParam(r, "weekID"),
		Principal: principalFrom(r),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	insights, ok := result.(*services.InsightsResult)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	w.Header().Set(CacheHeader, string(insights.Cache))
	respond(w, h.logger, http.StatusOK, insights.Insights)
}
