package queries

import (
	"context"

	"forzeit/application/ports"
	"forzeit/application/services"
)

// GetInsightsQuery represents a query for a week's insights
type GetInsightsQuery struct {
	WeekID    string           `json:"weekId" validate:"required"`
	Principal *ports.Principal `json:"-"`
}

// Validate validates the query
func (q GetInsightsQuery) Validate() error {
	return validateQuery(q)
}

// InsightsReader is the part of the insights service queries depend on
type InsightsReader interface {
	GetInsights(ctx context.Context, weekID string, principal *ports.Principal) (*services.InsightsResult, error)
}

// GetInsightsHandler handles the GetInsightsQuery
type GetInsightsHandler struct {
	insights InsightsReader
}

// NewGetInsightsHandler creates a new handler instance
func NewGetInsightsHandler(insights InsightsReader) *GetInsightsHandler {
	return &GetInsightsHandler{insights: insights}
}

// Handle executes the get insights query
func (h *GetInsightsHandler) Handle(ctx context.Context, query GetInsightsQuery) (*services.InsightsResult, error) {
	return h.insights.GetInsights(ctx, query.WeekID, query.Principal)
}
