package queries

import (
	"context"

	"forzeit/application/ports"
	"forzeit/application/services"
	domainservices "forzeit/domain/services"
	pkgerrors "forzeit/pkg/errors"
)

// ListWeekSessionsQuery represents a query for the sessions inside a week
type ListWeekSessionsQuery struct {
	WeekID    string           `json:"weekId" validate:"required"`
	Principal *ports.Principal `json:"-"`
}

// Validate validates the query
func (q ListWeekSessionsQuery) Validate() error {
	return validateQuery(q)
}

// SessionDTO is a session with its computed duration
type SessionDTO struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	StartedAt       string `json:"startedAt"`
	EndedAt         string `json:"endedAt"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ListWeekSessionsHandler handles the ListWeekSessionsQuery
type ListWeekSessionsHandler struct {
	weeks    ports.WeekRepository
	sessions ports.SessionRepository
	engine   *domainservices.InsightsEngine
}

// NewListWeekSessionsHandler creates a new handler instance
func NewListWeekSessionsHandler(
	weeks ports.WeekRepository,
	sessions ports.SessionRepository,
	engine *domainservices.InsightsEngine,
) *ListWeekSessionsHandler {
	return &ListWeekSessionsHandler{
		weeks:    weeks,
		sessions: sessions,
		engine:   engine,
	}
}

// Handle executes the list week sessions query. Durations use the same
// policy as insights, so anomalous sessions report 0 minutes.
func (h *ListWeekSessionsHandler) Handle(ctx context.Context, query ListWeekSessionsQuery) ([]SessionDTO, error) {
	week, err := loadWeek(ctx, h.weeks, query.WeekID)
	if err != nil {
		return nil, err
	}

	if err := services.RequireOwnership(query.Principal, week.UserID); err != nil {
		return nil, err
	}

	sessions, err := h.sessions.ListSessionsByWeekRange(ctx, week.UserID, week.StartISO)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list sessions")
	}

	result := make([]SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		result = append(result, SessionDTO{
			ID:              s.ID,
			UserID:          s.UserID,
			StartedAt:       s.StartedAt,
			EndedAt:         s.EndedAt,
			DurationMinutes: h.engine.SessionDurationMinutes(s),
		})
	}
	return result, nil
}
