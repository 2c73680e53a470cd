package queries

import (
	"context"
	"errors"

	"forzeit/application/ports"
	"forzeit/application/services"
	"forzeit/domain/core/entities"
	pkgerrors "forzeit/pkg/errors"
)

// GetWeekQuery represents a query to retrieve a week
type GetWeekQuery struct {
	WeekID    string           `json:"weekId" validate:"required"`
	Principal *ports.Principal `json:"-"`
}

// Validate validates the query
func (q GetWeekQuery) Validate() error {
	return validateQuery(q)
}

// GetWeekHandler handles the GetWeekQuery
type GetWeekHandler struct {
	weeks ports.WeekRepository
}

// NewGetWeekHandler creates a new handler instance
func NewGetWeekHandler(weeks ports.WeekRepository) *GetWeekHandler {
	return &GetWeekHandler{weeks: weeks}
}

// Handle executes the get week query
func (h *GetWeekHandler) Handle(ctx context.Context, query GetWeekQuery) (*entities.Week, error) {
	week, err := loadWeek(ctx, h.weeks, query.WeekID)
	if err != nil {
		return nil, err
	}

	if err := services.RequireOwnership(query.Principal, week.UserID); err != nil {
		return nil, err
	}

	return week, nil
}

// loadWeek resolves a week, mapping a missing record to a not found error
func loadWeek(ctx context.Context, weeks ports.WeekRepository, weekID string) (*entities.Week, error) {
	week, err := weeks.GetWeekByID(ctx, weekID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, pkgerrors.NewNotFoundError("Week", weekID)
		}
		return nil, pkgerrors.Wrap(err, "failed to load week")
	}
	return week, nil
}
