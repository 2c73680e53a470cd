package queries

import (
	"context"

	"forzeit/application/ports"
	"forzeit/application/services"
	"forzeit/domain/core/entities"
	"forzeit/pkg/common"
	pkgerrors "forzeit/pkg/errors"
)

// ListWeeksQuery represents a query to list a user's weeks
type ListWeeksQuery struct {
	UserID    string           `json:"userId" validate:"required"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
	Principal *ports.Principal `json:"-"`
}

// Validate validates the query
func (q ListWeeksQuery) Validate() error {
	return validateQuery(q)
}

// ListWeeksResult is a page of weeks
type ListWeeksResult struct {
	Weeks  []*entities.Week `json:"weeks"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// ListWeeksHandler handles the ListWeeksQuery
type ListWeeksHandler struct {
	weeks ports.WeekRepository
}

// NewListWeeksHandler creates a new handler instance
func NewListWeeksHandler(weeks ports.WeekRepository) *ListWeeksHandler {
	return &ListWeeksHandler{weeks: weeks}
}

// Handle executes the list weeks query. Users may only list their own weeks.
func (h *ListWeeksHandler) Handle(ctx context.Context, query ListWeeksQuery) (*ListWeeksResult, error) {
	if err := services.RequireOwnership(query.Principal, query.UserID); err != nil {
		return nil, err
	}

	page := common.PageParams{Limit: query.Limit, Offset: query.Offset}.Clamp()

	weeks, err := h.weeks.ListWeeksByUser(ctx, query.UserID, page.Limit, page.Offset)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list weeks")
	}

	return &ListWeeksResult{
		Weeks:  weeks,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}
