package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"forzeit/application/ports"
	"forzeit/application/services"
	"forzeit/domain/core/entities"
	"forzeit/domain/core/validators"
	pkgerrors "forzeit/pkg/errors"
	"forzeit/pkg/utils"
)

// CreateCardCommand represents the command to create a card in a week
type CreateCardCommand struct {
	WeekID    string           `json:"weekId" validate:"required"`
	Title     string           `json:"title"`
	Minutes   int              `json:"minutes"`
	Principal *ports.Principal `json:"-"`
}

var cardValidator = validators.NewCardValidator()

// Validate validates the command input
func (cmd CreateCardCommand) Validate() error {
	if err := cardValidator.ValidateNewCard(cmd.Title, cmd.Minutes); err != nil {
		return err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// CreateCardHandler handles the CreateCardCommand
type CreateCardHandler struct {
	weeks       ports.WeekRepository
	cards       ports.CardRepository
	invalidator ports.InsightsInvalidator
	logger      *zap.Logger
}

// NewCreateCardHandler creates a new handler instance
func NewCreateCardHandler(
	weeks ports.WeekRepository,
	cards ports.CardRepository,
	invalidator ports.InsightsInvalidator,
	logger *zap.Logger,
) *CreateCardHandler {
	return &CreateCardHandler{
		weeks:       weeks,
		cards:       cards,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Handle executes the create card command.
// Checks run in order: authentication, input, week existence, ownership.
func (h *CreateCardHandler) Handle(ctx context.Context, cmd CreateCardCommand) (*entities.Card, error) {
	if err := services.RequireAuthenticated(cmd.Principal); err != nil {
		return nil, err
	}

	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	week, err := h.weeks.GetWeekByID(ctx, cmd.WeekID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, pkgerrors.NewNotFoundError("Week", cmd.WeekID)
		}
		return nil, pkgerrors.Wrap(err, "failed to load week")
	}

	if err := services.RequireOwnership(cmd.Principal, week.UserID); err != nil {
		return nil, err
	}

	card, err := h.cards.CreateCard(ctx, week.ID, cardValidator.NormalizeTitle(cmd.Title), cmd.Minutes, cmd.Principal.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create card")
	}

	// Insights for the week are now stale
	h.invalidator.Invalidate(week.ID, cmd.Principal.ID)

	h.logger.Info("Card created",
		zap.String("card_id", card.ID),
		zap.String("week_id", card.WeekID),
		zap.String("user_id", card.UserID),
	)

	return card, nil
}
