package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"forzeit/application/ports"
	"forzeit/application/services"
	"forzeit/domain/core/entities"
	"forzeit/domain/core/valueobjects"
	pkgerrors "forzeit/pkg/errors"
)

// UpdateCardStatusCommand represents the command to move a card to a new status
type UpdateCardStatusCommand struct {
	CardID    string           `json:"id"`
	Status    string           `json:"status"`
	Principal *ports.Principal `json:"-"`
}

// Validate validates the command input
func (cmd UpdateCardStatusCommand) Validate() error {
	_, err := valueobjects.ParseCardStatus(cmd.Status)
	return err
}

// UpdateCardStatusHandler handles the UpdateCardStatusCommand
type UpdateCardStatusHandler struct {
	cards       ports.CardRepository
	invalidator ports.InsightsInvalidator
	logger      *zap.Logger
}

// NewUpdateCardStatusHandler creates a new handler instance
func NewUpdateCardStatusHandler(
	cards ports.CardRepository,
	invalidator ports.InsightsInvalidator,
	logger *zap.Logger,
) *UpdateCardStatusHandler {
	return &UpdateCardStatusHandler{
		cards:       cards,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Handle executes the update card status command.
// Checks run in order: authentication, status, card existence, ownership.
func (h *UpdateCardStatusHandler) Handle(ctx context.Context, cmd UpdateCardStatusCommand) (*entities.Card, error) {
	if err := services.RequireAuthenticated(cmd.Principal); err != nil {
		return nil, err
	}

	status, err := valueobjects.ParseCardStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	card, err := h.cards.GetCardByID(ctx, cmd.CardID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, pkgerrors.NewNotFoundError("Card", cmd.CardID)
		}
		return nil, pkgerrors.Wrap(err, "failed to load card")
	}

	if err := services.RequireOwnership(cmd.Principal, card.UserID); err != nil {
		return nil, err
	}

	updated, err := h.cards.UpdateCardStatus(ctx, card.ID, status)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, pkgerrors.NewInternalError("Failed to update card status").WithCause(err)
		}
		return nil, pkgerrors.Wrap(err, "failed to update card status")
	}

	h.invalidator.Invalidate(updated.WeekID, cmd.Principal.ID)

	h.logger.Info("Card status updated",
		zap.String("card_id", updated.ID),
		zap.String("week_id", updated.WeekID),
		zap.String("from", card.Status.String()),
		zap.String("to", updated.Status.String()),
	)

	return updated, nil
}
