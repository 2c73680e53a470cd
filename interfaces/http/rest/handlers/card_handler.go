package handlers

import (
	"net/http"

	"forzeit/application/commands"
	"forzeit/domain/core/entities"
	"forzeit/pkg/common"
	pkgerrors "forzeit/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CardHandler handles card mutations
type CardHandler struct {
	commandBus CommandSender
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewCardHandler creates a new card handler
func NewCardHandler(commandBus CommandSender, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *CardHandler {
	return &CardHandler{
		commandBus: commandBus,
		errors:     errors,
		logger:     logger,
	}
}

// CreateCardRequest represents the request body for creating a card
type CreateCardRequest struct {
	WeekID  string `json:"weekId"`
	Title   string `json:"title"`
	Minutes int    `json:"minutes"`
}

// UpdateCardStatusRequest represents the request body for a status change
type UpdateCardStatusRequest struct {
	Status string `json:"status"`
}

// CreateCard handles POST /cards
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	if err := common.ParseJSONBody(w, r, &req, common.MaxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateCardCommand{
		WeekID:    req.WeekID,
		Title:     req.Title,
		Minutes:   req.Minutes,
		Principal: principalFrom(r),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	card, ok := result.(*entities.Card)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	respond(w, h.logger, http.StatusCreated, card)
}

// UpdateCardStatus handles PATCH /cards/{cardID}/status
func (h *CardHandler) UpdateCardStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateCardStatusRequest
	if err := common.ParseJSONBody(w, r, &req, common.MaxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateCardStatusCommand{
		CardID:    chi.URLParam(r, "cardID"),
		Status:    req.Status,
		Principal: principalFrom(r),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	card, ok := result.(*entities.Card)
	if !ok {
		h.errors.Handle(w, r, unexpectedResult(result))
		return
	}

	respond(w, h.logger, http.StatusOK, card)
}
