package handlers

import (
	"errors"
	"net/http"

	"forzeit/application/ports"
	"forzeit/pkg/common"
	pkgerrors "forzeit/pkg/errors"
	"forzeit/pkg/utils"

	"go.uber.org/zap"
)

// TokenGenerator issues signed tokens
type TokenGenerator interface {
	GenerateToken(userID, email, name string) (string, error)
}

// AuthHandler issues development tokens for seeded users
type AuthHandler struct {
	generator TokenGenerator
	users     ports.UserRepository
	errors    *pkgerrors.ErrorHandler
	logger    *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	generator TokenGenerator,
	users ports.UserRepository,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		generator: generator,
		users:     users,
		errors:    errors,
		logger:    logger,
	}
}

// TestTokenRequest names the user a token is issued for
type TestTokenRequest struct {
	UserID string `json:"userId" validate:"required,max=128"`
}

// TestTokenResponse carries an issued token
type TestTokenResponse struct {
	Token string          `json:"token"`
	User  ports.Principal `json:"user"`
}

// IssueTestToken handles POST /auth/test-token
func (h *AuthHandler) IssueTestToken(w http.ResponseWriter, r *http.Request) {
	var req TestTokenRequest
	if err := common.ParseJSONBody(w, r, &req, common.MaxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	user, err := h.users.GetUserByID(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			h.errors.Handle(w, r, pkgerrors.NewNotFoundError("User", req.UserID))
			return
		}
		h.errors.Handle(w, r, pkgerrors.Wrap(err, "failed to load user"))
		return
	}

	token, err := h.generator.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewInternalError("failed to sign token").WithCause(err))
		return
	}

	h.logger.Info("Issued test token", zap.String("user_id", user.ID))

	respond(w, h.logger, http.StatusOK, TestTokenResponse{
		Token: token,
		User: ports.Principal{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	})
}
