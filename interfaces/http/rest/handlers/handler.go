package handlers

import (
	"context"
	"fmt"
	"net/http"

	"forzeit/application/commands/bus"
	"forzeit/application/ports"
	querybus "forzeit/application/queries/bus"
	"forzeit/pkg/auth"
	"forzeit/pkg/common"
	pkgerrors "forzeit/pkg/errors"

	"go.uber.org/zap"
)

// CommandSender dispatches commands
type CommandSender interface {
	Send(ctx context.Context, cmd bus.Command) (interface{}, error)
}

// QueryAsker dispatches queries
type QueryAsker interface {
	Ask(ctx context.Context, query querybus.Query) (interface{}, error)
}

// principalFrom converts the authenticated user, if any, into a principal
func principalFrom(r *http.Request) *ports.Principal {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		return nil
	}
	return &ports.Principal{
		ID:    user.UserID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// respond writes a JSON body and logs encoding failures
func respond(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	if err := common.RespondJSON(w, status, data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// unexpectedResult reports a bus result of the wrong type
func unexpectedResult(result interface{}) error {
	return pkgerrors.NewInternalError("unexpected handler result").
		WithDetails(map[string]interface{}{"type": fmt.Sprintf("%T", result)})
}
