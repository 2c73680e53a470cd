package services

import (
	"forzeit/application/ports"
	pkgerrors "forzeit/pkg/errors"
)

// RequireAuthenticated fails with an unauthenticated error when no principal is present
func RequireAuthenticated(principal *ports.Principal) error {
	if principal == nil || principal.ID == "" {
		return pkgerrors.NewUnauthenticatedError("Authentication required. Please provide a valid JWT token.")
	}
	return nil
}

// RequireOwnership requires an authenticated principal whose id matches ownerID
func RequireOwnership(principal *ports.Principal, ownerID string) error {
	if err := RequireAuthenticated(principal); err != nil {
		return err
	}
	if principal.ID != ownerID {
		return pkgerrors.NewForbiddenError("Access denied. You can only access your own resources.").
			WithDetails(map[string]interface{}{"resource_owner": ownerID})
	}
	return nil
}
