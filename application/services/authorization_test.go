package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"forzeit/application/ports"
	pkgerrors "forzeit/pkg/errors"
)

func TestRequireAuthenticated(t *testing.T) {
	assert.True(t, pkgerrors.IsUnauthenticated(RequireAuthenticated(nil)))
	assert.True(t, pkgerrors.IsUnauthenticated(RequireAuthenticated(&ports.Principal{})))
	assert.NoError(t, RequireAuthenticated(&ports.Principal{ID: "u1"}))
}

func TestRequireOwnership(t *testing.T) {
	tests := []struct {
		name      string
		principal *ports.Principal
		owner     string
		check     func(error) bool
	}{
		{name: "owner", principal: &ports.Principal{ID: "u1"}, owner: "u1"},
		{name: "anonymous", principal: nil, owner: "u1", check: pkgerrors.IsUnauthenticated},
		{name: "other user", principal: &ports.Principal{ID: "u2"}, owner: "u1", check: pkgerrors.IsForbidden},
		{name: "empty owner", principal: &ports.Principal{ID: "u1"}, owner: "", check: pkgerrors.IsForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireOwnership(tt.principal, tt.owner)
			if tt.check == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tt.check(err), "unexpected error %v", err)
		})
	}
}
