package account

import (
	"context"
	"net/http"

	"github.com/joefazee/neo-admin/app/api"
)

// DefaultResetPasswordPath is where the backend accepts password changes.
const DefaultResetPasswordPath = "/auth/reset-password"

type gateway struct {
	client *api.Client
	path   string
}

// NewGateway creates the account gateway. An empty path uses
// DefaultResetPasswordPath.
func NewGateway(client *api.Client, path string) Gateway {
	if path == "" {
		path = DefaultResetPasswordPath
	}
	return &gateway{client: client, path: path}
}

// ResetPassword handles POST /auth/reset-password and returns the server
// acknowledgement.
func (g *gateway) ResetPassword(ctx context.Context, req ResetPasswordRequest) (string, error) {
	return g.client.Do(ctx, http.MethodPost, g.path, req, nil)
}
