package security

import (
	"context"

	"github.com/joefazee/neo-admin/models"
)

// Session is the authenticated-user context of the running client.
type Session struct {
	token     string
	userID    string
	inspector *TokenInspector
}

// NewSession builds a session from the configured access token. A non-empty
// userID takes precedence over whatever the token says.
func NewSession(token, userID string, inspector *TokenInspector) *Session {
	return &Session{token: token, userID: userID, inspector: inspector}
}

// Token returns the raw access token, possibly empty.
func (s *Session) Token() string {
	return s.token
}

// CurrentUser resolves the signed-in admin.
func (s *Session) CurrentUser(_ context.Context) (*Identity, error) {
	if s.userID != "" {
		return &Identity{UserID: s.userID}, nil
	}
	if s.token == "" || s.inspector == nil {
		return nil, models.ErrUnknownUser
	}
	return s.inspector.Inspect(s.token)
}
