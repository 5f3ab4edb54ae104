package sessions

import (
	"context"
	"errors"

	"blog-app/models"
)

// ErrNoSession is returned by stores for unknown or expired sessions.
var ErrNoSession = errors.New("session not found")

// Store persists the server-side half of sessions.
type Store interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}
