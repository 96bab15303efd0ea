// Package mockapi is an in-memory stand-in for the todo backend. It serves
// the same routes and error shapes as the real API so the client can be
// exercised locally and in tests. State is lost on restart.
package mockapi

import (
	"time"

	"github.com/redmonkez12/go-todo-client/internal/logging"
	"github.com/redmonkez12/go-todo-client/internal/task"
	"github.com/redmonkez12/go-todo-client/internal/user"
)

// Options configures an API
type Options struct {
	TokenKey       []byte // 32 bytes, or empty for a random key
	TokenDuration  time.Duration
	TrustedOrigins []string
	Logger         *logging.Logger
}

// API holds the mock's state and HTTP handlers
type API struct {
	users          *user.Repository
	tasks          *task.Repository
	tokens         *TokenService
	tokenDuration  time.Duration
	trustedOrigins []string
	logger         *logging.Logger
}

func New(opts Options) (*API, error) {
	tokens, err := NewTokenService(opts.TokenKey)
	if err != nil {
		return nil, err
	}
	if opts.TokenDuration <= 0 {
		opts.TokenDuration = 30 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	return &API{
		users:          user.NewRepository(),
		tasks:          task.NewRepository(),
		tokens:         tokens,
		tokenDuration:  opts.TokenDuration,
		trustedOrigins: opts.TrustedOrigins,
		logger:         opts.Logger,
	}, nil
}

// IssueToken returns a valid token for an existing user id. Tests use it
// to build sessions without going through login.
func (a *API) IssueToken(userID, email string, duration time.Duration) string {
	return a.tokens.CreateToken(userID, email, duration)
}
