package state

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/session"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// TokenValidator rejects a stored token by returning an error.
type TokenValidator func(ctx context.Context, token string) error

type bootstrapOptions struct {
	validator TokenValidator
	logger    logging.Logger
}

type BootstrapOption func(*bootstrapOptions)

// WithValidator makes Bootstrap check the stored token before trusting it.
func WithValidator(v TokenValidator) BootstrapOption {
	return func(o *bootstrapOptions) { o.validator = v }
}

func WithLogger(l logging.Logger) BootstrapOption {
	return func(o *bootstrapOptions) { o.logger = l }
}

// Bootstrap restores the persisted session into store and ends its loading
// phase. A missing or partial session yields Unauthenticated with no error;
// partial entries are removed. Stored data is trusted unless a validator is
// supplied.
func Bootstrap(ctx context.Context, store *Store, sessions session.Store, opts ...BootstrapOption) State {
	o := bootstrapOptions{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	defer store.MarkReady()

	user, ok := sessions.Load(ctx)
	if !ok {
		sessions.Clear(ctx)
		return store.State()
	}

	if o.validator != nil {
		if err := o.validator(ctx, user.Token); err != nil {
			o.logger.Info(ctx, "stored session rejected", "user_id", user.ID, "error", err)
			sessions.Clear(ctx)
			return store.Dispatch(Logout())
		}
	}

	return store.Dispatch(LoginSuccess(user))
}

var now = time.Now

// ExpiryValidator rejects JWTs whose exp claim is in the past. The signature
// is not verified. Tokens that are not JWTs, or carry no exp, pass.
func ExpiryValidator(_ context.Context, token string) error {
	if strings.Count(token, ".") != 2 {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return errors.Join(common.ErrInvalidToken, err)
	}
	if exp != nil && !exp.After(now()) {
		return common.ErrTokenExpired
	}
	return nil
}
