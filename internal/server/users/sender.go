package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/codes"
)

// CodeSender delivers a verification code to the user.
type CodeSender interface {
	SendCode(ctx context.Context, user *User, sess codes.Session) error
}

// LogSender writes codes to the server log instead of mailing them.
type LogSender struct {
	logger logging.Logger
}

func NewLogSender(logger logging.Logger) *LogSender {
	return &LogSender{logger: logger.With("module", "code_sender")}
}

func (s *LogSender) SendCode(ctx context.Context, user *User, sess codes.Session) error {
	s.logger.Info(ctx, "verification code issued",
		"user_id", user.ID,
		"email", user.Email,
		"phone", user.Phone,
		"purpose", sess.Purpose,
		"session_id", sess.ID,
		"code", sess.Code,
		"expires_at", sess.ExpiresAt,
	)
	return nil
}
