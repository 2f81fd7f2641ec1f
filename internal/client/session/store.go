// Package session persists the authenticated identity across runs of the
// client. Four independent entries are kept in the local metadata table:
// token, userId, email and phone.
//
// The store never returns errors. Storage failures are logged and read as
// "no session", which is what the bootstrap check expects.
package session

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

const (
	KeyToken  = "token"
	KeyUserID = "userId"
	KeyEmail  = "email"
	KeyPhone  = "phone"
)

// Keys lists every entry owned by the store.
var Keys = []string{KeyToken, KeyUserID, KeyEmail, KeyPhone}

// Store is the session persistence contract used by the auth service and the
// bootstrap check.
type Store interface {
	Save(ctx context.Context, user *models.User)
	Load(ctx context.Context) (*models.User, bool)
	Clear(ctx context.Context)
}

type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
}

func NewSQLiteStore(db *sql.DB, logger logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger.With("module", "session")}
}

// Save writes token, id and whichever of email/phone are set in a single
// transaction. An absent email or phone removes any stale value so the stored
// identity always describes one user.
func (s *SQLiteStore) Save(ctx context.Context, user *models.User) {
	if user == nil {
		return
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		if err := repo.Set(ctx, KeyToken, []byte(user.Token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyUserID, []byte(user.ID)); err != nil {
			return err
		}

		optional := []struct{ key, value string }{
			{KeyEmail, user.Email},
			{KeyPhone, user.Phone},
		}
		for _, o := range optional {
			var err error
			if o.value != "" {
				err = repo.Set(ctx, o.key, []byte(o.value))
			} else {
				err = repo.Delete(ctx, o.key)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "failed to save session", "error", err)
	}
}

// Load returns the stored identity. A missing token or user id yields
// (nil, false); a partial identity is never reported as valid.
func (s *SQLiteStore) Load(ctx context.Context) (*models.User, bool) {
	values, err := metadata.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to load session", "error", err)
		return nil, false
	}

	token, id := string(values[KeyToken]), string(values[KeyUserID])
	if token == "" || id == "" {
		return nil, false
	}

	return &models.User{
		ID:    id,
		Email: string(values[KeyEmail]),
		Phone: string(values[KeyPhone]),
		Token: token,
	}, true
}

// Clear removes all session entries.
func (s *SQLiteStore) Clear(ctx context.Context) {
	if err := metadata.NewSQLiteRepository(s.db).Delete(ctx, Keys...); err != nil {
		s.logger.Error(ctx, "failed to clear session", "error", err)
	}
}
