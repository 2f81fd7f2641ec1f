package users

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/codes"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type captureSender struct {
	mu   sync.Mutex
	sent []codes.Session
	err  error
}

func (c *captureSender) SendCode(ctx context.Context, user *User, sess codes.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, sess)
	return nil
}

func (c *captureSender) last() codes.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent[len(c.sent)-1]
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	return cfg
}

func newTestService(t *testing.T) (*Service, *captureSender, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	sender := &captureSender{}
	svc := NewService(repo, codes.NewStore(time.Minute), sender, testConfig(), logging.Nop(), WithHashCost(bcrypt.MinCost))
	return svc, sender, repo
}

func registerVerified(t *testing.T, svc *Service, sender *captureSender, email, phone, password string) string {
	t.Helper()
	ctx := context.Background()
	sess, err := svc.Register(ctx, email, phone, password)
	require.NoError(t, err)
	require.NoError(t, svc.Onboard(ctx, sess.UserID, sess.ID, sender.last().Code))
	return sess.UserID
}

func TestRegister(t *testing.T) {
	svc, sender, repo := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, " a@b.co ", "", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, codes.PurposeOnboard, sess.Purpose)
	assert.Equal(t, sess, sender.last())

	u, err := repo.GetByID(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", u.Email)
	assert.False(t, u.Verified)
	assert.NoError(t, bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("password1")))

	_, err = svc.Register(ctx, "a@b.co", "", "password2")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestRegister_Validation(t *testing.T) {
	svc, sender, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name                   string
		email, phone, password string
		wantErr                error
	}{
		{"no identifier", "", "", "password1", ErrIdentifierRequired},
		{"bad email", "nope", "", "password1", ErrInvalidInput},
		{"bad phone", "", "12ab", "password1", ErrInvalidInput},
		{"short password", "a@b.co", "", "short", ErrInvalidInput},
		{"empty password", "", "+15550001111", "", ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.phone, tt.password)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, sender.sent)
}

func TestRegister_SenderFailure(t *testing.T) {
	svc, sender, _ := newTestService(t)
	sender.err = errors.New("smtp down")

	_, err := svc.Register(context.Background(), "a@b.co", "", "password1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send code")
}

func TestOnboard(t *testing.T) {
	svc, sender, repo := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, "", "+15550001111", "password1")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Onboard(ctx, "ghost", sess.ID, sender.last().Code), common.ErrorNotFound)

	wrong := "000000"
	if sender.last().Code == wrong {
		wrong = "111111"
	}
	require.ErrorIs(t, svc.Onboard(ctx, sess.UserID, sess.ID, wrong), common.ErrCodeInvalid)

	require.NoError(t, svc.Onboard(ctx, sess.UserID, sess.ID, sender.last().Code))
	u, _ := repo.GetByID(ctx, sess.UserID)
	assert.True(t, u.Verified)
}

func TestLogin(t *testing.T) {
	svc, sender, _ := newTestService(t)
	ctx := context.Background()
	id := registerVerified(t, svc, sender, "a@b.co", "+15550001111", "password1")

	for _, username := range []string{"a@b.co", "A@B.CO", "+15550001111"} {
		u, token, err := svc.Login(ctx, username, "password1")
		require.NoError(t, err, username)
		assert.Equal(t, id, u.ID)

		claims, err := auth.ParseTokenFor(token, auth.PurposeLogin, []byte("test-secret"))
		require.NoError(t, err)
		assert.Equal(t, id, claims.Subject)
	}

	_, _, err := svc.Login(ctx, "a@b.co", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "ghost@b.co", "password1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Unverified(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.co", "", "password1")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@b.co", "password1")
	require.ErrorIs(t, err, ErrNotVerified)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, sender, _ := newTestService(t)
	ctx := context.Background()
	id := registerVerified(t, svc, sender, "a@b.co", "", "password1")

	_, err := svc.ForgotPassword(ctx, "", "")
	require.ErrorIs(t, err, ErrIdentifierRequired)
	_, err = svc.ForgotPassword(ctx, "ghost@b.co", "")
	require.ErrorIs(t, err, common.ErrorNotFound)

	sess, err := svc.ForgotPassword(ctx, "a@b.co", "")
	require.NoError(t, err)
	assert.Equal(t, id, sess.UserID)
	assert.Equal(t, codes.PurposeReset, sess.Purpose)

	token, err := svc.VerifyResetCode(ctx, id, sess.ID, sender.last().Code)
	require.NoError(t, err)

	_, err = auth.ParseTokenFor(token, auth.PurposeLogin, []byte("test-secret"))
	require.ErrorIs(t, err, common.ErrInvalidToken, "reset tokens are not login tokens")

	require.ErrorIs(t, svc.ResetPassword(ctx, "someone-else", token, "newpassword1"), common.ErrorForbidden)
	require.ErrorIs(t, svc.ResetPassword(ctx, id, token, "short"), ErrInvalidInput)
	require.ErrorIs(t, svc.ResetPassword(ctx, id, "garbage", "newpassword1"), common.ErrInvalidToken)

	require.NoError(t, svc.ResetPassword(ctx, id, token, "newpassword1"))
	require.ErrorIs(t, svc.ResetPassword(ctx, id, token, "newpassword2"), common.ErrInvalidToken, "reset tokens are single use")

	_, _, err = svc.Login(ctx, "a@b.co", "password1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "a@b.co", "newpassword1")
	require.NoError(t, err)
}

func TestVerifyResetCode_OnboardCodeRejected(t *testing.T) {
	svc, sender, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, "a@b.co", "", "password1")
	require.NoError(t, err)

	_, err = svc.VerifyResetCode(ctx, sess.UserID, sess.ID, sender.last().Code)
	require.ErrorIs(t, err, common.ErrCodeInvalid)
}

func TestResetPassword_LoginTokenRejected(t *testing.T) {
	svc, sender, _ := newTestService(t)
	ctx := context.Background()
	registerVerified(t, svc, sender, "a@b.co", "", "password1")

	u, token, err := svc.Login(ctx, "a@b.co", "password1")
	require.NoError(t, err)

	require.ErrorIs(t, svc.ResetPassword(ctx, u.ID, token, "newpassword1"), common.ErrInvalidToken)
}
