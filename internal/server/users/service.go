package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/codes"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
)

var (
	ErrIdentifierRequired = errors.New("email or phone is required")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account is not verified")
)

var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

const minPasswordLength = 8

// Service implements the account operations behind the HTTP API.
type Service struct {
	repo          Repository
	codes         *codes.Store
	sender        CodeSender
	logger        logging.Logger
	jwtSecret     []byte
	tokenTTL      time.Duration
	resetTokenTTL time.Duration
	hashCost      int

	mu         sync.Mutex
	usedResets map[string]time.Time // jti -> token expiry
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func NewService(repo Repository, store *codes.Store, sender CodeSender, cfg *config.Config, logger logging.Logger, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		codes:         store,
		sender:        sender,
		logger:        logger.With("module", "users"),
		jwtSecret:     []byte(cfg.SecretKey),
		tokenTTL:      cfg.TokenTTL,
		resetTokenTTL: cfg.ResetTokenTTL,
		hashCost:      bcrypt.DefaultCost,
		usedResets:    make(map[string]time.Time),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// InputError is a rejected field value. It matches ErrInvalidInput and its
// message is meant for the end user.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(err error) error {
	return &InputError{Reason: err.Error()}
}

func validatePassword(password string) error {
	if err := validation.Validate(password,
		validation.Required.Error("Password is required"),
		validation.Length(minPasswordLength, 0).Error("Password must be at least 8 characters"),
	); err != nil {
		return invalid(err)
	}
	return nil
}

func validateIdentifiers(email, phone string) error {
	if email == "" && phone == "" {
		return ErrIdentifierRequired
	}
	if err := validation.Validate(email, is.Email.Error("Invalid email address")); err != nil {
		return invalid(err)
	}
	if err := validation.Validate(phone, validation.Match(phoneRe).Error("Invalid phone number")); err != nil {
		return invalid(err)
	}
	return nil
}

func (s *Service) issueCode(ctx context.Context, user *User, purpose string) (codes.Session, error) {
	sess, err := s.codes.Issue(user.ID, purpose)
	if err != nil {
		return codes.Session{}, fmt.Errorf("issue code: %w", err)
	}
	if err := s.sender.SendCode(ctx, user, sess); err != nil {
		return codes.Session{}, fmt.Errorf("send code: %w", err)
	}
	return sess, nil
}

// Register creates an unverified account and sends an onboarding code.
func (s *Service) Register(ctx context.Context, email, phone, password string) (codes.Session, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if err := validateIdentifiers(email, phone); err != nil {
		return codes.Session{}, err
	}
	if err := validatePassword(password); err != nil {
		return codes.Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return codes.Session{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{Email: email, Phone: phone, PasswordHash: hash})
	if err != nil {
		return codes.Session{}, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return s.issueCode(ctx, user, codes.PurposeOnboard)
}

// Onboard marks the account verified once the code matches.
func (s *Service) Onboard(ctx context.Context, userID, sessionID, code string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.codes.Verify(sessionID, userID, codes.PurposeOnboard, code); err != nil {
		return err
	}

	user.Verified = true
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info(ctx, "user verified", "user_id", user.ID)
	return nil
}

// Login checks the password of the user whose email or phone equals
// username and returns the user with a fresh token.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	user, err := s.repo.GetUserByLogin(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, "", ErrNotVerified
	}

	token, err := auth.GenerateToken(user.ID, auth.PurposeLogin, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// ForgotPassword sends a reset code to the account with the given email or
// phone.
func (s *Service) ForgotPassword(ctx context.Context, email, phone string) (codes.Session, error) {
	login := strings.TrimSpace(email)
	if login == "" {
		login = strings.TrimSpace(phone)
	}
	if login == "" {
		return codes.Session{}, ErrIdentifierRequired
	}

	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		return codes.Session{}, err
	}

	return s.issueCode(ctx, user, codes.PurposeReset)
}

// VerifyResetCode exchanges a reset code for a short-lived reset token.
func (s *Service) VerifyResetCode(ctx context.Context, userID, sessionID, code string) (string, error) {
	if err := s.codes.Verify(sessionID, userID, codes.PurposeReset, code); err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(userID, auth.PurposeReset, s.jwtSecret, s.resetTokenTTL)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// consumeReset marks a reset token as used. It fails if the token was
// already used.
func (s *Service) consumeReset(claims *auth.Claims) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, exp := range s.usedResets {
		if now.After(exp) {
			delete(s.usedResets, id)
		}
	}

	if _, used := s.usedResets[claims.ID]; used {
		return common.ErrInvalidToken
	}
	s.usedResets[claims.ID] = claims.ExpiresAt.Time
	return nil
}

// ResetPassword sets a new password. The reset token's subject must be
// userID and each reset token works once.
func (s *Service) ResetPassword(ctx context.Context, userID, token, password string) error {
	claims, err := auth.ParseTokenFor(token, auth.PurposeReset, s.jwtSecret)
	if err != nil {
		return err
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return common.ErrInvalidToken
	}
	if claims.Subject != userID {
		return common.ErrorForbidden
	}

	if err := validatePassword(password); err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.consumeReset(claims); err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info(ctx, "password reset", "user_id", user.ID)
	return nil
}
