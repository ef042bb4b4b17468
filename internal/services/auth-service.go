package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alphazero-wd/devzone/internal/domain"
	"github.com/alphazero-wd/devzone/internal/dto"
	"github.com/alphazero-wd/devzone/internal/helper"
	"github.com/alphazero-wd/devzone/internal/interfaces"
	"github.com/alphazero-wd/devzone/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Token store key prefixes. Confirmation tokens live until redeemed or the
// store is wiped; reset tokens expire after resetTokenTTL.
const (
	confirmEmailKeyPrefix   = "ce"
	forgotPasswordKeyPrefix = "fp"

	resetTokenTTL = 15 * time.Minute
)

func confirmKey(token string) string {
	return confirmEmailKeyPrefix + "-" + token
}

func resetKey(token string) string {
	return forgotPasswordKeyPrefix + "-" + token
}

// AuthService issues and redeems the single-use tokens behind signup email
// confirmation and forgot-password, and authenticates credentials.
type AuthService interface {
	Register(ctx context.Context, input dto.SignupRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	SendConfirmationEmail(ctx context.Context, user *domain.User) error
	ConfirmEmail(ctx context.Context, userID uint, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	users    repository.UserRepository
	tokens   interfaces.TokenStore
	notifier interfaces.Notifier
	auth     helper.Auth
}

func NewAuthService(
	users repository.UserRepository,
	tokens interfaces.TokenStore,
	notifier interfaces.Notifier,
	auth helper.Auth,
) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		auth:     auth,
	}
}

func (s *authService) Register(ctx context.Context, input dto.SignupRequest) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	name := strings.TrimSpace(input.Name)

	if email == "" || name == "" || strings.TrimSpace(input.Password) == "" {
		return nil, errors.New("invalid inputs")
	}
	if len(input.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	hashed, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, &domain.User{
		Name:     name,
		Email:    email,
		Password: hashed,
	})
	if err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	if err := s.SendConfirmationEmail(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrWrongCredentials
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWrongCredentials
		}
		return nil, err
	}

	if err := s.auth.VerifyPassword(password, user.Password); err != nil {
		return nil, ErrWrongCredentials
	}

	return user, nil
}

// SendConfirmationEmail issues a fresh confirmation token and mails the
// link. The token is stored before the send so a dropped email can be
// retried via resend without invalidating anything.
func (s *authService) SendConfirmationEmail(ctx context.Context, user *domain.User) error {
	token := uuid.NewString()

	if err := s.tokens.Set(ctx, confirmKey(token), user.ID, 0); err != nil {
		return err
	}
	return s.notifier.SendConfirmationEmail(ctx, user, token)
}

func (s *authService) ConfirmEmail(ctx context.Context, userID uint, token string) error {
	ownerID, err := s.tokens.Get(ctx, confirmKey(token))
	if err != nil {
		if errors.Is(err, interfaces.ErrTokenNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}

	if err := s.tokens.Del(ctx, confirmKey(token)); err != nil {
		return err
	}

	_, err = s.users.UpdateUser(ctx, userID, map[string]interface{}{
		"confirmed_at": time.Now(),
	})
	return err
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	token := uuid.NewString()
	if err := s.tokens.Set(ctx, resetKey(token), user.ID, resetTokenTTL); err != nil {
		return err
	}
	return s.notifier.SendPasswordReset(ctx, user, token)
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	userID, err := s.tokens.Get(ctx, resetKey(token))
	if err != nil {
		if errors.Is(err, interfaces.ErrTokenNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	hashed, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.tokens.Del(ctx, resetKey(token)); err != nil {
		return err
	}

	_, err = s.users.UpdateUser(ctx, userID, map[string]interface{}{
		"password": hashed,
	})
	return err
}
