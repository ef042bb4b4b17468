package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alphazero-wd/devzone/internal/domain"
	"github.com/alphazero-wd/devzone/internal/dto"
	"github.com/alphazero-wd/devzone/internal/helper"
	"github.com/alphazero-wd/devzone/internal/interfaces"
	"github.com/alphazero-wd/devzone/internal/repository"
	"github.com/alphazero-wd/devzone/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	avatarFolder   = "avatars"
	avatarMaxWidth = 512
	avatarQuality  = 85
)

// SettingsService covers the account settings operations, most importantly
// the dual-token email change: the new address only takes effect after both
// the current and the candidate address have confirmed their token, in
// either order.
type SettingsService interface {
	UpdateName(ctx context.Context, userID uint, name string) (*domain.User, error)
	UpdatePassword(ctx context.Context, user *domain.User, password, newPassword string) error
	DeleteAccount(ctx context.Context, user *domain.User, password string) error

	InitEmailChange(ctx context.Context, user *domain.User, newEmail string) error
	ConfirmEmailChange(ctx context.Context, user *domain.User, token string, side domain.EmailSide) (*dto.EmailChangeResult, error)

	UpdateAvatar(ctx context.Context, user *domain.User, data []byte) error
	DeleteAvatar(ctx context.Context, user *domain.User) error
}

type settingsService struct {
	users    repository.UserRepository
	files    repository.FileRepository
	uploader interfaces.Uploader
	notifier interfaces.Notifier
	auth     helper.Auth
}

func NewSettingsService(
	users repository.UserRepository,
	files repository.FileRepository,
	uploader interfaces.Uploader,
	notifier interfaces.Notifier,
	auth helper.Auth,
) SettingsService {
	return &settingsService{
		users:    users,
		files:    files,
		uploader: uploader,
		notifier: notifier,
		auth:     auth,
	}
}

func (s *settingsService) UpdateName(ctx context.Context, userID uint, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}

	user, err := s.users.UpdateUser(ctx, userID, map[string]interface{}{
		"name": name,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *settingsService) UpdatePassword(ctx context.Context, user *domain.User, password, newPassword string) error {
	if err := s.auth.VerifyPassword(password, user.Password); err != nil {
		return ErrWrongPassword
	}
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	hashed, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = s.users.UpdateUser(ctx, user.ID, map[string]interface{}{
		"password": hashed,
	})
	return err
}

func (s *settingsService) DeleteAccount(ctx context.Context, user *domain.User, password string) error {
	if err := s.auth.VerifyPassword(password, user.Password); err != nil {
		return ErrWrongPassword
	}
	return s.users.DeleteUser(ctx, user.ID)
}

// InitEmailChange starts a pending change towards newEmail: two fresh
// tokens, one mailed to each address. Calling it again while a change is
// pending overwrites the previous state, so only the latest pair of tokens
// stays redeemable.
func (s *settingsService) InitEmailChange(ctx context.Context, user *domain.User, newEmail string) error {
	newEmail = strings.TrimSpace(strings.ToLower(newEmail))
	if newEmail == "" {
		return errors.New("email cannot be empty")
	}

	// changing to the current address is a no-op, not an error
	if newEmail == user.Email {
		return nil
	}

	if _, err := s.users.FindUserByEmail(ctx, newEmail); err == nil {
		return ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	oldEmailToken := uuid.NewString()
	newEmailToken := uuid.NewString()

	if _, err := s.users.UpdateUser(ctx, user.ID, map[string]interface{}{
		"old_email_token": oldEmailToken,
		"new_email_token": newEmailToken,
		"new_email":       newEmail,
	}); err != nil {
		return err
	}

	if err := s.notifier.SendEmailChangeConfirmation(ctx, user.Email, user.Name, oldEmailToken, domain.EmailSideOld); err != nil {
		return err
	}
	return s.notifier.SendEmailChangeConfirmation(ctx, newEmail, user.Name, newEmailToken, domain.EmailSideNew)
}

// ConfirmEmailChange redeems the token for one side of a pending change.
// The cleared state is read back from the store, so two racing confirms
// settle on the same terminal state: whichever write lands second observes
// both tokens gone and promotes the new address.
func (s *settingsService) ConfirmEmailChange(ctx context.Context, user *domain.User, token string, side domain.EmailSide) (*dto.EmailChangeResult, error) {
	var stored *string
	var column string
	switch side {
	case domain.EmailSideOld:
		stored, column = user.OldEmailToken, "old_email_token"
	case domain.EmailSideNew:
		stored, column = user.NewEmailToken, "new_email_token"
	default:
		return nil, fmt.Errorf("invalid email type %q", side)
	}

	// a nil field covers both "never issued" and "already confirmed"
	if token == "" || stored == nil || *stored != token {
		return nil, ErrInvalidToken
	}

	updated, err := s.users.UpdateUser(ctx, user.ID, map[string]interface{}{
		column: nil,
	})
	if err != nil {
		return nil, err
	}

	if updated.OldEmailToken == nil && updated.NewEmailToken == nil {
		// both sides confirmed; promote unless a racing confirm already did
		if updated.NewEmail != nil {
			if _, err := s.users.UpdateUser(ctx, user.ID, map[string]interface{}{
				"email":     *updated.NewEmail,
				"new_email": nil,
			}); err != nil {
				return nil, err
			}
		}
		return &dto.EmailChangeResult{
			Updated: true,
			Message: "Your email has been successfully updated",
		}, nil
	}

	return &dto.EmailChangeResult{
		Updated: false,
		Message: fmt.Sprintf(
			"Confirm your %s email successfully. Now confirm the token sent to your %s email",
			side, side.Opposite(),
		),
	}, nil
}

func (s *settingsService) UpdateAvatar(ctx context.Context, user *domain.User, data []byte) error {
	normalized, err := utils.NormalizeToJPG(data, avatarMaxWidth, avatarQuality)
	if err != nil {
		return err
	}

	if user.Avatar != nil {
		if err := s.removeAvatar(ctx, user); err != nil {
			return err
		}
	}

	key := avatarFolder + "/" + uuid.NewString()
	url, err := s.uploader.UploadBytes(ctx, key, normalized)
	if err != nil {
		return err
	}

	file, err := s.files.CreateFile(ctx, &domain.File{Key: key, URL: url})
	if err != nil {
		return err
	}

	_, err = s.users.UpdateUser(ctx, user.ID, map[string]interface{}{
		"avatar_id": file.ID,
	})
	return err
}

func (s *settingsService) DeleteAvatar(ctx context.Context, user *domain.User) error {
	if user.Avatar == nil {
		return ErrNoAvatar
	}
	return s.removeAvatar(ctx, user)
}

func (s *settingsService) removeAvatar(ctx context.Context, user *domain.User) error {
	if err := s.uploader.DeleteFile(ctx, user.Avatar.Key); err != nil {
		return err
	}

	// detach before dropping the file row so the reference never dangles
	if _, err := s.users.UpdateUser(ctx, user.ID, map[string]interface{}{
		"avatar_id": nil,
	}); err != nil {
		return err
	}
	return s.files.DeleteFile(ctx, user.Avatar.ID)
}
