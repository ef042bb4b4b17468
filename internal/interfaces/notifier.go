package interfaces

import (
	"context"

	"github.com/alphazero-wd/devzone/internal/domain"
)

// Notifier delivers transactional account mail. Implementations may send
// directly or hand the message off to the mail worker.
type Notifier interface {
	SendConfirmationEmail(ctx context.Context, user *domain.User, token string) error
	SendPasswordReset(ctx context.Context, user *domain.User, token string) error
	SendEmailChangeConfirmation(ctx context.Context, to, name, token string, side domain.EmailSide) error
}
