package mailer

import (
	"context"
	"encoding/json"

	"github.com/alphazero-wd/devzone/internal/domain"
	"github.com/alphazero-wd/devzone/internal/dto"
	"github.com/alphazero-wd/devzone/internal/interfaces"
)

// KafkaNotifier hands mail off to the mail worker by publishing one event
// per message. Delivery is at-least-once; the worker owns rendering and
// the SMTP session.
type KafkaNotifier struct {
	producer interfaces.ProducerHandler
}

func NewKafkaNotifier(producer interfaces.ProducerHandler) *KafkaNotifier {
	return &KafkaNotifier{producer: producer}
}

func (n *KafkaNotifier) SendConfirmationEmail(ctx context.Context, user *domain.User, token string) error {
	return n.publish(dto.MailEvent{
		Template: dto.MailTemplateConfirmEmail,
		To:       user.Email,
		Name:     user.Name,
		Token:    token,
	})
}

func (n *KafkaNotifier) SendPasswordReset(ctx context.Context, user *domain.User, token string) error {
	return n.publish(dto.MailEvent{
		Template: dto.MailTemplateResetPassword,
		To:       user.Email,
		Name:     user.Name,
		Token:    token,
	})
}

func (n *KafkaNotifier) SendEmailChangeConfirmation(ctx context.Context, to, name, token string, side domain.EmailSide) error {
	return n.publish(dto.MailEvent{
		Template:  dto.MailTemplateChangeEmail,
		To:        to,
		Name:      name,
		Token:     token,
		EmailType: string(side),
	})
}

func (n *KafkaNotifier) publish(event dto.MailEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.producer.PublishMessage([]byte(event.Template), payload)
}
