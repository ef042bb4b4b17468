package mailworker

import (
	"encoding/json"
	"log"

	"github.com/alphazero-wd/devzone/internal/dto"
)

type Sender interface {
	Send(event dto.MailEvent) error
}

type MailHandler struct {
	sender Sender
}

func NewMailHandler(sender Sender) *MailHandler {
	return &MailHandler{sender: sender}
}

func (h *MailHandler) HandleMessage(message string) error {
	var event dto.MailEvent

	if err := json.Unmarshal([]byte(message), &event); err != nil {
		log.Printf("invalid event payload: %s\n", message)
		return err
	}

	return h.sender.Send(event)
}
