package dto

// Mail event templates. The template name doubles as the Kafka message key
// so the worker can dispatch without inspecting the payload first.
const (
	MailTemplateConfirmEmail  = "confirm-email"
	MailTemplateResetPassword = "reset-password"
	MailTemplateChangeEmail   = "change-email"
)

type MailEvent struct {
	Template  string `json:"template"`
	To        string `json:"to"`
	Name      string `json:"name"`
	Token     string `json:"token"`
	EmailType string `json:"email_type,omitempty"`
}
