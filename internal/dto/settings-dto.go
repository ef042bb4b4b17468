package dto

type UpdateNameRequest struct {
	Name string `json:"name"`
}

type UpdatePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type UpdateEmailRequest struct {
	Email string `json:"email"`
}

type ConfirmEmailChangeRequest struct {
	Token     string `json:"token"`
	EmailType string `json:"emailType"`
}

// EmailChangeResult reports the outcome of confirming one side of a pending
// email change. Updated is true once both sides have confirmed and the new
// address has been promoted.
type EmailChangeResult struct {
	Updated bool   `json:"updated"`
	Message string `json:"message"`
}
