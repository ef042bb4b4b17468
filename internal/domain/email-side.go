package domain

import "fmt"

// EmailSide names one half of a pending email change: the current ("old")
// address or the candidate ("new") one. Each side holds its own
// confirmation token on the user row.
type EmailSide string

const (
	EmailSideOld EmailSide = "old"
	EmailSideNew EmailSide = "new"
)

func ParseEmailSide(s string) (EmailSide, error) {
	switch EmailSide(s) {
	case EmailSideOld:
		return EmailSideOld, nil
	case EmailSideNew:
		return EmailSideNew, nil
	}
	return "", fmt.Errorf("invalid email type %q", s)
}

// Opposite returns the other side of the change.
func (s EmailSide) Opposite() EmailSide {
	if s == EmailSideOld {
		return EmailSideNew
	}
	return EmailSideOld
}
