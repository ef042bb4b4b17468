package mailworker

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphazero-wd/devzone/config"
	"github.com/alphazero-wd/devzone/internal/dto"
)

const defaultTemplateDir = "internal/mailworker/templates"

// MailService renders the account mail templates and delivers them over
// SMTP with STARTTLS.
type MailService struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	mailFrom     string
	mailFromName string
	publicOrigin string
	templateDir  string
}

func NewMailService(cfg config.Config) *MailService {
	templateDir := cfg.TemplateDir
	if templateDir == "" {
		templateDir = defaultTemplateDir
	}

	return &MailService{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUser:     cfg.SMTPUser,
		smtpPassword: cfg.SMTPPassword,
		mailFrom:     cfg.MailFrom,
		mailFromName: cfg.MailFromName,
		publicOrigin: cfg.PublicOrigin,
		templateDir:  templateDir,
	}
}

func (s *MailService) Send(event dto.MailEvent) error {
	var subject, link string

	switch event.Template {
	case dto.MailTemplateConfirmEmail:
		subject = "Confirm your email account"
		link = fmt.Sprintf("%s/confirm/account?token=%s",
			s.publicOrigin, url.QueryEscape(event.Token))
	case dto.MailTemplateResetPassword:
		subject = "Reset Password Request"
		link = fmt.Sprintf("%s/auth/password/reset?token=%s",
			s.publicOrigin, url.QueryEscape(event.Token))
	case dto.MailTemplateChangeEmail:
		subject = "Confirm email change"
		link = fmt.Sprintf("%s/confirm/email-change?token=%s&type=%s",
			s.publicOrigin, url.QueryEscape(event.Token), url.QueryEscape(event.EmailType))
	default:
		return fmt.Errorf("unknown mail template %q", event.Template)
	}

	htmlBody, err := s.render(event.Template, map[string]string{
		"Name": event.Name,
		"Link": link,
	})
	if err != nil {
		return err
	}

	fromHeader := fmt.Sprintf("%s <%s>", s.mailFromName, s.mailFrom)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", event.To),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	if err := s.sendSMTPWithTimeout(event.To, []byte(msg)); err != nil {
		return err
	}

	log.Printf("[MAIL] sent template=%s to=%s", event.Template, event.To)
	return nil
}

func (s *MailService) render(name string, data map[string]string) (string, error) {
	tmpl, err := template.ParseFiles(filepath.Join(s.templateDir, name+".html"))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(s.smtpHost, s.smtpPort)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// deadline covers the whole SMTP conversation
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.smtpHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.smtpHost}); err != nil {
			return err
		}
	}

	if s.smtpUser != "" {
		auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
