package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"

	"bracket-pool-go/logging"
)

// EmailConfig holds SMTP configuration.
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// EmailService sends transactional mail. When SMTP is unconfigured it
// degrades to logging the would-be message instead of failing callers.
type EmailService struct {
	config EmailConfig
	logger *logging.Logger
}

// NewEmailService creates a new email service.
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{
		config: config,
		logger: logging.WithPrefix("EmailService"),
	}
}

// IsConfigured reports whether the service can actually send mail.
func (e *EmailService) IsConfigured() bool {
	return e.config.SMTPHost != "" && e.config.SMTPUsername != "" &&
		e.config.SMTPPassword != "" && e.config.FromEmail != ""
}

var resetEmailTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Bracket Pool - Password Reset</h2>
  <p>Hello {{.Name}},</p>
  <p>We received a request to reset the password for your Bracket Pool account.
     If you made this request, open the link below:</p>
  <p><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>
  <p>The link expires in 24 hours. If you didn't request a reset, you can
     safely ignore this email.</p>
</body>
</html>`))

var inviteEmailTemplate = template.Must(template.New("invite").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Bracket Pool - League Invitation</h2>
  <p>Hello{{if .Name}} {{.Name}}{{end}},</p>
  <p>You've been invited to join the league <strong>{{.LeagueName}}</strong>.</p>
  <p>Join with invite code <strong>{{.InviteCode}}</strong> or open
     <a href="{{.JoinURL}}">{{.JoinURL}}</a>.</p>
</body>
</html>`))

// SendPasswordResetEmail sends a password reset link.
func (e *EmailService) SendPasswordResetEmail(toEmail, toName, resetToken, baseURL string) error {
	data := struct {
		Name     string
		ResetURL string
	}{
		Name:     toName,
		ResetURL: fmt.Sprintf("%s/reset-password?token=%s", baseURL, resetToken),
	}

	var body bytes.Buffer
	if err := resetEmailTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	return e.send(toEmail, "Bracket Pool - Password Reset", body.String())
}

// SendLeagueInviteEmail sends a league invite code.
func (e *EmailService) SendLeagueInviteEmail(toEmail, toName, leagueName, inviteCode, baseURL string) error {
	data := struct {
		Name       string
		LeagueName string
		InviteCode string
		JoinURL    string
	}{
		Name:       toName,
		LeagueName: leagueName,
		InviteCode: inviteCode,
		JoinURL:    fmt.Sprintf("%s/join?code=%s", baseURL, inviteCode),
	}

	var body bytes.Buffer
	if err := inviteEmailTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render invite email: %w", err)
	}

	return e.send(toEmail, "Bracket Pool - League Invitation", body.String())
}

// send delivers one HTML message. Port 465 uses implicit TLS; anything else
// goes through STARTTLS via smtp.SendMail.
func (e *EmailService) send(to, subject, htmlBody string) error {
	if !e.IsConfigured() {
		e.logger.Infof("Email not configured, skipping %q to %s", subject, to)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", e.config.FromName, e.config.FromEmail)
	message := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		htmlBody)

	addr := net.JoinHostPort(e.config.SMTPHost, e.config.SMTPPort)
	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	var err error
	if e.config.SMTPPort == "465" {
		err = e.sendImplicitTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, e.config.FromEmail, []string{to}, message)
	}
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	e.logger.Infof("Sent %q to %s", subject, to)
	return nil
}

func (e *EmailService) sendImplicitTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: e.config.SMTPHost})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, e.config.SMTPHost)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(e.config.FromEmail); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(message); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}
