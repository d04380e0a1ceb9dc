// Package email provides email sending functionality
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strings"
)

// Config holds email configuration
type Config struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	FromName    string
	UseTLS      bool
	FrontendURL string
}

// Service handles email sending
type Service struct {
	config    *Config
	templates map[string]*template.Template
}

// NewService creates a new email service
func NewService(config *Config) *Service {
	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
	}
	s.loadTemplates()
	return s
}

type welcomeEmailData struct {
	Name         string
	Email        string
	TempPassword string
	LoginURL     string
}

func (s *Service) loadTemplates() {
	s.templates["welcome"] = template.Must(template.New("welcome").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .credentials { background: white; border-radius: 8px; padding: 16px; margin: 16px 0; font-family: monospace; }
        .btn { display: inline-block; background: #2563eb; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>Welcome to TaskFlow</h2>
    </div>
    <div class="content">
        <p>Hi {{.Name}},</p>
        <p>An account has been created for you. Sign in with the temporary password below — you will be asked to choose a new one on first login.</p>

        <div class="credentials">
            <p><strong>Email:</strong> {{.Email}}</p>
            <p><strong>Temporary password:</strong> {{.TempPassword}}</p>
        </div>

        <a href="{{.LoginURL}}" class="btn">Sign In</a>
    </div>
    <div class="footer">
        TaskFlow • Sprint &amp; Task Tracking
    </div>
</div>
</body>
</html>
`))
}

// SendWelcomeEmail sends the onboarding email with the temporary password.
func (s *Service) SendWelcomeEmail(to, name, tempPassword string) error {
	tmpl, ok := s.templates["welcome"]
	if !ok {
		return fmt.Errorf("welcome template not loaded")
	}

	var body bytes.Buffer
	err := tmpl.Execute(&body, welcomeEmailData{
		Name:         name,
		Email:        to,
		TempPassword: tempPassword,
		LoginURL:     s.config.FrontendURL + "/login",
	})
	if err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	return s.send([]string{to}, "Welcome to TaskFlow", body.String())
}

func (s *Service) send(to []string, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	from := fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)

	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(to, ", "),
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": `text/html; charset="UTF-8"`,
	}

	var msg bytes.Buffer
	for k, v := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, v)
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if s.config.User != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}

	if s.config.UseTLS {
		return s.sendTLS(addr, auth, to, msg.Bytes())
	}

	if err := smtp.SendMail(addr, auth, s.config.From, to, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("📧 [Email] Sent %q to %s", subject, strings.Join(to, ", "))
	return nil
}

// sendTLS sends over an implicit-TLS connection (typically port 465).
func (s *Service) sendTLS(addr string, auth smtp.Auth, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("failed to dial TLS: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth failed: %w", err)
		}
	}
	if err := client.Mail(s.config.From); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
