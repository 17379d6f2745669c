package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed "templates"
var templateFS embed.FS

type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

type SMTPMailer struct {
	dialer *mail.Dialer
	sender string
}

func NewSMTPMailer(host string, port int, username, password, sender string) *SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &SMTPMailer{
		dialer: dialer,
		sender: sender,
	}
}

func (m *SMTPMailer) Send(recipient, templateFile string, data any) error {
	subject, plainBody, htmlBody, err := render(templateFile, data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	// Transient SMTP failures are retried a few times before giving up.
	for i := 1; i <= 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}

		if i < 3 {
			time.Sleep(500 * time.Millisecond)
		}
	}

	return err
}

// render executes the subject, plainBody and htmlBody blocks of an embedded
// template.
func render(templateFile string, data any) (subject, plainBody, htmlBody string, err error) {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to parse email template %s: %w", templateFile, err)
	}

	parts := make([]string, 3)
	for i, name := range []string{"subject", "plainBody", "htmlBody"} {
		buf := new(bytes.Buffer)

		err = tmpl.ExecuteTemplate(buf, name, data)
		if err != nil {
			return "", "", "", fmt.Errorf("failed to render %s of %s: %w", name, templateFile, err)
		}

		parts[i] = buf.String()
	}

	return parts[0], parts[1], parts[2], nil
}
