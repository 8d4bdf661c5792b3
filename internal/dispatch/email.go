package dispatch

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// sendMailHook allows tests to override SMTP sending behavior.
var sendMailHook = smtp.SendMail

// Email delivers messages via SMTP.
type Email struct {
	Host, User, Pass string
	Port             int
	To               []string
	Subject          string
}

// Name returns the channel name.
func (e *Email) Name() string {
	return "Email"
}

// Notify sends the message as a plain-text email to all configured
// recipients in a single SMTP transaction.
func (e *Email) Notify(ctx context.Context, message string) error {
	_ = ctx // smtp.SendMail has no context support
	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	auth := smtp.PlainAuth("", e.User, e.Pass, e.Host)
	header := fmt.Sprintf(
		"To: %s\r\nSubject: %s\r\n\r\n",
		strings.Join(e.To, ","),
		e.Subject,
	)
	return sendMailHook(addr, auth, e.User, e.To, []byte(header+message))
}
