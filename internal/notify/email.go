package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"zhuimi-checkin/internal/components/assert"
	"zhuimi-checkin/internal/components/telemetry"

	"github.com/jordan-wright/email"
)

type SmtpOptions struct {
	Server       string
	Port         int
	EmailAddress string
	Password     string
	To           []string
	Subject      string
}

// Email sends messages as plain text mail.
type Email struct {
	opts SmtpOptions
	tel  telemetry.API
}

func NewEmail(opts SmtpOptions, tel telemetry.API) Email {
	assert.NotNil(tel)
	if opts.Port == 0 {
		opts.Port = 587
	}
	if opts.Subject == "" {
		opts.Subject = "逐觅签到通知"
	}
	return Email{opts: opts, tel: telemetry.NewScopedAPI("notify", tel)}
}

func (e Email) Configured() bool {
	return e.opts.Server != "" && e.opts.EmailAddress != "" && len(e.opts.To) > 0
}

func (e Email) compose(message string) *email.Email {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Zhuimi Checkin <%s>", e.opts.EmailAddress)
	mail.To = e.opts.To
	mail.Subject = e.opts.Subject
	mail.Text = []byte(message)
	return mail
}

// Notify sends the message, ctx is unused since the mail library does not
// accept one.
func (e Email) Notify(_ context.Context, message string) {
	if !e.Configured() {
		e.tel.ReportDebug("smtp not configured, skipping email")
		return
	}

	mail := e.compose(message)
	addr := fmt.Sprintf("%s:%d", e.opts.Server, e.opts.Port)

	var auth smtp.Auth
	if e.opts.Password != "" {
		auth = smtp.PlainAuth("", e.opts.EmailAddress, e.opts.Password, e.opts.Server)
	}
	err := mail.Send(addr, auth)
	if err != nil && auth != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		e.tel.ReportBroken(report_email_send, err)
		return
	}
	e.tel.ReportInfo("email sent", strings.Join(e.opts.To, ","))
}
