package pkg

import (
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether the config is complete enough to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// BanNoticeHTML renders the mail body for a ban notification. until is
// nil for permanent bans.
func BanNoticeHTML(reason string, until *time.Time) string {
	if until != nil {
		return fmt.Sprintf(`<p>Your account has been banned until <b>%s</b>.</p><p>Reason: %s</p>`,
			until.Format("2006-01-02"), reason)
	}
	return fmt.Sprintf(`<p>Your account has been permanently banned.</p><p>Reason: %s</p>`, reason)
}
