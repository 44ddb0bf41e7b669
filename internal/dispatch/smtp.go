package dispatch

import (
	"context"
	"fmt"
	"net/smtp"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type SMTPProvider struct {
	cfg SMTPConfig
}

func NewSMTP(cfg SMTPConfig) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) Deliver(ctx context.Context, reminder Reminder) error {
	if reminder.OwnerEmail == "" {
		return fmt.Errorf("reminder for visit %s has no recipient address", reminder.VisitID)
	}

	auth := smtp.PlainAuth("", p.cfg.Username, p.cfg.Password, p.cfg.Host)
	addr := fmt.Sprintf("%s:%s", p.cfg.Host, p.cfg.Port)

	subject := fmt.Sprintf("Upcoming visit reminder from %s", reminder.ClinicName)
	body := fmt.Sprintf("Hello %s,\r\n\r\nThis is a reminder that %s has a %s visit scheduled on %s.\r\n\r\n%s",
		reminder.OwnerName,
		reminder.PetName,
		reminder.VisitType,
		reminder.VisitDate.Format("Mon, 2 Jan 2006 15:04"),
		reminder.ClinicName,
	)
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s", reminder.OwnerEmail, subject, body))

	return smtp.SendMail(addr, auth, p.cfg.From, []string{reminder.OwnerEmail}, msg)
}
