package apply

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/gate"
)

// EmailApplier sends a short application email to the contact address
// found in the posting description.
type EmailApplier struct {
	Host     string
	Port     int
	From     string
	Password string

	// send seam for tests; defaults to smtp.SendMail
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailApplier(host string, port int, from, password string) *EmailApplier {
	return &EmailApplier{
		Host:     host,
		Port:     port,
		From:     from,
		Password: password,
		send:     smtp.SendMail,
	}
}

func (e *EmailApplier) Name() string { return "email" }

func (e *EmailApplier) Supports(p domain.Posting) bool {
	return p.ApplicationMethod == domain.MethodEmailApplication &&
		gate.ContactEmail(p.Description) != ""
}

func (e *EmailApplier) Apply(ctx context.Context, p domain.Posting) (Result, error) {
	to := gate.ContactEmail(p.Description)
	if to == "" {
		return Result{Detail: "no contact email in posting"}, nil
	}

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	msg := e.compose(to, p)
	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	auth := smtp.PlainAuth("", e.From, e.Password, e.Host)

	sendFn := e.send
	if sendFn == nil {
		sendFn = smtp.SendMail
	}
	if err := sendFn(addr, auth, e.From, []string{to}, msg); err != nil {
		return Result{}, fmt.Errorf("send application email: %w", err)
	}
	return Result{Submitted: true, Detail: "emailed " + to}, nil
}

func (e *EmailApplier) compose(to string, p domain.Posting) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: Application for %s\r\n", p.Title)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")

	fmt.Fprintf(&b, "Dear %s hiring team,\r\n\r\n", p.Company)
	fmt.Fprintf(&b, "I would like to apply for the %s position", p.Title)
	if p.Location != "" {
		fmt.Fprintf(&b, " (%s)", p.Location)
	}
	b.WriteString(".\r\n\r\n")
	if len(p.Keywords) > 0 {
		fmt.Fprintf(&b, "My background covers %s.\r\n\r\n", strings.Join(p.Keywords, ", "))
	}
	b.WriteString("My resume is attached. I am happy to share more detail or references on request.\r\n\r\n")
	b.WriteString("Best regards\r\n")
	return []byte(b.String())
}
