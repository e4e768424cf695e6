package linkedinmail

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape"
)

// LinkedIn blocks direct scraping hard, so postings come in through the
// job-alert emails it sends instead. The fetcher reads a mailbox over
// IMAP, picks out alert messages and parses their HTML bodies.

type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	Mailbox    string // default INBOX
	SinceDays  int    // default 3
	MaxFetch   int    // default 50
	SubjectAny []string
}

type Fetcher struct {
	cfg Config
}

func New(cfg Config) *Fetcher {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	if cfg.SinceDays <= 0 {
		cfg.SinceDays = 3
	}
	if cfg.MaxFetch <= 0 {
		cfg.MaxFetch = 50
	}
	if cfg.Port == 0 {
		cfg.Port = 993
	}
	return &Fetcher{cfg: cfg}
}

func (f *Fetcher) Name() string { return "linkedin-mail" }

func (f *Fetcher) Fetch(ctx context.Context) (scrape.Result, error) {
	res := scrape.Result{Source: domain.SourceLinkedIn}

	c, err := dialAndLogin(ctx, f.cfg)
	if err != nil {
		return res, err
	}
	defer logoutAndClose(c)

	if _, err := c.Select(f.cfg.Mailbox, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		return res, fmt.Errorf("imap select %s: %w", f.cfg.Mailbox, err)
	}

	msgs, err := fetchRecent(ctx, c, f.cfg)
	if err != nil {
		return res, err
	}

	for _, m := range msgs {
		if !IsJobAlert(m.From, m.Subject) && !subjectMatches(m.Subject, f.cfg.SubjectAny) {
			continue
		}
		htmlBody := htmlPart(m.Raw)
		if htmlBody == "" {
			continue
		}
		raw, err := ParseAlertHTML(htmlBody)
		if err != nil {
			log.Printf("[linkedin-mail] parse alert %q: %v", m.Subject, err)
			continue
		}
		for i := range raw {
			if raw[i].PostedAt == nil && !m.Date.IsZero() {
				d := m.Date
				raw[i].PostedAt = &d
			}
		}
		res.Raw = append(res.Raw, raw...)
	}
	return res, nil
}

type message struct {
	From    string
	Subject string
	Date    time.Time
	Raw     []byte
}

func dialAndLogin(ctx context.Context, cfg Config) (*imapclient.Client, error) {
	if cfg.Host == "" {
		return nil, errors.New("imap host is required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("imap username/password is required")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	c, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: cfg.Host},
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}

	// best-effort close on context cancel
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(cfg.Username, cfg.Password).Wait(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}
	return c, nil
}

// fetchRecent pulls up to MaxFetch messages newer than SinceDays, newest
// first, with full raw bodies via BODY.PEEK[] so nothing gets marked \Seen.
func fetchRecent(ctx context.Context, c *imapclient.Client, cfg Config) ([]message, error) {
	criteria := &imap.SearchCriteria{
		Since: time.Now().AddDate(0, 0, -cfg.SinceDays),
	}
	searchData, err := c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap uid search: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}
	for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
		uids[i], uids[j] = uids[j], uids[i]
	}
	if len(uids) > cfg.MaxFetch {
		uids = uids[:cfg.MaxFetch]
	}

	bodyAll := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierNone,
		Peek:      true,
	}
	fetchCmd := c.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodyAll},
	})
	defer func() { _ = fetchCmd.Close() }()

	var out []message
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}
		buf, err := msgData.Collect()
		if err != nil {
			return nil, fmt.Errorf("imap fetch collect: %w", err)
		}

		var m message
		if buf.Envelope != nil {
			m.Subject = buf.Envelope.Subject
			m.Date = buf.Envelope.Date
			if len(buf.Envelope.From) > 0 {
				m.From = buf.Envelope.From[0].Addr()
			}
		}
		if b := buf.FindBodySection(bodyAll); b != nil {
			m.Raw = append([]byte(nil), b...)
		}
		out = append(out, m)
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("imap fetch close: %w", err)
	}
	return out, nil
}

func logoutAndClose(c *imapclient.Client) {
	if err := c.Logout().Wait(); err != nil {
		log.Printf("[linkedin-mail] imap logout: %v", err)
	}
	_ = c.Close()
}

func subjectMatches(subject string, any []string) bool {
	s := strings.ToLower(subject)
	for _, want := range any {
		if want != "" && strings.Contains(s, strings.ToLower(want)) {
			return true
		}
	}
	return false
}

// htmlPart digs the text/html part out of a raw RFC822 message.
func htmlPart(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	body, _ := io.ReadAll(io.LimitReader(msg.Body, 10<<20))
	_, html := textParts(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), body)
	return html
}

func textParts(contentType, transferEncoding string, body []byte) (plain, html string) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return string(decodeBody(body, transferEncoding)), ""
	}
	mediaType = strings.ToLower(mediaType)

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return string(body), ""
		}
		mr := multipart.NewReader(bytes.NewReader(body), boundary)
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			b, _ := io.ReadAll(io.LimitReader(p, 10<<20))
			pl, ht := textParts(p.Header.Get("Content-Type"), p.Header.Get("Content-Transfer-Encoding"), b)
			if len(pl) > len(plain) {
				plain = pl
			}
			if len(ht) > len(html) {
				html = ht
			}
		}
		return plain, html
	}

	decoded := decodeBody(body, transferEncoding)
	if strings.HasPrefix(mediaType, "text/html") {
		return "", string(decoded)
	}
	return string(decoded), ""
}

func decodeBody(b []byte, transferEncoding string) []byte {
	switch strings.ToLower(strings.TrimSpace(transferEncoding)) {
	case "base64":
		dec := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, 10<<20))
		return out
	case "quoted-printable":
		dec := quotedprintable.NewReader(bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, 10<<20))
		return out
	default:
		return b
	}
}
