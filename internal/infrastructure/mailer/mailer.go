package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

const (
	subjectForgotPassword = "Middn :: Forgot Password"
	subjectKYCRejected    = "Middn :: Your KYC has been rejected"

	defaultTimeout = 10 * time.Second
)

// ErrNotConfigured is returned when no SMTP host is set
var ErrNotConfigured = errors.New("mailer: not configured")

//go:embed templates/*.html
var templateFS embed.FS

// Config holds SMTP settings
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	FromAddress string
	Timeout     time.Duration
}

// Message is a single outgoing e-mail
type Message struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

// Mailer sends templated e-mails via SMTP
type Mailer struct {
	cfg       *Config
	templates *template.Template
	sendFn    func(ctx context.Context, msg Message) error
}

// New returns a Mailer for cfg
func New(cfg *Config) *Mailer {
	m := &Mailer{
		cfg:       cfg,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
	m.sendFn = m.sendSMTP
	return m
}

// SendForgotPassword mails a password reset OTP
func (m *Mailer) SendForgotPassword(ctx context.Context, to string, otp int) error {
	body, err := m.render("forgot-password.html", map[string]interface{}{
		"Title": "Forgot Password",
		"OTP":   otp,
	})
	if err != nil {
		return err
	}
	return m.send(ctx, Message{To: []string{to}, Subject: subjectForgotPassword, Body: body, IsHTML: true})
}

// SendKYCRejected tells a user why their KYC was rejected
func (m *Mailer) SendKYCRejected(ctx context.Context, to, reason string) error {
	body, err := m.render("message.html", map[string]interface{}{
		"Title":   "Sorry !!! Your KYC has been Rejected",
		"Message": reason,
	})
	if err != nil {
		return err
	}
	return m.send(ctx, Message{To: []string{to}, Subject: subjectKYCRejected, Body: body, IsHTML: true})
}

func (m *Mailer) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := m.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("mailer: render %s: %w", name, err)
	}
	return buf.String(), nil
}

func (m *Mailer) send(ctx context.Context, msg Message) error {
	timeout := m.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return m.sendFn(ctx, msg)
}

func (m *Mailer) formatMessage(msg Message) string {
	contentType := "text/plain; charset=UTF-8"
	if msg.IsHTML {
		contentType = "text/html; charset=UTF-8"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.cfg.FromName, m.cfg.FromAddress)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return b.String()
}

// sendSMTP delivers msg over one connection bounded by the ctx deadline
func (m *Mailer) sendSMTP(ctx context.Context, msg Message) error {
	if m.cfg.Host == "" {
		return ErrNotConfigured
	}
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("mailer: dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("mailer: handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("mailer: starttls: %w", err)
		}
	}
	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("mailer: auth: %w", err)
		}
	}
	if err := client.Mail(m.cfg.FromAddress); err != nil {
		return fmt.Errorf("mailer: mail from: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("mailer: rcpt %s: %w", rcpt, err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("mailer: data: %w", err)
	}
	if _, err := w.Write([]byte(m.formatMessage(msg))); err != nil {
		w.Close()
		return fmt.Errorf("mailer: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mailer: data close: %w", err)
	}
	return client.Quit()
}
