// Command contact submits one contact form from the terminal.
//
// It drives the same controller the site uses, either against the HTTP
// endpoint or, with -mailto, by opening the local mail client.
//
// Usage:
//
//	contact -name Ada -email ada@example.com -message "Hello" [-subject S] [-url U] [-mailto ADDR]
//
// Exit codes:
//
//	0 = message accepted
//	1 = validation failed or the submission ended in error
//	2 = usage error
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"time"

	"github.com/psyborgxoxo/SouravPortfolio/internal/contact"
)

const defaultURL = "http://localhost:8080/api/contact"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, openURL)
	stop()
	os.Exit(code)
}

// printer reports state transitions as they happen.
type printer struct {
	out  io.Writer
	last contact.Status
}

func (p *printer) StateChanged(s contact.State) {
	if s.Status == p.last {
		return
	}
	p.last = s.Status
	switch s.Status {
	case contact.StatusSubmitting:
		_, _ = fmt.Fprintln(p.out, "Sending...")
	case contact.StatusSuccess:
		_, _ = fmt.Fprintf(p.out, "✅ %s\n", s.Message)
		if s.SubmissionID != "" {
			_, _ = fmt.Fprintf(p.out, "Submission: %s\n", s.SubmissionID)
		}
	case contact.StatusError:
		_, _ = fmt.Fprintf(p.out, "❌ %s\n", s.Message)
	}
}

func (p *printer) Attention(errs contact.ValidationErrors) {
	for _, f := range []contact.Field{contact.FieldName, contact.FieldEmail, contact.FieldMessage} {
		if msg, ok := errs[f]; ok {
			_, _ = fmt.Fprintf(p.out, "  - %s: %s\n", f, msg)
		}
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, open func(string) error) int {
	cmd := flag.NewFlagSet("contact", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		endpoint string
		mailto   string
		timeout  time.Duration
		fields   contact.Fields
	)
	cmd.StringVar(&endpoint, "url", defaultURL, "Contact endpoint URL")
	cmd.StringVar(&mailto, "mailto", "", "Open the mail client addressed to this recipient instead of posting")
	cmd.DurationVar(&timeout, "timeout", 15*time.Second, "Request timeout")
	cmd.StringVar(&fields.Name, "name", "", "Your name (REQUIRED)")
	cmd.StringVar(&fields.Email, "email", "", "Your email address (REQUIRED)")
	cmd.StringVar(&fields.Subject, "subject", "", "Subject")
	cmd.StringVar(&fields.Message, "message", "", "Message (REQUIRED)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if cmd.NArg() > 0 {
		_, _ = fmt.Fprintf(stderr, "Error: unexpected arguments: %v\n", cmd.Args())
		return 2
	}

	var transport contact.Transport
	if mailto != "" {
		transport = &contact.MailtoTransport{Recipient: mailto, Open: open}
	} else {
		transport = contact.NewHTTPTransport(endpoint, timeout)
	}

	cfg := contact.DefaultConfig()
	cfg.Timeout = timeout
	p := &printer{out: stdout}
	ctrl := contact.NewController(transport, p, cfg)
	ctrl.UpdateField(contact.FieldName, fields.Name)
	ctrl.UpdateField(contact.FieldEmail, fields.Email)
	ctrl.UpdateField(contact.FieldSubject, fields.Subject)
	ctrl.UpdateField(contact.FieldMessage, fields.Message)

	if errs := ctrl.Validate(); len(errs) > 0 {
		_, _ = fmt.Fprintln(stdout, "Please fix the following:")
	}
	if ctrl.Submit(ctx) != contact.StatusSuccess {
		return 1
	}
	return 0
}

func openURL(link string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", link)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		c = exec.Command("xdg-open", link)
	}
	return c.Start()
}
