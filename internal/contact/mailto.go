package contact

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const DefaultSubject = "Contact from Portfolio"

// MailtoTransport skips the endpoint and hands a mailto: link to the user's
// mail client. Open is typically a browser or xdg-open launcher.
type MailtoTransport struct {
	Recipient string
	Open      func(link string) error
}

func (t *MailtoTransport) Send(ctx context.Context, fields Fields) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	link := MailtoLink(t.Recipient, fields)
	if err := t.Open(link); err != nil {
		return nil, fmt.Errorf("open mail client: %w", err)
	}
	return &Response{
		StatusCode: 200,
		Result: Result{
			Success: true,
			Message: "Your mail client has been opened with the message.",
		},
	}, nil
}

// MailtoLink builds a mailto: URL carrying the form contents.
func MailtoLink(recipient string, fields Fields) string {
	subject := fields.Subject
	if strings.TrimSpace(subject) == "" {
		subject = DefaultSubject
	}
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", fields.Name, fields.Email, fields.Message)

	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)
	// mail clients expect %20, not +
	return "mailto:" + recipient + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}
