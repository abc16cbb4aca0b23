package mailer

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridEndpoint = "/v3/mail/send"
	sendgridTimeout  = 30 * time.Second
)

// SendgridSender delivers through the SendGrid v3 HTTP API. Each call is
// bounded by the caller's context and a per-request timeout.
type SendgridSender struct {
	key     string
	host    string
	from    *sgmail.Email
	timeout time.Duration
}

func NewSendgridSender(key string, from From) *SendgridSender {
	return &SendgridSender{
		key:     key,
		host:    "https://api.sendgrid.com",
		from:    sgmail.NewEmail(from.Name, from.Address),
		timeout: sendgridTimeout,
	}
}

func (s *SendgridSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := sgmail.NewPersonalization()
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.To))
	p.Subject = msg.Subject

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/html", msg.HTML))

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return errors.Wrap(err, "sendgrid request")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("sendgrid API error %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
