package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"studiosite/internal/config"
)

var ErrDelivery = errors.New("email delivery failed")

// DeliveryError carries the provider's rejection so it can be surfaced to the caller.
type DeliveryError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *DeliveryError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", ErrDelivery, string(e.Body))
	}
	return fmt.Sprintf("%s: provider returned %d", ErrDelivery, e.StatusCode)
}

func (e *DeliveryError) Unwrap() error {
	return ErrDelivery
}

type Address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type Message struct {
	Sender      Address   `json:"sender"`
	To          []Address `json:"to"`
	ReplyTo     *Address  `json:"replyTo,omitempty"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
	TextContent string    `json:"textContent"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type BrevoClient struct {
	apiKey string
	client *resty.Client
}

const (
	sendEmailPath = "/smtp/email"
	maxErrorBody  = 64 << 10
)

func NewBrevoClient(cfg config.Mail) *BrevoClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BrevoBaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("api-key", cfg.BrevoAPIKey).
		SetHeader("Accept", "application/json")

	return &BrevoClient{apiKey: cfg.BrevoAPIKey, client: client}
}

func (c *BrevoClient) Configured() bool {
	return c.apiKey != ""
}

// Send submits one transactional email. There is no retry.
func (c *BrevoClient) Send(ctx context.Context, msg Message) error {
	if !c.Configured() {
		return &DeliveryError{Body: json.RawMessage(`"email provider is not configured"`)}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(sendEmailPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	if resp.IsSuccess() {
		return nil
	}

	body := resp.Body()
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &DeliveryError{StatusCode: resp.StatusCode(), Body: rawBody(body)}
}

// rawBody keeps JSON bodies as-is and quotes anything else.
func rawBody(body []byte) json.RawMessage {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return json.RawMessage(quoted)
}
