package messaging

import (
	"context"
	"errors"
)

// Email is one outbound message.
type Email struct {
	From    string `json:"emailFrom"`
	To      string `json:"emailTo"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Route tells the gateway who a batch of messages belongs to. ClientID and
// StatusTo are zero when not applicable.
type Route struct {
	ResellerID int64
	ClientID   int64
	Event      string
	StatusTo   int64
}

// SMSRequest asks the SMS gateway to render and send a client text.
type SMSRequest struct {
	ResellerID int64
	ClientID   int64
	Event      string
	StatusTo   int64
	Data       map[string]string
}

// Mailer sends email batches.
type Mailer interface {
	SendMessage(ctx context.Context, messages []Email, route Route) error
}

// SMSSender sends client text messages. errText is empty when the gateway
// reported no error.
type SMSSender interface {
	Send(ctx context.Context, req SMSRequest) (sent bool, errText string)
}

// NotConfiguredMessage is reported by the SMS no-op sender.
const NotConfiguredMessage = "sms gateway not configured"

// ErrNotConfigured is returned by the no-op mailer. Nothing was handed to
// a transport, so callers treat it as a skipped channel.
var ErrNotConfigured = errors.New("mail gateway not configured")

type noopMailer struct{}

func (noopMailer) SendMessage(context.Context, []Email, Route) error { return ErrNotConfigured }

type noopSMSSender struct{}

func (noopSMSSender) Send(context.Context, SMSRequest) (bool, string) {
	return false, NotConfiguredMessage
}
