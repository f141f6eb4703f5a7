package messaging

import (
	"context"
	"strings"

	"returnnotify/internal/config"
)

// NewMailer builds an HTTP mail gateway client, or a mailer that reports
// ErrNotConfigured when mail.gateway_url is empty.
func NewMailer(cfg *config.Config) Mailer {
	if cfg == nil || strings.TrimSpace(cfg.Mail.GatewayURL) == "" {
		return noopMailer{}
	}
	return &httpMailer{gw: newGateway("mail", cfg.Mail.GatewayURL, cfg.Mail.APIKey, cfg.Mail.RequestTimeout, cfg.Mail.RatePerMinute)}
}

type mailRequest struct {
	Messages   []Email `json:"messages"`
	ResellerID int64   `json:"resellerId"`
	ClientID   int64   `json:"clientId,omitempty"`
	Event      string  `json:"event"`
	StatusTo   int64   `json:"statusTo,omitempty"`
}

type httpMailer struct {
	gw *gateway
}

func (m *httpMailer) SendMessage(ctx context.Context, messages []Email, route Route) error {
	if len(messages) == 0 {
		return nil
	}
	return m.gw.post(ctx, mailRequest{
		Messages:   messages,
		ResellerID: route.ResellerID,
		ClientID:   route.ClientID,
		Event:      route.Event,
		StatusTo:   route.StatusTo,
	}, nil)
}
