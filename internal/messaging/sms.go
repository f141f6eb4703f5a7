package messaging

import (
	"context"
	"strings"

	"returnnotify/internal/config"
)

// NewSMSSender builds an HTTP SMS gateway client, or a sender that always
// reports NotConfiguredMessage when sms.gateway_url is empty.
func NewSMSSender(cfg *config.Config) SMSSender {
	if cfg == nil || strings.TrimSpace(cfg.SMS.GatewayURL) == "" {
		return noopSMSSender{}
	}
	return &httpSMSSender{
		gw:     newGateway("sms", cfg.SMS.GatewayURL, cfg.SMS.APIKey, cfg.SMS.RequestTimeout, cfg.SMS.RatePerMinute),
		sender: strings.TrimSpace(cfg.SMS.Sender),
	}
}

type smsRequest struct {
	ResellerID int64             `json:"resellerId"`
	ClientID   int64             `json:"clientId"`
	Event      string            `json:"event"`
	StatusTo   int64             `json:"statusTo"`
	Sender     string            `json:"sender,omitempty"`
	Data       map[string]string `json:"data"`
}

type smsResponse struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error"`
}

type httpSMSSender struct {
	gw     *gateway
	sender string
}

func (s *httpSMSSender) Send(ctx context.Context, req SMSRequest) (bool, string) {
	var resp smsResponse
	err := s.gw.post(ctx, smsRequest{
		ResellerID: req.ResellerID,
		ClientID:   req.ClientID,
		Event:      req.Event,
		StatusTo:   req.StatusTo,
		Sender:     s.sender,
		Data:       req.Data,
	}, &resp)
	if err != nil {
		return false, err.Error()
	}
	return resp.Sent, resp.Error
}
