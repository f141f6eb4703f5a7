package messaging_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"returnnotify/internal/config"
	"returnnotify/internal/messaging"
)

func TestNewMailerReportsNotConfigured(t *testing.T) {
	cfg := config.Default()
	mailer := messaging.NewMailer(&cfg)
	err := mailer.SendMessage(context.Background(), []messaging.Email{{From: "a@b", To: "c@d"}}, messaging.Route{ResellerID: 7})
	if !errors.Is(err, messaging.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNewSMSSenderReportsNotConfigured(t *testing.T) {
	cfg := config.Default()
	sent, msg := messaging.NewSMSSender(&cfg).Send(context.Background(), messaging.SMSRequest{ResellerID: 7})
	if sent || msg != messaging.NotConfiguredMessage {
		t.Fatalf("unexpected noop outcome sent=%v msg=%q", sent, msg)
	}
}

func TestMailerPostsJSONBatch(t *testing.T) {
	var (
		got     map[string]any
		headers http.Header
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Mail.GatewayURL = server.URL
	cfg.Mail.APIKey = "secret"
	mailer := messaging.NewMailer(&cfg)

	err := mailer.SendMessage(context.Background(), []messaging.Email{
		{From: "returns@shop.example", To: "ivan@example.com", Subject: "Hi", Message: "Body"},
	}, messaging.Route{ResellerID: 7, ClientID: 5, Event: "changeReturnStatus", StatusTo: 2})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if headers.Get("Authorization") != "Bearer secret" {
		t.Fatalf("unexpected authorization header %q", headers.Get("Authorization"))
	}
	if headers.Get("Idempotency-Key") == "" {
		t.Fatal("expected idempotency key header")
	}
	if !strings.HasPrefix(headers.Get("User-Agent"), "ReturnNotify-Go/") {
		t.Fatalf("unexpected user agent %q", headers.Get("User-Agent"))
	}
	if got["event"] != "changeReturnStatus" || got["resellerId"] != float64(7) || got["clientId"] != float64(5) || got["statusTo"] != float64(2) {
		t.Fatalf("unexpected payload %v", got)
	}
	messages, ok := got["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("unexpected messages %v", got["messages"])
	}
	first := messages[0].(map[string]any)
	if first["emailTo"] != "ivan@example.com" || first["subject"] != "Hi" {
		t.Fatalf("unexpected message %v", first)
	}
}

func TestMailerOmitsClientFieldsForStaffRoute(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Mail.GatewayURL = server.URL
	err := messaging.NewMailer(&cfg).SendMessage(context.Background(), []messaging.Email{{To: "staff@shop.example"}}, messaging.Route{ResellerID: 7, Event: "changeReturnStatus"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if _, ok := got["clientId"]; ok {
		t.Fatalf("expected clientId omitted, got %v", got)
	}
	if _, ok := got["statusTo"]; ok {
		t.Fatalf("expected statusTo omitted, got %v", got)
	}
}

func TestMailerReturnsErrorOnNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "mailbox full", http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Mail.GatewayURL = server.URL
	err := messaging.NewMailer(&cfg).SendMessage(context.Background(), []messaging.Email{{To: "x@y"}}, messaging.Route{ResellerID: 7})
	if err == nil || !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "mailbox full") {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

func TestSMSSenderReportsGatewayOutcome(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantSent bool
		wantMsg  string
	}{
		{name: "sent", status: http.StatusOK, body: `{"sent":true}`, wantSent: true},
		{name: "rejected", status: http.StatusOK, body: `{"sent":false,"error":"carrier rejected"}`, wantMsg: "carrier rejected"},
		{name: "gateway failure", status: http.StatusInternalServerError, body: "boom", wantMsg: "sms gateway returned 500: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.SMS.GatewayURL = server.URL
			sent, msg := messaging.NewSMSSender(&cfg).Send(context.Background(), messaging.SMSRequest{
				ResellerID: 7,
				ClientID:   5,
				Event:      "changeReturnStatus",
				StatusTo:   2,
				Data:       map[string]string{"CLIENT_NAME": "Ivan Petrov"},
			})
			if sent != tt.wantSent || msg != tt.wantMsg {
				t.Fatalf("Send = (%v, %q), want (%v, %q)", sent, msg, tt.wantSent, tt.wantMsg)
			}
			if got["sender"] != "returns" || got["clientId"] != float64(5) {
				t.Fatalf("unexpected payload %v", got)
			}
			data, _ := got["data"].(map[string]any)
			if data["CLIENT_NAME"] != "Ivan Petrov" {
				t.Fatalf("unexpected data %v", got["data"])
			}
		})
	}
}

func TestMailerRateLimitHonoursContext(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Mail.GatewayURL = server.URL
	cfg.Mail.RatePerMinute = 1
	mailer := messaging.NewMailer(&cfg)
	batch := []messaging.Email{{From: "a@b", To: "c@d"}}

	if err := mailer.SendMessage(context.Background(), batch, messaging.Route{ResellerID: 7}); err != nil {
		t.Fatalf("first send: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := mailer.SendMessage(ctx, batch, messaging.Route{ResellerID: 7})
	if err == nil || !strings.Contains(err.Error(), "rate limit") {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected throttled request to stay local, gateway saw %d calls", calls)
	}
}
