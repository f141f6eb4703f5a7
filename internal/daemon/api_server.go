package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"returnnotify/internal/api"
	"returnnotify/internal/config"
	"returnnotify/internal/logging"
	"returnnotify/internal/services"
)

const requestIDHeader = "X-Request-ID"

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) *apiServer {
	return &apiServer{
		bind:   strings.TrimSpace(cfg.Paths.APIBind),
		logger: logging.NewComponentLogger(logger, "api-server"),
		daemon: d,
	}
}

func (s *apiServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/returns/notify", s.handleNotify)
	mux.Handle("/metrics", promhttp.Handler())
	return withRequestID(mux)
}

func (s *apiServer) start(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("paths.api_bind is empty")
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	server := &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.mu.Lock()
	s.listener = listener
	s.server = server
	s.mu.Unlock()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorWithContext(s.logger, "api server error", "api_serve_failed", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
		s.server = nil
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	payload := api.DaemonStatus{
		Running:       status.Running,
		PID:           status.PID,
		DirectoryPath: status.DirectoryPath,
		LockFilePath:  status.LockFilePath,
		Channels: api.ChannelStatus{
			StaffEmail:  status.Channels.StaffEmail,
			ClientEmail: status.Channels.ClientEmail,
			ClientSMS:   status.Channels.ClientSMS,
			Concurrent:  status.Channels.Concurrent,
			StaffPermit: status.Channels.StaffPermit,
		},
		Transports: api.TransportStatus{
			Mail: status.MailGateway,
			SMS:  status.SMSGateway,
		},
	}
	counts, err := s.daemon.DirectoryCounts(r.Context())
	if err != nil {
		payload.DirectoryErr = err.Error()
	} else {
		payload.Directory = counts
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *apiServer) handleNotify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx := r.Context()
	logger := logging.WithContext(ctx, s.logger)

	event, err := api.DecodeNotifyEvent(r.Body)
	if err != nil {
		s.writeFailure(w, logger, err)
		return
	}
	result, err := s.daemon.Notify(ctx, event)
	if err != nil {
		s.writeFailure(w, logger, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *apiServer) writeFailure(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := services.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.ErrorWithContext(logger, "notify request failed", "notify_failed",
			logging.Int("http_status", status),
			logging.Error(err),
		)
	}
	s.writeError(w, status, services.PublicMessage(err))
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

// withRequestID echoes X-Request-ID, generating one when absent, and stores
// it on the request context for log correlation.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(services.WithRequestID(r.Context(), id)))
	})
}
