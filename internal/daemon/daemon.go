package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/gofrs/flock"

	"returnnotify/internal/api"
	"returnnotify/internal/config"
	"returnnotify/internal/directory"
	"returnnotify/internal/logging"
	"returnnotify/internal/returns"
)

// Notifier runs one return notification.
type Notifier interface {
	Do(ctx context.Context, event returns.ChangeEvent) (returns.Result, error)
}

// Daemon serves the notify API and enforces single-instance execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *directory.Store
	notifier Notifier
	api      *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool
	PID           int
	DirectoryPath string
	LockFilePath  string
	Channels      config.Channels
	MailGateway   bool
	SMSGateway    bool
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *directory.Store, logger *slog.Logger, notifier Notifier) (*Daemon, error) {
	if cfg == nil || store == nil || logger == nil || notifier == nil {
		return nil, errors.New("daemon requires config, directory, logger, and notifier")
	}
	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		notifier: notifier,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the instance lock and starts the HTTP server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another returnnotify instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.api.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start api server: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("returnnotify daemon started",
		logging.String("lock", d.lockPath),
		logging.String("directory", d.store.Path()),
	)
	return nil
}

// Stop shuts the HTTP server down and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "lock_release_failed",
			logging.String("lock", d.lockPath),
			logging.String(logging.FieldImpact, "next start may report another instance"),
			logging.Error(err),
		)
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("returnnotify daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Notify runs one notification through the configured operation.
func (d *Daemon) Notify(ctx context.Context, event returns.ChangeEvent) (returns.Result, error) {
	return d.notifier.Do(ctx, event)
}

// Addr returns the bound API address once started.
func (d *Daemon) Addr() string {
	return d.api.addr()
}

// DirectoryCounts summarises the entity directory.
func (d *Daemon) DirectoryCounts(ctx context.Context) (*api.DirectoryCounts, error) {
	return api.NewDirectoryService(d.store).Counts(ctx)
}

// Status returns the current daemon status.
func (d *Daemon) Status(context.Context) Status {
	return Status{
		Running:       d.running.Load(),
		PID:           os.Getpid(),
		DirectoryPath: d.store.Path(),
		LockFilePath:  d.lockPath,
		Channels:      d.cfg.Channels,
		MailGateway:   strings.TrimSpace(d.cfg.Mail.GatewayURL) != "",
		SMSGateway:    strings.TrimSpace(d.cfg.SMS.GatewayURL) != "",
	}
}
