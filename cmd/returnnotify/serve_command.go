package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"returnnotify/internal/config"
	"returnnotify/internal/daemon"
	"returnnotify/internal/directory"
	"returnnotify/internal/logging"
	"returnnotify/internal/preflight"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the notification HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			runLog := logging.RunLogName(logPrefix, time.Now())
			logger, err := ctx.newLogger(cmd, cfg, runLog)
			if err != nil {
				return err
			}
			rotateServeLogs(cmd, cfg, runLog, logger)

			store, err := directory.Open(cfg)
			if err != nil {
				logger.Error("open directory", logging.Error(err))
				return err
			}
			for _, result := range preflight.Failed(preflight.RunAll(signalCtx, cfg, store)) {
				logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
					logging.String("check", result.Name),
					logging.String("detail", result.Detail),
					logging.String(logging.FieldErrorHint, "run `returnnotify check` for the full report"),
					logging.String(logging.FieldImpact, "notifications depending on this check may fail"),
				)
			}

			op, err := buildOperation(cfg, store, logger)
			if err != nil {
				store.Close()
				return fmt.Errorf("build notification pipeline: %w", err)
			}

			d, err := daemon.New(cfg, store, logger, op)
			if err != nil {
				store.Close()
				return fmt.Errorf("create daemon: %w", err)
			}
			defer d.Close()

			if err := d.Start(signalCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", d.Addr())

			<-signalCtx.Done()
			logger.Info("returnnotify shutting down")
			return nil
		},
	}
}

// rotateServeLogs repoints returnnotify.log at this run's log and prunes
// run logs past the retention window.
func rotateServeLogs(cmd *cobra.Command, cfg *config.Config, runLog string, logger *slog.Logger) {
	dir := cfg.Paths.LogDir
	if dir == "" {
		return
	}
	current := filepath.Join(dir, runLog)
	if err := logging.LinkCurrentLog(dir, currentLogName, current); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warn: unable to update %s link: %v\n", currentLogName, err)
	}
	logging.PruneLogs(logger, cfg.Logging.RetentionDays, dir, logPrefix+"-*.log", current)
}
