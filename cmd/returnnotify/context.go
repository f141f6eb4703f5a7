package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"returnnotify/internal/config"
	"returnnotify/internal/directory"
	"returnnotify/internal/logging"
	"returnnotify/internal/messaging"
	"returnnotify/internal/returns"
	"returnnotify/internal/templates"
)

const (
	logPrefix      = "returnnotify"
	currentLogName = "returnnotify.log"
	cliLogName     = "returnnotify-cli.log"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// configPath is the --config value, empty when unset.
func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// newLogger writes console output to the command's stderr and a JSON copy
// to logName inside the log directory.
func (c *commandContext) newLogger(cmd *cobra.Command, cfg *config.Config, logName string) (*slog.Logger, error) {
	var logPath string
	if dir := strings.TrimSpace(cfg.Paths.LogDir); dir != "" && logName != "" {
		logPath = filepath.Join(dir, logName)
	}
	logger, err := logging.New(logging.Options{
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		Output:   cmd.ErrOrStderr(),
		FilePath: logPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// buildOperation wires the directory, template catalog and transports into a
// notification operation.
func buildOperation(cfg *config.Config, store *directory.Store, logger *slog.Logger) (*returns.Operation, error) {
	catalog, err := templates.LoadCatalog(cfg.Templates.CatalogPath)
	if err != nil {
		return nil, err
	}
	renderer, err := templates.NewRenderer(catalog, cfg.Templates.DefaultLanguage, store, logger)
	if err != nil {
		return nil, err
	}
	deps := returns.DirectoryDependencies(store, renderer, messaging.NewMailer(cfg), messaging.NewSMSSender(cfg), logger)
	return returns.NewOperation(deps, cfg.Channels, logger), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
