package testsupport

import (
	"path/filepath"
	"testing"

	"returnnotify/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Directory.DatabasePath = filepath.Join(base, "data", "directory.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithGateways points the mail and SMS transports at the given URLs.
func WithGateways(mailURL, smsURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Mail.GatewayURL = mailURL
		b.cfg.SMS.GatewayURL = smsURL
	}
}

// WithConcurrentDispatch toggles parallel channel dispatch.
func WithConcurrentDispatch(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Channels.Concurrent = enabled
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
