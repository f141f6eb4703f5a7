package preflight

import (
	"context"
	"strings"

	"returnnotify/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Gateway checks only run when the gateway URL is set.
func RunAll(ctx context.Context, cfg *config.Config, db DatabaseProbe) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDatabase(ctx, db),
		CheckCatalog(cfg.Templates.CatalogPath, cfg.Templates.DefaultLanguage),
	}

	if strings.TrimSpace(cfg.Mail.GatewayURL) != "" {
		results = append(results, CheckGateway(ctx, "Mail gateway", cfg.Mail.GatewayURL, cfg.Mail.APIKey))
	}
	if strings.TrimSpace(cfg.SMS.GatewayURL) != "" {
		results = append(results, CheckGateway(ctx, "SMS gateway", cfg.SMS.GatewayURL, cfg.SMS.APIKey))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
