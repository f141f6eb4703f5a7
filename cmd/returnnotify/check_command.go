package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"returnnotify/internal/directory"
	"returnnotify/internal/preflight"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"

	checkLabelWidth = 20
	checkIndent     = "  "
)

type checkReport struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify directories, the directory database, templates and gateways",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := wantTable(cmd, format)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var results []preflight.Result
			if err := withDirectory(ctx, func(store *directory.Store) error {
				results = preflight.RunAll(cmd.Context(), cfg, store)
				return nil
			}); err != nil {
				return err
			}

			if !table {
				reports := make([]checkReport, 0, len(results))
				for _, r := range results {
					reports = append(reports, checkReport(r))
				}
				if err := writeJSON(cmd, reports); err != nil {
					return err
				}
			} else {
				colorize := isTerminal(cmd.OutOrStdout())
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderSectionHeader("Preflight", colorize))
				for _, r := range results {
					fmt.Fprintln(out, renderCheckLine(r, colorize))
				}
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatAuto, "Output format: auto, table, or json")
	return cmd
}

func renderCheckLine(result preflight.Result, colorize bool) string {
	status, color := "OK", ansiGreen
	if !result.Passed {
		status, color = "ERROR", ansiRed
	}
	text := fmt.Sprintf("[%s]", status)
	if result.Detail != "" {
		text = fmt.Sprintf("[%s] %s", status, result.Detail)
	}
	line := fmt.Sprintf("%s%-*s %s", checkIndent, checkLabelWidth, result.Name+":", text)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func renderSectionHeader(title string, colorize bool) string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		return ansiBlue + line + ansiReset + "\n" + ansiBlue + rule + ansiReset
	}
	return line + "\n" + rule
}
