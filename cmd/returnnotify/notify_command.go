package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"returnnotify/internal/api"
	"returnnotify/internal/directory"
	"returnnotify/internal/returns"
)

func newNotifyCommand(ctx *commandContext) *cobra.Command {
	var eventPath string
	var format string

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send notifications for one return event",
		Long: "Reads a return event as JSON (either {\"data\": {...}} or the bare object) from\n" +
			"--event, or stdin when --event is \"-\", and runs it through the configured channels.",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := wantTable(cmd, format)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			event, err := readEvent(cmd, eventPath)
			if err != nil {
				return err
			}

			logger, err := ctx.newLogger(cmd, cfg, cliLogName)
			if err != nil {
				return err
			}
			store, err := directory.Open(cfg)
			if err != nil {
				return fmt.Errorf("open directory: %w", err)
			}
			defer store.Close()

			op, err := buildOperation(cfg, store, logger)
			if err != nil {
				return fmt.Errorf("build notification pipeline: %w", err)
			}
			result, err := op.Do(cmd.Context(), event)
			if err != nil {
				return fmt.Errorf("notify: %w", err)
			}

			if !table {
				return writeJSON(cmd, result)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderResult(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventPath, "event", "e", "", "Path to the event JSON file, or - for stdin")
	cmd.Flags().StringVar(&format, "format", formatAuto, "Output format: auto, table, or json")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func readEvent(cmd *cobra.Command, path string) (returns.ChangeEvent, error) {
	path = strings.TrimSpace(path)
	var reader io.Reader
	if path == "-" {
		reader = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return returns.ChangeEvent{}, fmt.Errorf("open event: %w", err)
		}
		defer file.Close()
		reader = file
	}
	event, err := api.DecodeNotifyEvent(reader)
	if err != nil {
		return returns.ChangeEvent{}, fmt.Errorf("read event: %w", err)
	}
	return event, nil
}

func renderResult(result returns.Result) string {
	return newTableView("Channel", "Sent", "Message").
		row("Staff email", yesNo(result.EmployeeByEmail)).
		row("Client email", yesNo(result.ClientByEmail)).
		row("Client SMS", yesNo(result.ClientBySMS.IsSent), result.ClientBySMS.Message).
		render()
}
