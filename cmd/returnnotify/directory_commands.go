package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"returnnotify/internal/api"
	"returnnotify/internal/directory"
)

func newDirectoryCommand(ctx *commandContext) *cobra.Command {
	dirCmd := &cobra.Command{
		Use:   "directory",
		Short: "Manage the reseller, client and employee directory",
	}
	dirCmd.AddCommand(newDirectorySeedCommand(ctx))
	dirCmd.AddCommand(newDirectoryShowCommand(ctx))
	return dirCmd
}

func newDirectorySeedCommand(ctx *commandContext) *cobra.Command {
	var fixturePath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load directory records from a TOML fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := directory.LoadFixture(fixturePath)
			if err != nil {
				return err
			}
			return withDirectory(ctx, func(store *directory.Store) error {
				if err := store.Seed(cmd.Context(), fixture); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d resellers, %d contractors, %d employees, %d permits, %d statuses\n",
					len(fixture.Resellers), len(fixture.Contractors), len(fixture.Employees), len(fixture.Permits), len(fixture.Statuses))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&fixturePath, "file", "f", "", "TOML fixture file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDirectoryShowCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show directory record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := wantTable(cmd, format)
			if err != nil {
				return err
			}
			return withDirectory(ctx, func(store *directory.Store) error {
				counts, err := directoryCounts(cmd.Context(), store)
				if err != nil {
					return err
				}
				if !table {
					return writeJSON(cmd, counts)
				}
				view := newTableView("Table", "Rows").alignRight(1).
					row("Resellers", strconv.Itoa(counts.Resellers)).
					row("Contractors", strconv.Itoa(counts.Contractors)).
					row("Employees", strconv.Itoa(counts.Employees)).
					row("Permits", strconv.Itoa(counts.Permits)).
					row("Statuses", strconv.Itoa(counts.Statuses))
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Directory: %s\n", store.Path())
				fmt.Fprintln(out, view.render())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", formatAuto, "Output format: auto, table, or json")
	return cmd
}

func withDirectory(ctx *commandContext, fn func(*directory.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := directory.Open(cfg)
	if err != nil {
		return fmt.Errorf("open directory: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func directoryCounts(ctx context.Context, store *directory.Store) (*api.DirectoryCounts, error) {
	return api.NewDirectoryService(store).Counts(ctx)
}
