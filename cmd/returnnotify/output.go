package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	formatAuto  = "auto"
	formatTable = "table"
	formatJSON  = "json"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// wantTable resolves --format: auto renders a table only on a terminal so
// pipes get JSON.
func wantTable(cmd *cobra.Command, format string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatTable:
		return true, nil
	case formatJSON:
		return false, nil
	case formatAuto, "":
		return isTerminal(cmd.OutOrStdout()), nil
	default:
		return false, fmt.Errorf("unknown --format %q (want auto, table, or json)", format)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
