package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"returnnotify/internal/logging"
	"returnnotify/internal/services"
)

func TestNewTeesJSONToFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "nested", "returnnotify-cli.log")

	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &console, FilePath: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("file record", logging.String("probe", "yes"))

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, `"msg":"file record"`) || !strings.Contains(text, `"probe":"yes"`) {
		t.Fatalf("expected JSON record in log file, got %q", text)
	}
	if !strings.Contains(text, `"level":"info"`) || !strings.Contains(text, `"ts":"`) {
		t.Fatalf("expected normalized ts and level keys, got %q", text)
	}
	if !strings.Contains(console.String(), "INFO file record") {
		t.Fatalf("expected console copy, got %q", console.String())
	}
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "dispatcher").Info("channel skipped", logging.String("reason", "no mobile number"))

	line := buf.String()
	if !strings.Contains(line, "INFO dispatcher: channel skipped") {
		t.Fatalf("unexpected console line %q", line)
	}
	if !strings.Contains(line, `reason="no mobile number"`) {
		t.Fatalf("expected quoted field, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information for debug logs, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithResellerID(context.Background(), 7)
	ctx = services.WithRequestID(ctx, "req-1")
	logging.WithContext(ctx, logger).Info("tagged")

	out := buf.String()
	for _, fragment := range []string{`"reseller_id":7`, `"correlation_id":"req-1"`} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %s in %s", fragment, out)
		}
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "mail gateway failed", "mail_send_failed", logging.String(logging.FieldImpact, "staff not notified"))

	out := buf.String()
	for _, fragment := range []string{`"event_type":"mail_send_failed"`, `"error_hint":"check logs for details"`, `"impact":"staff not notified"`} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %s in %s", fragment, out)
		}
	}
}
