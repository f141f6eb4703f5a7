package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"returnnotify/internal/directory"
	"returnnotify/internal/templates"
)

// DatabaseProbe is the part of the directory store the database check needs.
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	Counts(ctx context.Context) (directory.Counts, error)
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDatabase pings the directory and warns when it has no resellers yet.
func CheckDatabase(ctx context.Context, db DatabaseProbe) Result {
	const name = "Directory database"
	if db == nil {
		return Result{Name: name, Detail: "not opened"}
	}
	if err := db.Ping(ctx); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("ping failed (%v)", err)}
	}
	counts, err := db.Counts(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("count failed (%v)", err)}
	}
	if counts.Resellers == 0 {
		return Result{Name: name, Detail: "no resellers; run `returnnotify directory seed`"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d resellers, %d contractors, %d employees", counts.Resellers, counts.Contractors, counts.Employees)}
}

// CheckCatalog verifies the template catalog loads and covers the default language.
func CheckCatalog(overridePath, defaultLanguage string) Result {
	const name = "Template catalog"
	catalog, err := templates.LoadCatalog(overridePath)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if _, err := templates.NewRenderer(catalog, defaultLanguage, nil, nil); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	source := "built-in"
	if p := strings.TrimSpace(overridePath); p != "" {
		source = p
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s, %d languages", source, len(catalog))}
}

// CheckGateway verifies a transport gateway answers HTTP and accepts the key.
// Any response other than 401/403 or a 5xx counts as reachable.
func CheckGateway(ctx context.Context, name, gatewayURL, apiKey string) Result {
	endpoint := strings.TrimSpace(gatewayURL)
	if endpoint == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodHead, endpoint, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("check failed (%v)", err)}
	}
	if key := strings.TrimSpace(apiKey); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Result{Name: name, Detail: "auth failed (invalid api key)"}
	case resp.StatusCode >= http.StatusInternalServerError:
		return Result{Name: name, Detail: fmt.Sprintf("check failed (%d)", resp.StatusCode)}
	default:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	}
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (gateway unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (gateway unreachable)"
	}
	return fmt.Sprintf("unreachable (%v)", err)
}
