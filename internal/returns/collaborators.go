package returns

import (
	"context"
	"log/slog"
	"strconv"

	"returnnotify/internal/directory"
	"returnnotify/internal/logging"
	"returnnotify/internal/messaging"
)

// Lookups return (nil, nil) when the record does not exist; an error means
// the lookup itself failed.

type Resellers interface {
	ResellerByID(ctx context.Context, id int64) (*directory.Reseller, error)
}

type Clients interface {
	ContractorByID(ctx context.Context, id int64) (*directory.Contractor, error)
}

type Employees interface {
	EmployeeByID(ctx context.Context, id int64) (*directory.Employee, error)
}

// Settings exposes per-reseller mail settings and permit subscriptions.
type Settings interface {
	ResellerEmailFrom(ctx context.Context, resellerID int64) (string, error)
	EmailsByPermit(ctx context.Context, resellerID int64, permit string) ([]string, error)
}

// Templates renders a catalog message for a reseller.
type Templates interface {
	Render(ctx context.Context, key string, values map[string]string, resellerID int64) string
}

// Statuses resolves a return status code to its display name.
type Statuses interface {
	Name(ctx context.Context, code int64) string
}

// Dependencies bundles every collaborator the operation consumes.
type Dependencies struct {
	Resellers Resellers
	Clients   Clients
	Employees Employees
	Settings  Settings
	Statuses  Statuses
	Templates Templates
	Mailer    messaging.Mailer
	SMS       messaging.SMSSender
}

// DirectoryDependencies wires the SQLite directory in as every lookup
// collaborator.
func DirectoryDependencies(store *directory.Store, templates Templates, mailer messaging.Mailer, sms messaging.SMSSender, logger *slog.Logger) Dependencies {
	return Dependencies{
		Resellers: store,
		Clients:   store,
		Employees: store,
		Settings:  store,
		Statuses:  NewStatusNames(store, logger),
		Templates: templates,
		Mailer:    mailer,
		SMS:       sms,
	}
}

// StatusSource is the raw status table lookup.
type StatusSource interface {
	StatusName(ctx context.Context, code int64) (string, error)
}

// StatusNames adapts a StatusSource to Statuses. Unknown codes and lookup
// failures render as the numeric code.
type StatusNames struct {
	source StatusSource
	logger *slog.Logger
}

func NewStatusNames(source StatusSource, logger *slog.Logger) *StatusNames {
	return &StatusNames{source: source, logger: logging.NewComponentLogger(logger, "statuses")}
}

func (s *StatusNames) Name(ctx context.Context, code int64) string {
	name, err := s.source.StatusName(ctx, code)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "status name lookup failed", "status_lookup_failed",
			logging.Int64("status_code", code),
			logging.String(logging.FieldErrorHint, "check the directory database"),
			logging.String(logging.FieldImpact, "numeric status code used in message"),
			logging.Error(err),
		)
	}
	if name == "" {
		return strconv.FormatInt(code, 10)
	}
	return name
}
