package returns

import (
	"context"
	"log/slog"

	"returnnotify/internal/config"
	"returnnotify/internal/logging"
	"returnnotify/internal/services"
	"returnnotify/internal/templates"
)

// Operation is the return-status notification pipeline.
type Operation struct {
	builder    *Builder
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewOperation wires the builder and dispatcher over deps.
func NewOperation(deps Dependencies, channels config.Channels, logger *slog.Logger) *Operation {
	resolver := NewDifferenceResolver(deps.Templates, deps.Statuses)
	return &Operation{
		builder:    NewBuilder(deps.Resellers, deps.Clients, deps.Employees, resolver, logger),
		dispatcher: NewDispatcher(deps.Settings, deps.Templates, deps.Mailer, deps.SMS, channels, logger),
		logger:     logging.NewComponentLogger(logger, "returns"),
	}
}

// Do validates event and sends its notifications. A zero reseller id
// returns the "Empty resellerId" result without touching any collaborator.
// Validation failures return an error and nothing is sent.
func (o *Operation) Do(ctx context.Context, event ChangeEvent) (Result, error) {
	if event.ResellerID == 0 {
		logging.WithContext(ctx, o.logger).Debug("event rejected",
			logging.Args(logging.DecisionAttrs("reseller_check", "rejected", "empty reseller id")...)...,
		)
		eventsTotal.WithLabelValues(eventEmptyReseller).Inc()
		return emptyResellerResult(), nil
	}
	ctx = templates.WithLanguageCache(services.WithResellerID(ctx, event.ResellerID))
	logger := logging.WithContext(ctx, o.logger)

	notice, err := o.builder.Build(ctx, event)
	if err != nil {
		if services.HTTPStatus(err) < 500 {
			eventsTotal.WithLabelValues(eventRejected).Inc()
		} else {
			eventsTotal.WithLabelValues(eventFailed).Inc()
		}
		logger.Info("return notification rejected",
			logging.String("notification_type", event.NotificationType.String()),
			logging.Int("http_status", services.HTTPStatus(err)),
			logging.Error(err),
		)
		return Result{}, err
	}

	result := o.dispatcher.Dispatch(ctx, notice)
	eventsTotal.WithLabelValues(eventDispatched).Inc()
	recordChannelOutcomes(result)
	logger.Info("return notification dispatched",
		logging.String("notification_type", event.NotificationType.String()),
		logging.Int64("complaint_id", event.ComplaintID),
		logging.Bool("staff_email", result.EmployeeByEmail),
		logging.Bool("client_email", result.ClientByEmail),
		logging.Bool("client_sms", result.ClientBySMS.IsSent),
	)
	return result, nil
}
