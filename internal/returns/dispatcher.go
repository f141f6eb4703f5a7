package returns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"returnnotify/internal/config"
	"returnnotify/internal/logging"
	"returnnotify/internal/messaging"
	"returnnotify/internal/services"
)

// EventChangeReturnStatus is the event kind passed to both transports.
const EventChangeReturnStatus = "changeReturnStatus"

// Template keys for the email channels.
const (
	TemplateStaffSubject  = "complaintEmployeeEmailSubject"
	TemplateStaffBody     = "complaintEmployeeEmailBody"
	TemplateClientSubject = "complaintClientEmailSubject"
	TemplateClientBody    = "complaintClientEmailBody"
)

// Channel names used in logs and the status endpoint.
const (
	ChannelStaffEmail  = "staff_email"
	ChannelClientEmail = "client_email"
	ChannelClientSMS   = "client_sms"
)

// Dispatcher sends a validated notice over the three notification channels.
type Dispatcher struct {
	settings  Settings
	templates Templates
	mailer    messaging.Mailer
	sms       messaging.SMSSender
	channels  config.Channels
	logger    *slog.Logger
}

func NewDispatcher(settings Settings, templates Templates, mailer messaging.Mailer, sms messaging.SMSSender, channels config.Channels, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		settings:  settings,
		templates: templates,
		mailer:    mailer,
		sms:       sms,
		channels:  channels,
		logger:    logging.NewComponentLogger(logger, "dispatcher"),
	}
}

// Dispatch runs every channel and aggregates their outcomes. Channels run
// one after another unless channels.concurrent is set. A panicking channel
// keeps its default outcome and does not affect the others.
func (d *Dispatcher) Dispatch(ctx context.Context, notice *Notice) Result {
	var slots outcomes
	runs := []struct {
		name string
		fn   func(context.Context)
	}{
		{ChannelStaffEmail, func(ctx context.Context) { slots.staffEmail = d.StaffEmail(ctx, notice) }},
		{ChannelClientEmail, func(ctx context.Context) { slots.clientEmail = d.ClientEmail(ctx, notice) }},
		{ChannelClientSMS, func(ctx context.Context) { slots.clientSMS = d.ClientSMS(ctx, notice) }},
	}

	if !d.channels.Concurrent {
		for _, run := range runs {
			d.guard(services.WithChannel(ctx, run.name), run.fn)
		}
		return aggregate(&slots)
	}

	var wg sync.WaitGroup
	wg.Add(len(runs))
	for _, run := range runs {
		go func() {
			defer wg.Done()
			d.guard(services.WithChannel(ctx, run.name), run.fn)
		}()
	}
	wg.Wait()
	return aggregate(&slots)
}

func (d *Dispatcher) guard(ctx context.Context, fn func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			channel, _ := services.ChannelFromContext(ctx)
			channelOutcomeTotal.WithLabelValues(channel, "panicked").Inc()
			logging.ErrorWithContext(logging.WithContext(ctx, d.logger), "notification channel panicked", "channel_panic",
				logging.String(logging.FieldErrorHint, "report this as a bug with the event payload"),
				logging.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	fn(ctx)
}

// StaffEmail mails every employee subscribed to the staff permit, one
// message per address. It reports true once any message was handed to the
// mailer; transport errors are logged only.
func (d *Dispatcher) StaffEmail(ctx context.Context, notice *Notice) bool {
	logger := logging.WithContext(ctx, d.logger)
	if !d.channels.StaffEmail {
		d.skip(logger, "channel disabled")
		return false
	}
	resellerID := notice.ResellerID()

	from, ok := d.sendFrom(ctx, logger, resellerID)
	if !ok {
		return false
	}
	recipients, err := d.settings.EmailsByPermit(ctx, resellerID, d.channels.StaffPermit)
	if err != nil {
		logging.WarnWithContext(logger, "staff recipient lookup failed", "staff_recipients_failed",
			logging.String("permit", d.channels.StaffPermit),
			logging.String(logging.FieldErrorHint, "check the directory database"),
			logging.String(logging.FieldImpact, "staff email skipped"),
			logging.Error(err),
		)
		return false
	}
	addresses := make([]string, 0, len(recipients))
	for _, to := range recipients {
		if to = strings.TrimSpace(to); to != "" {
			addresses = append(addresses, to)
		}
	}
	if len(addresses) == 0 {
		d.skip(logger, "no subscribed staff", logging.String("permit", d.channels.StaffPermit))
		return false
	}

	values := notice.Context.Strings()
	subject := d.templates.Render(ctx, TemplateStaffSubject, values, resellerID)
	body := d.templates.Render(ctx, TemplateStaffBody, values, resellerID)
	route := messaging.Route{ResellerID: resellerID, Event: EventChangeReturnStatus}

	attempted := false
	for _, to := range addresses {
		if !d.sendMail(ctx, logger, messaging.Email{From: from, To: to, Subject: subject, Message: body}, route) {
			break
		}
		attempted = true
	}
	return attempted
}

// ClientEmail mails the client about a status change.
func (d *Dispatcher) ClientEmail(ctx context.Context, notice *Notice) bool {
	logger := logging.WithContext(ctx, d.logger)
	if !d.channels.ClientEmail {
		d.skip(logger, "channel disabled")
		return false
	}
	statusTo, ok := notice.Event.StatusTarget()
	if !ok {
		d.skip(logger, "no status transition")
		return false
	}
	resellerID := notice.ResellerID()

	from, ok := d.sendFrom(ctx, logger, resellerID)
	if !ok {
		return false
	}
	to := strings.TrimSpace(notice.Client.Email)
	if to == "" {
		d.skip(logger, "client has no email")
		return false
	}

	values := notice.Context.Strings()
	return d.sendMail(ctx, logger, messaging.Email{
		From:    from,
		To:      to,
		Subject: d.templates.Render(ctx, TemplateClientSubject, values, resellerID),
		Message: d.templates.Render(ctx, TemplateClientBody, values, resellerID),
	}, messaging.Route{
		ResellerID: resellerID,
		ClientID:   notice.Client.ID,
		Event:      EventChangeReturnStatus,
		StatusTo:   statusTo,
	})
}

// ClientSMS texts the client about a status change and reports the
// transport's answer verbatim.
func (d *Dispatcher) ClientSMS(ctx context.Context, notice *Notice) SMSOutcome {
	logger := logging.WithContext(ctx, d.logger)
	if !d.channels.ClientSMS {
		d.skip(logger, "channel disabled")
		return SMSOutcome{}
	}
	statusTo, ok := notice.Event.StatusTarget()
	if !ok {
		d.skip(logger, "no status transition")
		return SMSOutcome{}
	}
	if strings.TrimSpace(notice.Client.Mobile) == "" {
		d.skip(logger, "client has no mobile")
		return SMSOutcome{}
	}

	sent, errText := d.sms.Send(ctx, messaging.SMSRequest{
		ResellerID: notice.ResellerID(),
		ClientID:   notice.Client.ID,
		Event:      EventChangeReturnStatus,
		StatusTo:   statusTo,
		Data:       notice.Context.Strings(),
	})
	if errText != "" {
		logging.WarnWithContext(logger, "sms transport reported error", "sms_send_failed",
			logging.String(logging.FieldErrorHint, "check the SMS gateway"),
			logging.String(logging.FieldImpact, "client not texted"),
			logging.String("sms_error", errText),
		)
	}
	return SMSOutcome{IsSent: sent, Message: errText}
}

func (d *Dispatcher) sendFrom(ctx context.Context, logger *slog.Logger, resellerID int64) (string, bool) {
	from, err := d.settings.ResellerEmailFrom(ctx, resellerID)
	if err != nil {
		logging.WarnWithContext(logger, "send-from lookup failed", "email_from_failed",
			logging.String(logging.FieldErrorHint, "check the directory database"),
			logging.String(logging.FieldImpact, "email skipped"),
			logging.Error(err),
		)
		return "", false
	}
	from = strings.TrimSpace(from)
	if from == "" {
		d.skip(logger, "reseller has no send-from address")
		return "", false
	}
	return from, true
}

// sendMail hands one message to the mailer. It reports false only when no
// mail transport is configured.
func (d *Dispatcher) sendMail(ctx context.Context, logger *slog.Logger, message messaging.Email, route messaging.Route) bool {
	err := d.mailer.SendMessage(ctx, []messaging.Email{message}, route)
	switch {
	case errors.Is(err, messaging.ErrNotConfigured):
		d.skip(logger, "mail gateway not configured")
		return false
	case err != nil:
		logging.WarnWithContext(logger, "mail transport failed", "mail_send_failed",
			logging.String(logging.FieldErrorHint, "check the mail gateway"),
			logging.String(logging.FieldImpact, "email not delivered"),
			logging.String("to", message.To),
			logging.Error(err),
		)
	default:
		logger.Debug("mail handed to transport", logging.String("to", message.To))
	}
	return true
}

func (d *Dispatcher) skip(logger *slog.Logger, reason string, attrs ...logging.Attr) {
	attrs = append(logging.DecisionAttrs("channel_gate", "skipped", reason), attrs...)
	logger.Debug("notification channel skipped", logging.Args(attrs...)...)
}
