package returns

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "returnnotify_events_total",
			Help: "Return status events processed, by outcome.",
		},
		[]string{"outcome"},
	)
	channelOutcomeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "returnnotify_channel_outcome_total",
			Help: "Notification channel results by channel and outcome.",
		},
		[]string{"channel", "outcome"},
	)
)

// Event outcomes.
const (
	eventEmptyReseller = "empty_reseller"
	eventRejected      = "rejected"
	eventFailed        = "failed"
	eventDispatched    = "dispatched"
)

func recordChannelOutcomes(result Result) {
	channelOutcomeTotal.WithLabelValues(ChannelStaffEmail, sentOrSkipped(result.EmployeeByEmail)).Inc()
	channelOutcomeTotal.WithLabelValues(ChannelClientEmail, sentOrSkipped(result.ClientByEmail)).Inc()
	sms := sentOrSkipped(result.ClientBySMS.IsSent)
	if !result.ClientBySMS.IsSent && result.ClientBySMS.Message != "" {
		sms = "failed"
	}
	channelOutcomeTotal.WithLabelValues(ChannelClientSMS, sms).Inc()
}

func sentOrSkipped(sent bool) string {
	if sent {
		return "sent"
	}
	return "skipped"
}
