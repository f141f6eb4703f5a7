package returns

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordChannelOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		result  Result
		channel string
		outcome string
	}{
		{"staff sent", Result{EmployeeByEmail: true}, ChannelStaffEmail, "sent"},
		{"client email skipped", Result{}, ChannelClientEmail, "skipped"},
		{"sms sent", Result{ClientBySMS: SMSOutcome{IsSent: true}}, ChannelClientSMS, "sent"},
		{"sms failed", Result{ClientBySMS: SMSOutcome{Message: "carrier rejected"}}, ChannelClientSMS, "failed"},
		{"sms skipped", Result{}, ChannelClientSMS, "skipped"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := channelOutcomeTotal.WithLabelValues(tt.channel, tt.outcome)
			before := testutil.ToFloat64(counter)
			recordChannelOutcomes(tt.result)
			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Fatalf("expected %s/%s to grow by 1, grew by %v", tt.channel, tt.outcome, got)
			}
		})
	}
}
