package returns

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NotificationType distinguishes a freshly added return position from a
// status change of an existing one.
type NotificationType int64

const (
	TypeNew    NotificationType = 1
	TypeChange NotificationType = 2
)

// Valid reports whether t is a recognised notification type.
func (t NotificationType) Valid() bool {
	return t == TypeNew || t == TypeChange
}

func (t NotificationType) String() string {
	switch t {
	case TypeNew:
		return "new"
	case TypeChange:
		return "change"
	default:
		return "unknown"
	}
}

// Differences is the from/to status pair of a CHANGE event.
type Differences struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// ChangeEvent is one return-status notification request.
type ChangeEvent struct {
	ResellerID        int64            `json:"resellerId"`
	NotificationType  NotificationType `json:"notificationType"`
	ComplaintID       int64            `json:"complaintId"`
	ComplaintNumber   string           `json:"complaintNumber"`
	CreatorID         int64            `json:"creatorId"`
	ExpertID          int64            `json:"expertId"`
	ClientID          int64            `json:"clientId"`
	ConsumptionID     int64            `json:"consumptionId"`
	ConsumptionNumber string           `json:"consumptionNumber"`
	AgreementNumber   string           `json:"agreementNumber"`
	Date              string           `json:"date"`
	Differences       *Differences     `json:"differences,omitempty"`
}

// StatusTarget returns the status the return moved to when the event is a
// CHANGE with a non-zero target. Client channels only run in that case.
func (e ChangeEvent) StatusTarget() (int64, bool) {
	if e.NotificationType != TypeChange || e.Differences == nil || e.Differences.To == 0 {
		return 0, false
	}
	return e.Differences.To, true
}

// ParseEvent reads an event from an untyped key/value bag such as a decoded
// JSON object. Every field is cast independently; values that cannot be
// cast become zero and are caught later by validation.
func ParseEvent(data map[string]any) ChangeEvent {
	event := ChangeEvent{
		ResellerID:        toInt64(data["resellerId"]),
		NotificationType:  NotificationType(toInt64(data["notificationType"])),
		ComplaintID:       toInt64(data["complaintId"]),
		ComplaintNumber:   toString(data["complaintNumber"]),
		CreatorID:         toInt64(data["creatorId"]),
		ExpertID:          toInt64(data["expertId"]),
		ClientID:          toInt64(data["clientId"]),
		ConsumptionID:     toInt64(data["consumptionId"]),
		ConsumptionNumber: toString(data["consumptionNumber"]),
		AgreementNumber:   toString(data["agreementNumber"]),
		Date:              toString(data["date"]),
	}
	if diff, ok := data["differences"].(map[string]any); ok {
		event.Differences = &Differences{
			From: toInt64(diff["from"]),
			To:   toInt64(diff["to"]),
		}
	}
	return event
}

func toInt64(value any) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return floatToInt64(v)
	case float32:
		return floatToInt64(float64(v))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return floatToInt64(f)
		}
		return 0
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt64(f)
		}
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func floatToInt64(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case bool:
		if v {
			return "1"
		}
		return ""
	default:
		return ""
	}
}
