package returns

import "strconv"

// Placeholder names available to notification templates.
const (
	PlaceholderComplaintID       = "COMPLAINT_ID"
	PlaceholderComplaintNumber   = "COMPLAINT_NUMBER"
	PlaceholderCreatorID         = "CREATOR_ID"
	PlaceholderCreatorName       = "CREATOR_NAME"
	PlaceholderExpertID          = "EXPERT_ID"
	PlaceholderExpertName        = "EXPERT_NAME"
	PlaceholderClientID          = "CLIENT_ID"
	PlaceholderClientName        = "CLIENT_NAME"
	PlaceholderConsumptionID     = "CONSUMPTION_ID"
	PlaceholderConsumptionNumber = "CONSUMPTION_NUMBER"
	PlaceholderAgreementNumber   = "AGREEMENT_NUMBER"
	PlaceholderDate              = "DATE"
	PlaceholderDifferences       = "DIFFERENCES"
)

// Placeholders lists every placeholder in the order the empty guard checks them.
var Placeholders = []string{
	PlaceholderComplaintID,
	PlaceholderComplaintNumber,
	PlaceholderCreatorID,
	PlaceholderCreatorName,
	PlaceholderExpertID,
	PlaceholderExpertName,
	PlaceholderClientID,
	PlaceholderClientName,
	PlaceholderConsumptionID,
	PlaceholderConsumptionNumber,
	PlaceholderAgreementNumber,
	PlaceholderDate,
	PlaceholderDifferences,
}

// RenderingContext holds placeholder values in insertion order. Values are
// either int64 (ids) or string.
type RenderingContext struct {
	keys   []string
	values map[string]any
}

func newRenderingContext() RenderingContext {
	return RenderingContext{values: make(map[string]any, len(Placeholders))}
}

func (c *RenderingContext) set(key string, value any) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get returns the raw value stored for key.
func (c RenderingContext) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns placeholder names in insertion order.
func (c RenderingContext) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Strings renders every value as text for templates and transports.
func (c RenderingContext) Strings() map[string]string {
	out := make(map[string]string, len(c.values))
	for key, value := range c.values {
		switch v := value.(type) {
		case int64:
			out[key] = strconv.FormatInt(v, 10)
		case string:
			out[key] = v
		}
	}
	return out
}

// firstEmpty returns the first placeholder, in insertion order, whose value
// is zero, empty, "0" or missing.
func (c RenderingContext) firstEmpty() (string, bool) {
	for _, key := range c.keys {
		if isEmptyValue(c.values[key]) {
			return key, true
		}
	}
	return "", false
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case int64:
		return v == 0
	case string:
		return v == "" || v == "0"
	default:
		return false
	}
}
