package returns

// SMSOutcome is the client SMS channel result. Message carries the
// transport error, or the early-exit reason for a missing reseller id.
type SMSOutcome struct {
	IsSent  bool   `json:"isSent"`
	Message string `json:"message"`
}

// Result is the per-channel outcome of one notification run.
type Result struct {
	EmployeeByEmail bool       `json:"notificationEmployeeByEmail"`
	ClientByEmail   bool       `json:"notificationClientByEmail"`
	ClientBySMS     SMSOutcome `json:"notificationClientBySms"`
}

const msgEmptyResellerID = "Empty resellerId"

func emptyResellerResult() Result {
	return Result{ClientBySMS: SMSOutcome{Message: msgEmptyResellerID}}
}

// outcomes has one slot per channel; each channel writes only its own.
type outcomes struct {
	staffEmail  bool
	clientEmail bool
	clientSMS   SMSOutcome
}

func aggregate(o *outcomes) Result {
	return Result{
		EmployeeByEmail: o.staffEmail,
		ClientByEmail:   o.clientEmail,
		ClientBySMS:     o.clientSMS,
	}
}
