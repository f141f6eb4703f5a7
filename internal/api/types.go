package api

// ChannelStatus mirrors the [channels] switches.
type ChannelStatus struct {
	StaffEmail  bool   `json:"staffEmail"`
	ClientEmail bool   `json:"clientEmail"`
	ClientSMS   bool   `json:"clientSms"`
	Concurrent  bool   `json:"concurrent"`
	StaffPermit string `json:"staffPermit"`
}

// TransportStatus reports whether each gateway is configured.
type TransportStatus struct {
	Mail bool `json:"mail"`
	SMS  bool `json:"sms"`
}

// DirectoryCounts summarises the entity directory.
type DirectoryCounts struct {
	Resellers   int `json:"resellers"`
	Contractors int `json:"contractors"`
	Employees   int `json:"employees"`
	Permits     int `json:"permits"`
	Statuses    int `json:"statuses"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running       bool             `json:"running"`
	PID           int              `json:"pid"`
	DirectoryPath string           `json:"directoryPath"`
	LockFilePath  string           `json:"lockFilePath"`
	Channels      ChannelStatus    `json:"channels"`
	Transports    TransportStatus  `json:"transports"`
	Directory     *DirectoryCounts `json:"directory,omitempty"`
	DirectoryErr  string           `json:"directoryError,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
