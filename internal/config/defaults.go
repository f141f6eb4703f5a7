package config

const (
	defaultConfigPath         = "~/.config/returnnotify/config.toml"
	defaultDataDir            = "~/.local/share/returnnotify"
	defaultLogDir             = "~/.local/share/returnnotify/logs"
	defaultDatabasePath       = "~/.local/share/returnnotify/directory.db"
	defaultAPIBind            = "127.0.0.1:7490"
	defaultTemplateLanguage   = "en"
	defaultRequestTimeout     = 10
	defaultSMSSender          = "returns"
	defaultStaffPermit        = "tsGoodsReturn"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogRetentionDays   = 60
	defaultStaffEmailEnabled  = true
	defaultClientEmailEnabled = true
	defaultClientSMSEnabled   = true
	defaultConcurrentDispatch = false
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Directory: Directory{
			DatabasePath: defaultDatabasePath,
		},
		Templates: Templates{
			DefaultLanguage: defaultTemplateLanguage,
		},
		Mail: Mail{
			RequestTimeout: defaultRequestTimeout,
		},
		SMS: SMS{
			Sender:         defaultSMSSender,
			RequestTimeout: defaultRequestTimeout,
		},
		Channels: Channels{
			StaffEmail:  defaultStaffEmailEnabled,
			ClientEmail: defaultClientEmailEnabled,
			ClientSMS:   defaultClientSMSEnabled,
			Concurrent:  defaultConcurrentDispatch,
			StaffPermit: defaultStaffPermit,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
