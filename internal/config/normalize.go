package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTemplates(); err != nil {
		return err
	}
	c.normalizeMail()
	c.normalizeSMS()
	c.normalizeChannels()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	if strings.TrimSpace(c.Directory.DatabasePath) == "" {
		c.Directory.DatabasePath = filepath.Join(c.Paths.DataDir, "directory.db")
	}
	if c.Directory.DatabasePath, err = expandPath(c.Directory.DatabasePath); err != nil {
		return fmt.Errorf("directory.database_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeTemplates() error {
	var err error
	c.Templates.CatalogPath = strings.TrimSpace(c.Templates.CatalogPath)
	if c.Templates.CatalogPath, err = expandPath(c.Templates.CatalogPath); err != nil {
		return fmt.Errorf("templates.catalog_path: %w", err)
	}
	c.Templates.DefaultLanguage = strings.TrimSpace(c.Templates.DefaultLanguage)
	if c.Templates.DefaultLanguage == "" {
		c.Templates.DefaultLanguage = defaultTemplateLanguage
	}
	return nil
}

func (c *Config) normalizeMail() {
	c.Mail.GatewayURL = strings.TrimSpace(c.Mail.GatewayURL)
	c.Mail.APIKey = strings.TrimSpace(c.Mail.APIKey)
	if c.Mail.APIKey == "" {
		if value, ok := os.LookupEnv("MAIL_GATEWAY_API_KEY"); ok {
			c.Mail.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeSMS() {
	c.SMS.GatewayURL = strings.TrimSpace(c.SMS.GatewayURL)
	c.SMS.APIKey = strings.TrimSpace(c.SMS.APIKey)
	if c.SMS.APIKey == "" {
		if value, ok := os.LookupEnv("SMS_GATEWAY_API_KEY"); ok {
			c.SMS.APIKey = strings.TrimSpace(value)
		}
	}
	c.SMS.Sender = strings.TrimSpace(c.SMS.Sender)
	if c.SMS.Sender == "" {
		c.SMS.Sender = defaultSMSSender
	}
}

func (c *Config) normalizeChannels() {
	c.Channels.StaffPermit = strings.TrimSpace(c.Channels.StaffPermit)
	if c.Channels.StaffPermit == "" {
		c.Channels.StaffPermit = defaultStaffPermit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
