package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateGateways(); err != nil {
		return err
	}
	if err := c.validateChannels(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Directory.DatabasePath) == "" {
		return errors.New("directory.database_path must be set")
	}
	return nil
}

func (c *Config) validateGateways() error {
	if err := ensurePositiveMap(map[string]int{
		"mail.request_timeout": c.Mail.RequestTimeout,
		"sms.request_timeout":  c.SMS.RequestTimeout,
	}); err != nil {
		return err
	}
	if c.Mail.RatePerMinute < 0 {
		return errors.New("mail.rate_per_minute must not be negative")
	}
	if c.SMS.RatePerMinute < 0 {
		return errors.New("sms.rate_per_minute must not be negative")
	}
	if err := validateURL("mail.gateway_url", c.Mail.GatewayURL); err != nil {
		return err
	}
	if err := validateURL("sms.gateway_url", c.SMS.GatewayURL); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateChannels() error {
	if strings.TrimSpace(c.Channels.StaffPermit) == "" {
		return errors.New("channels.staff_permit must be set")
	}
	return nil
}

// validateURL accepts an empty value (transport disabled) or an absolute http(s) URL.
func validateURL(key, value string) error {
	if value == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", key, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", key, value)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
