package config

import (
	"fmt"
	"net/netip"
	"time"

	"geoping/internal/models"
)

// Config holds all configuration for one geoping invocation. It is built
// once at startup and passed by value; nothing mutates it afterwards.
type Config struct {
	ProbeCount    int             `mapstructure:"probe_count"`
	PacketTimeout time.Duration   `mapstructure:"packet_timeout"`
	CommandMargin time.Duration   `mapstructure:"command_margin"`
	Concurrency   int             `mapstructure:"concurrency"`
	ProbeCommand  string          `mapstructure:"probe_command"`
	Language      string          `mapstructure:"language"`
	DatabasePath  string          `mapstructure:"db"`
	ReportDir     string          `mapstructure:"report_dir"`
	Port          int             `mapstructure:"port"`
	Targets       []models.Target `mapstructure:"targets"`
}

// CommandTimeout is the overall bound for one probe invocation. It always
// exceeds ProbeCount × PacketTimeout by CommandMargin.
func (c Config) CommandTimeout() time.Duration {
	return time.Duration(c.ProbeCount)*c.PacketTimeout + c.CommandMargin
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ProbeCount <= 0 {
		return fmt.Errorf("probe count must be positive")
	}
	if c.PacketTimeout <= 0 {
		return fmt.Errorf("packet timeout must be positive")
	}
	if c.CommandMargin <= 0 {
		return fmt.Errorf("command timeout must exceed probe count × packet timeout (margin %v)", c.CommandMargin)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	if c.ProbeCommand == "" {
		return fmt.Errorf("probe command cannot be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return validateCatalog(c.Targets)
}

func validateCatalog(targets []models.Target) error {
	if len(targets) == 0 {
		return fmt.Errorf("at least one target must be specified")
	}
	seen := make(map[string]bool, len(targets))
	for i, t := range targets {
		if t.Name == "" {
			return fmt.Errorf("target #%d has no name", i+1)
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate target name %q", t.Name)
		}
		seen[t.Name] = true
		if _, err := netip.ParseAddr(t.Address); err != nil {
			return fmt.Errorf("target %q: address %q is not an IP literal", t.Name, t.Address)
		}
		if t.Ordinal != i {
			return fmt.Errorf("target %q: ordinal %d does not match catalog position %d", t.Name, t.Ordinal, i)
		}
	}
	return nil
}
