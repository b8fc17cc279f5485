package config

import (
	"fmt"
	"os"

	"fix-gateway/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation and checks FIX/Hub/NATS sub-configs.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config name cannot be empty")
	}

	// Validate Application Ports (using c.Port directly due to embedding)
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid application port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GRPC_Port <= 1024 || c.GRPC_Port > 65535 {
		return fmt.Errorf("invalid gRPC port number: %d (must be between 1025 and 65535)", c.GRPC_Port)
	}

	// Validate FIX session settings
	if c.FIX == nil {
		return fmt.Errorf("fix section cannot be empty")
	}
	if c.FIX.SettingsFile == "" {
		return fmt.Errorf("fix settings file cannot be empty")
	}
	if c.FIX.SenderCompID == "" {
		return fmt.Errorf("fix sender comp id cannot be empty")
	}
	if c.FIX.TargetCompID == "" {
		return fmt.Errorf("fix target comp id cannot be empty")
	}
	if c.FIX.Account == "" {
		return fmt.Errorf("fix account cannot be empty")
	}

	// Validate Hub settings
	if c.Hub == nil {
		return fmt.Errorf("hub section cannot be empty")
	}
	if c.Hub.Port <= 1024 || c.Hub.Port > 65535 {
		return fmt.Errorf("invalid hub port number: %d (must be between 1025 and 65535)", c.Hub.Port)
	}
	if c.Hub.QueueSize <= 0 {
		return fmt.Errorf("hub queue size must be positive, got %d", c.Hub.QueueSize)
	}

	// Validation of NATS config (minimal check, only when enabled)
	if c.NATS != nil && c.NATS.Enabled {
		if len(c.NATS.Servers) == 0 {
			return fmt.Errorf("NATS servers list cannot be empty")
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// HubPath returns the websocket endpoint path, defaulting to /ws.
func (c *Config) HubPath() string {
	if c.Hub.Path == "" {
		return "/ws"
	}
	return c.Hub.Path
}

// -----------------------------------------------------------------------------

// NATSEnabled reports whether the NATS sink should be started.
func (c *Config) NATSEnabled() bool {
	return c.NATS != nil && c.NATS.Enabled
}
