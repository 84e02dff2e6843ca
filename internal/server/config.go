package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Table  TableSettings  `hcl:"table,block"`
}

// ServerSettings contains transport-level configuration.
type ServerSettings struct {
	Address   string `hcl:"address,optional"`
	Port      int    `hcl:"port,optional"`
	LogLevel  string `hcl:"log_level,optional"`
	StaticDir string `hcl:"static_dir,optional"`
}

// TableSettings defines the single table's constants.
type TableSettings struct {
	StartingStack     int `hcl:"starting_stack,optional"`
	SmallBlind        int `hcl:"small_blind,optional"`
	BigBlind          int `hcl:"big_blind,optional"`
	NextHandDelaySecs int `hcl:"next_hand_delay_secs,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:   "localhost",
			Port:      8080,
			LogLevel:  "info",
			StaticDir: "static",
		},
		Table: TableSettings{
			StartingStack:     1000,
			SmallBlind:        10,
			BigBlind:          20,
			NextHandDelaySecs: 5,
		},
	}
}

// LoadConfig loads server configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Server.Address == "" {
		cfg.Server.Address = def.Server.Address
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = def.Server.LogLevel
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = def.Server.StaticDir
	}
	if cfg.Table.StartingStack == 0 {
		cfg.Table.StartingStack = def.Table.StartingStack
	}
	if cfg.Table.SmallBlind == 0 {
		cfg.Table.SmallBlind = def.Table.SmallBlind
	}
	if cfg.Table.BigBlind == 0 {
		cfg.Table.BigBlind = def.Table.BigBlind
	}
	if cfg.Table.NextHandDelaySecs == 0 {
		cfg.Table.NextHandDelaySecs = def.Table.NextHandDelaySecs
	}
}

// Validate checks the configuration for nonsense values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Table.SmallBlind <= 0 || c.Table.BigBlind <= 0 {
		return fmt.Errorf("blinds must be positive")
	}
	if c.Table.SmallBlind > c.Table.BigBlind {
		return fmt.Errorf("small blind %d exceeds big blind %d", c.Table.SmallBlind, c.Table.BigBlind)
	}
	if c.Table.StartingStack < c.Table.BigBlind {
		return fmt.Errorf("starting stack %d is below the big blind", c.Table.StartingStack)
	}
	return nil
}
