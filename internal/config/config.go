// Package config reads and writes homeview's user settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the config.toml file in the user's config directory.
type Config struct {
	Display DisplayConfig `toml:"display"`
	Plot    PlotConfig    `toml:"plot"`
	Source  SourceConfig  `toml:"source"`
}

// DisplayConfig sizes widget output.
type DisplayConfig struct {
	HeadRows    int `toml:"head_rows" config:"display.head_rows" default:"5" min:"1" max:"1000" desc:"Rows shown by head and tail"`
	PreviewRows int `toml:"preview_rows" config:"display.preview_rows" default:"20" min:"1" max:"10000" desc:"Rows previewed by the market filter"`
	MaxEntities int `toml:"max_entities" config:"display.max_entities" default:"100" min:"1" max:"100000" desc:"Metros offered by the trends widget"`
	ListRows    int `toml:"list_rows" config:"display.list_rows" default:"12" min:"1" max:"100" desc:"Visible rows of a multi-select list"`
}

// PlotConfig selects and sizes the chart backend.
type PlotConfig struct {
	Backend   string `toml:"backend" config:"plot.backend" default:"terminal" desc:"Chart backend (terminal, png, svg)"`
	OutputDir string `toml:"output_dir" config:"plot.output_dir" desc:"Directory for image charts (empty = <temp dir>/homeview)"`
	Width     int    `toml:"width" config:"plot.width" default:"1200" min:"100" max:"10000" desc:"Chart width in pixels"`
	Height    int    `toml:"height" config:"plot.height" default:"600" min:"100" max:"10000" desc:"Chart height in pixels"`
}

// SourceConfig holds defaults for table sources.
type SourceConfig struct {
	DSN     string `toml:"dsn" config:"source.dsn" desc:"Default PostgreSQL connection URL"`
	Timeout string `toml:"timeout" config:"source.timeout" default:"30s" desc:"Database query timeout"`
}

// DefaultConfig returns a new config with default values.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			HeadRows:    5,
			PreviewRows: 20,
			MaxEntities: 100,
			ListRows:    12,
		},
		Plot: PlotConfig{
			Backend: "terminal",
			Width:   1200,
			Height:  600,
		},
		Source: SourceConfig{
			Timeout: "30s",
		},
	}
}

// Path returns the config file location: $HOMEVIEW_CONFIG when set,
// otherwise the platform config directory.
func Path() string {
	if p := os.Getenv("HOMEVIEW_CONFIG"); p != "" {
		return p
	}

	var configDir string
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, "Library", "Application Support", "homeview")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "homeview")
	default: // Linux and others - follow XDG
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "homeview")
		} else {
			home, _ := os.UserHomeDir()
			configDir = filepath.Join(home, ".config", "homeview")
		}
	}
	return filepath.Join(configDir, "config.toml")
}

// Load reads the config file at path. A missing file yields the defaults.
// Zero values left by a partial file are back-filled from DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	defaults := DefaultConfig()

	if c.Display.HeadRows == 0 {
		c.Display.HeadRows = defaults.Display.HeadRows
	}
	if c.Display.PreviewRows == 0 {
		c.Display.PreviewRows = defaults.Display.PreviewRows
	}
	if c.Display.MaxEntities == 0 {
		c.Display.MaxEntities = defaults.Display.MaxEntities
	}
	if c.Display.ListRows == 0 {
		c.Display.ListRows = defaults.Display.ListRows
	}
	if c.Plot.Backend == "" {
		c.Plot.Backend = defaults.Plot.Backend
	}
	if c.Plot.Width == 0 {
		c.Plot.Width = defaults.Plot.Width
	}
	if c.Plot.Height == 0 {
		c.Plot.Height = defaults.Plot.Height
	}
	if c.Source.Timeout == "" {
		c.Source.Timeout = defaults.Source.Timeout
	}
}

// Save writes the config file to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// DSN returns $HOMEVIEW_DSN when set, otherwise source.dsn.
func (c *Config) DSN() string {
	if dsn := os.Getenv("HOMEVIEW_DSN"); dsn != "" {
		return dsn
	}
	return c.Source.DSN
}

// QueryTimeout parses source.timeout.
func (c *Config) QueryTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Source.Timeout)
	if err != nil {
		return 0, fmt.Errorf("source.timeout: %w", err)
	}
	return d, nil
}

// GetValue returns a config value by key
func (c *Config) GetValue(key string) (string, bool) {
	return getFieldValue(c, key)
}

// SetValue sets a config value by key, enforcing the field's min and max
func (c *Config) SetValue(key, value string) error {
	return setFieldValue(c, key, value)
}
