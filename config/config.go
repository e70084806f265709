package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the working directory when no
// path is given.
const FileName = "structbind.toml"

// EnvPrefix prefixes every environment override: STRUCTBIND_PACKAGE etc.
const EnvPrefix = "STRUCTBIND"

type Config struct {
	Package string `mapstructure:"package"`
	Format  string `mapstructure:"format"`
	Color   string `mapstructure:"color"`
	OutDir  string `mapstructure:"out_dir"`
	Jobs    int    `mapstructure:"jobs"`
	Verbose bool   `mapstructure:"verbose"`
	// Raw prints enum variants as integers in decoded values.
	Raw bool `mapstructure:"raw"`
}

var (
	formats = []string{"go", "json", "yaml", "msgpack"}
	colors  = []string{"auto", "on", "off"}
)

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("package", "bindings")
	v.SetDefault("format", "go")
	v.SetDefault("color", "auto")
	v.SetDefault("out_dir", "")
	v.SetDefault("jobs", 0) // 0 means one per CPU
	v.SetDefault("verbose", false)
	v.SetDefault("raw", false)
}

// New returns a viper instance with defaults, environment overrides and,
// when present, the config file. An explicit path must exist; the default
// structbind.toml is optional.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path == "" {
		if _, err := os.Stat(FileName); err != nil {
			return v, nil
		}
		path = FileName
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Color = strings.ToLower(cfg.Color)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if !oneOf(c.Format, formats) {
		return errors.Newf("format must be one of %s, got %q", strings.Join(formats, ", "), c.Format)
	}
	if !oneOf(c.Color, colors) {
		return errors.Newf("color must be one of %s, got %q", strings.Join(colors, ", "), c.Color)
	}
	if c.Package == "" {
		return errors.New("package cannot be empty")
	}
	if c.Jobs < 0 {
		return errors.Newf("jobs must be >= 0, got %d", c.Jobs)
	}
	return nil
}

func oneOf(s string, set []string) bool {
	for _, x := range set {
		if s == x {
			return true
		}
	}
	return false
}
