package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/syssam/schemagen/compiler/gen"
)

// Config is the schemagen.yaml configuration file. Every key can be set
// through a SCHEMAGEN_ environment variable, e.g. SCHEMAGEN_SDL_TARGET.
type Config struct {
	// Schema is the directory holding the schema documents.
	Schema         string   `mapstructure:"schema"`
	Target         string   `mapstructure:"target"`
	SDLTarget      string   `mapstructure:"sdl_target"`
	GoTarget       string   `mapstructure:"go_target"`
	GoPackage      string   `mapstructure:"go_package"`
	SnapshotTarget string   `mapstructure:"snapshot_target"`
	Export         string   `mapstructure:"export"`
	ORMSuffix      string   `mapstructure:"orm_suffix"`
	IDField        string   `mapstructure:"id_field"`
	Header         []string `mapstructure:"header"`
	Features       []string `mapstructure:"features"`
}

// SetDefaults registers the default configuration values.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("schema", "./schema")
	v.SetDefault("target", "./generated/schema.ts")
	v.SetDefault("export", gen.DefaultSDLExport)
	v.SetDefault("orm_suffix", gen.DefaultORMSuffix)
	v.SetDefault("id_field", gen.DefaultIDField)
	v.SetDefault("go_package", gen.DefaultGoPackage)
	// Keys without a default value are invisible to Unmarshal when only
	// set through the environment.
	v.SetDefault("sdl_target", "")
	v.SetDefault("go_target", "")
	v.SetDefault("snapshot_target", "")
	v.SetDefault("features", []string{})
}

// newViper returns a viper instance reading the config file, the
// environment and the given flags, in increasing precedence.
func newViper(configFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("SCHEMAGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("schemagen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		for _, key := range []string{"schema", "target", "sdl-target", "go-target", "features"} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(strings.ReplaceAll(key, "-", "_"), f); err != nil {
					return nil, err
				}
			}
		}
	}
	return v, nil
}

// LoadConfig reads the configuration from the config file (schemagen.yaml
// in the working directory when empty), the environment and the flags.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v, err := newViper(configFile, flags)
	if err != nil {
		return nil, err
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

// GenConfig converts the file configuration into the codegen configuration.
// All invalid values are reported at once.
func (c *Config) GenConfig() (*gen.Config, error) {
	opts := []gen.Option{
		gen.WithTarget(c.Target),
		gen.WithSDLExport(c.Export),
		gen.WithORMSuffix(c.ORMSuffix),
		gen.WithIDField(c.IDField),
		gen.WithFeatureNames(c.Features...),
	}
	if c.Header != nil {
		opts = append(opts, gen.WithHeader(c.Header...))
	}
	if c.SDLTarget != "" {
		opts = append(opts, gen.WithSDLTarget(c.SDLTarget))
	}
	if c.GoTarget != "" {
		opts = append(opts, gen.WithGoTarget(c.GoTarget, c.GoPackage))
	}
	if c.SnapshotTarget != "" {
		opts = append(opts, gen.WithSnapshotTarget(c.SnapshotTarget))
	}
	cfg := &gen.Config{}
	if err := cfg.ApplyAll(opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
