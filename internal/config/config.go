package config

import (
	"os"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "info"

	defaultInterval = 60
	defaultDatabase = "/var/lib/chargestatsd/telemetry.db"
)

type Config struct {
	Interval int    // seconds between drain cycles
	Database string // path to the telemetry sink database
	LogLevel string
	Debug    bool
	Verbose  bool
	Once     bool // run a single drain cycle and exit

	// Sources maps a source name (charger, wireless, pca, thermal,
	// gcharger, dualbatt) to the file backing it, overriding the
	// built-in sysfs paths.
	Sources map[string]string
}

func Load() (*Config, error) {
	errFactory := errors.New()
	config := &Config{}

	flags := pflag.NewFlagSet("chargestatsd", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Int("interval", defaultInterval, "Seconds between drain cycles")
	flags.String("database", defaultDatabase, "Path to the telemetry database")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")
	flags.Bool("once", false, "Run a single drain cycle and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("interval", defaultInterval)
	v.SetDefault("database", defaultDatabase)
	v.SetDefault("log_level", DefaultLogLevel)

	// Load configuration from file; CHARGESTATSD_CONFIG points at an
	// explicit file, otherwise /etc/chargestatsd.toml is used
	v.SetEnvPrefix("CHARGESTATSD")
	v.AutomaticEnv()
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("chargestatsd")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Override config file values with command line flags
	flags.Visit(func(f *pflag.Flag) {
		key := f.Name
		if key == "log-level" {
			key = "log_level"
		}
		v.Set(key, f.Value.String())
	})

	config.Interval = v.GetInt("interval")
	config.Database = v.GetString("database")
	config.LogLevel = v.GetString("log_level")
	config.Debug = v.GetBool("debug")
	config.Verbose = v.GetBool("verbose")
	config.Once = v.GetBool("once")
	config.Sources = v.GetStringMapString("sources")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			Field string
			Value int
		}{
			Field: "interval",
			Value: c.Interval,
		})
	}

	if c.Database == "" {
		return errFactory.WithMessage(errors.ErrMissingConfig, "database path is required")
	}

	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}
