package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers understood by the store package.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Settings configures the long-running service and the study commands.
type Settings struct {
	HTTP            HTTPSettings     `mapstructure:"http"`
	Database        DatabaseSettings `mapstructure:"database"`
	Logging         LoggingSettings  `mapstructure:"logging"`
	AssumptionsFile string           `mapstructure:"assumptions_file"`
}

type HTTPSettings struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseSettings struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"` // sqlite file
	URL    string `mapstructure:"url"`  // postgres DSN
}

type LoggingSettings struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// LoadSettings reads .env (if present), the optional settings file and FEASIBILITY_*
// environment variables, in increasing order of precedence. An empty configFile searches
// for feasibility.yaml in the working directory and ./configs.
func LoadSettings(configFile string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("feasibility")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("FEASIBILITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Allow the conventional names used by container platforms.
	_ = v.BindEnv("database.url", "FEASIBILITY_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("http.addr", "FEASIBILITY_HTTP_ADDR", "HTTP_ADDR")
	_ = v.BindEnv("logging.level", "FEASIBILITY_LOGGING_LEVEL", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "feasibility.db")
	v.SetDefault("database.url", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
	v.SetDefault("assumptions_file", "")
}

// Validate checks the settings that cannot be defaulted.
func (s *Settings) Validate() error {
	switch s.Database.Driver {
	case DriverSQLite:
		if s.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfiguration)
		}
	case DriverPostgres:
		if s.Database.URL == "" {
			return fmt.Errorf("%w: database.url is required for postgres", ErrInvalidConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfiguration, s.Database.Driver)
	}
	return nil
}
