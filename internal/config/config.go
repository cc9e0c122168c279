package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string           `yaml:"env"         env-default:"local"` // Env is the current environment: local, development, production.
	Postgres   PostgresConfig   `yaml:"postgres"    env-required:"true"` // Postgres holds the database configuration
	HTTPServer HTTPServerConfig `yaml:"http_server"`                     // HTTPServer holds the REST API listener configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Dbname   string `yaml:"db_name"`                     // Dbname is the name of the database.
}

// HTTPServerConfig struct holds the configuration of the HTTP listener.
type HTTPServerConfig struct {
	Address         string        `yaml:"address"`          // Address is the listen address in host:port form.
	Timeout         time.Duration `yaml:"timeout"`          // Timeout bounds reading and writing a single request.
	IdleTimeout     time.Duration `yaml:"idle_timeout"`     // IdleTimeout is the keep-alive idle limit.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // ShutdownTimeout bounds graceful shutdown.
	AllowedOrigins  []string      `yaml:"allowed_origins"`  // AllowedOrigins is the CORS origin allow-list.
}

// envBindings maps configuration keys to the environment variables that override them.
var envBindings = map[string]string{
	"env":                          "HESTIA_ENV",
	"postgres.host":                "DB_HOST",
	"postgres.port":                "DB_PORT",
	"postgres.user":                "DB_USERNAME",
	"postgres.password":            "DB_PASSWORD",
	"postgres.db_name":             "DB_NAME",
	"http_server.address":          "HTTP_ADDRESS",
	"http_server.timeout":          "HTTP_TIMEOUT",
	"http_server.idle_timeout":     "HTTP_IDLE_TIMEOUT",
	"http_server.shutdown_timeout": "HTTP_SHUTDOWN_TIMEOUT",
	"http_server.allowed_origins":  "HTTP_ALLOWED_ORIGINS",
}

// MustLoad loads the configuration from environment variables and, when CONFIG_PATH is set,
// from a YAML file. Environment variables take precedence over the file.
func MustLoad() *Config {
	vpr := viper.New()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		vpr.SetConfigFile(configPath)
		if err := vpr.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	for key, env := range envBindings {
		if err := vpr.BindEnv(key, env); err != nil {
			panic("config error: " + err.Error())
		}
	}

	vpr.SetDefault("env", "local")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("http_server.address", ":8080")
	vpr.SetDefault("http_server.timeout", "4s")
	vpr.SetDefault("http_server.idle_timeout", "60s")
	vpr.SetDefault("http_server.shutdown_timeout", "10s")
	vpr.SetDefault("http_server.allowed_origins", "*")

	return &Config{
		Env: vpr.GetString("env"),
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
		HTTPServer: HTTPServerConfig{
			Address:         vpr.GetString("http_server.address"),
			Timeout:         mustDuration(vpr, "http_server.timeout", "timeout"),
			IdleTimeout:     mustDuration(vpr, "http_server.idle_timeout", "idle timeout"),
			ShutdownTimeout: mustDuration(vpr, "http_server.shutdown_timeout", "shutdown timeout"),
			AllowedOrigins:  origins(vpr.Get("http_server.allowed_origins")),
		},
	}
}

// mustDuration parses a duration value, panicking on malformed input rather than silently using zero.
func mustDuration(vpr *viper.Viper, key, name string) time.Duration {
	raw := strings.TrimSpace(vpr.GetString(key))

	value, err := time.ParseDuration(raw)
	if err != nil {
		panic("failed to parse " + name + " from configuration")
	}

	return value
}

// origins accepts either a YAML list or a comma separated string.
func origins(raw any) []string {
	var parts []string

	switch value := raw.(type) {
	case []any:
		for _, item := range value {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	case []string:
		parts = value
	case string:
		parts = strings.Split(value, ",")
	}

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
