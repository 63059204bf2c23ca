package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"mock-crm/internal/domain"
)

// Keys understood by Load. Each is read from the environment variable of the
// same name (upper-cased) or from a bound CLI flag.
const (
	KeyPort            = "port"
	KeyHTTPAddr        = "http_addr"
	KeyShutdownTimeout = "shutdown_timeout_seconds"
	KeySchema          = "crm_schema"
	KeySeedFile        = "seed_file"
	KeySeedCSV         = "seed_csv"
	KeySeedDefaults    = "seed_defaults"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyCORSOrigins     = "cors_allowed_origins"
)

// Config holds runtime configuration.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	Schema          domain.Schema
	SeedFile        string
	SeedCSV         string
	SeedDefaults    bool
	LogLevel        string
	LogFormat       string
	CORSOrigins     []string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, 5000)
	v.SetDefault(KeyHTTPAddr, "")
	v.SetDefault(KeyShutdownTimeout, 10)
	v.SetDefault(KeySchema, string(domain.SchemaLifetimeHealthCover))
	v.SetDefault(KeySeedFile, "")
	v.SetDefault(KeySeedCSV, "")
	v.SetDefault(KeySeedDefaults, true)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyCORSOrigins, "*")
}

// New returns a viper instance reading defaults and the environment.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return v
}

// Load builds Config from v. HTTP_ADDR wins over PORT when both are set.
func Load(v *viper.Viper) (Config, error) {
	schema, err := domain.ParseSchema(v.GetString(KeySchema))
	if err != nil {
		return Config{}, err
	}

	addr := v.GetString(KeyHTTPAddr)
	if addr == "" {
		port := v.GetInt(KeyPort)
		if port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid port %d", port)
		}
		addr = fmt.Sprintf(":%d", port)
	}

	timeout := time.Duration(v.GetInt(KeyShutdownTimeout)) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return Config{
		HTTPAddr:        addr,
		ShutdownTimeout: timeout,
		Schema:          schema,
		SeedFile:        v.GetString(KeySeedFile),
		SeedCSV:         v.GetString(KeySeedCSV),
		SeedDefaults:    v.GetBool(KeySeedDefaults),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
		CORSOrigins:     splitList(v.GetString(KeyCORSOrigins)),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
