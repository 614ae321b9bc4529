package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"parcelflow/internal/adapters/out/postgres"
	"parcelflow/internal/core/application/agents"
	"parcelflow/internal/jobs"
	"parcelflow/internal/pkg/errs"
)

// Transport kinds.
const (
	TransportMemory = "memory"
	TransportRedis  = "redis"
)

// Defaults applied by LoadConfig.
const (
	DefaultHTTPPort      = "8080"
	DefaultTrafficOrders = "ORD002"
)

type Config struct {
	HTTPPort        string
	Transport       string
	RedisURL        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	ReceiveTimeout  time.Duration
	TrafficOrders   string
	ArchiveSchedule string
	DemoScenario    bool
	DemoStagger     time.Duration
	LogLevel        slog.Level
}

// LoadConfig reads the configuration through lookupEnv, typically os.LookupEnv after
// godotenv has loaded .env. Unset variables take their defaults. TRAFFIC_ORDERS set
// to an empty value disables traffic entirely. The demo scenario runs unless
// DEMO_SCENARIO is false.
func LoadConfig(lookupEnv func(string) (string, bool)) (Config, error) {
	getenv := func(key string) string {
		v, _ := lookupEnv(key)
		return strings.TrimSpace(v)
	}

	cfg := Config{
		HTTPPort:        getenv("HTTP_PORT"),
		Transport:       strings.ToLower(getenv("TRANSPORT")),
		RedisURL:        getenv("REDIS_URL"),
		DBHost:          getenv("DB_HOST"),
		DBPort:          getenv("DB_PORT"),
		DBUser:          getenv("DB_USER"),
		DBPassword:      getenv("DB_PASSWORD"),
		DBName:          getenv("DB_NAME"),
		DBSslMode:       getenv("DB_SSLMODE"),
		TrafficOrders:   getenv("TRAFFIC_ORDERS"),
		ArchiveSchedule: getenv("ARCHIVE_SCHEDULE"),
		ReceiveTimeout:  agents.DefaultIdleTimeout,
		DemoScenario:    true,
		DemoStagger:     jobs.DefaultDemoStagger,
		LogLevel:        slog.LevelInfo,
	}

	if cfg.HTTPPort == "" {
		cfg.HTTPPort = DefaultHTTPPort
	}
	if cfg.Transport == "" {
		cfg.Transport = TransportMemory
	}
	if _, set := lookupEnv("TRAFFIC_ORDERS"); !set {
		cfg.TrafficOrders = DefaultTrafficOrders
	}
	if cfg.ArchiveSchedule == "" {
		cfg.ArchiveSchedule = jobs.DefaultArchiveSchedule
	}

	var errList []error

	if v, set := lookup(lookupEnv, "RECEIVE_TIMEOUT"); set {
		d, err := positiveDuration("RECEIVE_TIMEOUT", v)
		errList = append(errList, err)
		cfg.ReceiveTimeout = d
	}

	if v, set := lookup(lookupEnv, "DEMO_STAGGER"); set {
		d, err := positiveDuration("DEMO_STAGGER", v)
		errList = append(errList, err)
		cfg.DemoStagger = d
	}

	if v, set := lookup(lookupEnv, "DEMO_SCENARIO"); set {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("DEMO_SCENARIO", err))
		}
		cfg.DemoScenario = b
	}

	if v, set := lookup(lookupEnv, "LOG_LEVEL"); set {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
		}
	}

	switch cfg.Transport {
	case TransportMemory:
	case TransportRedis:
		if cfg.RedisURL == "" {
			errList = append(errList, errs.NewValueIsRequiredError("REDIS_URL"))
		}
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"TRANSPORT", fmt.Errorf("%q is neither %q nor %q", cfg.Transport, TransportMemory, TransportRedis)))
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UsesDatabase reports whether a PostgreSQL archive is configured.
func (c Config) UsesDatabase() bool {
	return c.DBHost != ""
}

// Postgres returns the archive connection parameters.
func (c Config) Postgres() postgres.ConnectionConfig {
	return postgres.ConnectionConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// lookup treats a blank value like an unset one.
func lookup(lookupEnv func(string) (string, bool), key string) (string, bool) {
	v, _ := lookupEnv(key)
	v = strings.TrimSpace(v)
	return v, v != ""
}

func positiveDuration(key, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsOutOfRangeError(key, d, time.Nanosecond, time.Duration(1<<63-1))
	}
	return d, nil
}
