package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Log       LogConfig
	CORS      CORSConfig
	Scheduler SchedulerConfig
	Rooms     RoomsConfig
	Batch     BatchConfig
	RunCache  RunCacheConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SchedulerConfig carries the static allocation policy. Breaks are declared
// as "HH:MM-HH:MM" pairs, comma separated.
type SchedulerConfig struct {
	GridStepMinutes   int
	MinutesPerCredit  int
	Breaks            []string
	RegularDailyCap   int
	IntensiveDailyCap int
	OnlineCutoff      string
	RunTTL            time.Duration
}

// RoomsConfig overrides the built-in floor preference policy, as
// "PROGRAM:floor;floor" entries, comma separated. Empty keeps the defaults.
type RoomsConfig struct {
	FloorPreferences []string
}

// BatchConfig points the batch scheduler binary at its input and output.
type BatchConfig struct {
	RosterPath string
	OutputPath string
}

// RunCacheConfig enables the redis-backed run store for multi-instance
// deployments; disabled means the in-process TTL store.
type RunCacheConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Scheduler = SchedulerConfig{
		GridStepMinutes:   v.GetInt("SCHEDULE_GRID_STEP_MINUTES"),
		MinutesPerCredit:  v.GetInt("SCHEDULE_MINUTES_PER_CREDIT"),
		Breaks:            splitAndTrim(v.GetString("SCHEDULE_BREAKS")),
		RegularDailyCap:   v.GetInt("SCHEDULE_REGULAR_DAILY_CAP"),
		IntensiveDailyCap: v.GetInt("SCHEDULE_INTENSIVE_DAILY_CAP"),
		OnlineCutoff:      v.GetString("SCHEDULE_ONLINE_CUTOFF"),
		RunTTL:            parseDuration(v.GetString("SCHEDULE_RUN_TTL"), 30*time.Minute),
	}

	cfg.Rooms = RoomsConfig{
		FloorPreferences: splitAndTrim(v.GetString("ROOM_FLOOR_PREFERENCES")),
	}

	cfg.Batch = BatchConfig{
		RosterPath: v.GetString("ROSTER_PATH"),
		OutputPath: v.GetString("OUTPUT_PATH"),
	}

	cfg.RunCache = RunCacheConfig{
		Enabled:  v.GetBool("ENABLE_RUN_CACHE"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULE_GRID_STEP_MINUTES", 10)
	v.SetDefault("SCHEDULE_MINUTES_PER_CREDIT", 50)
	v.SetDefault("SCHEDULE_BREAKS", "12:00-13:00,18:00-18:30")
	v.SetDefault("SCHEDULE_REGULAR_DAILY_CAP", 3)
	v.SetDefault("SCHEDULE_INTENSIVE_DAILY_CAP", 10)
	v.SetDefault("SCHEDULE_ONLINE_CUTOFF", "21:00")
	v.SetDefault("SCHEDULE_RUN_TTL", "30m")

	v.SetDefault("ROOM_FLOOR_PREFERENCES", "")

	v.SetDefault("ROSTER_PATH", "Data_pengajaran.xlsx")
	v.SetDefault("OUTPUT_PATH", "jadwal_output.xlsx")

	v.SetDefault("ENABLE_RUN_CACHE", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
