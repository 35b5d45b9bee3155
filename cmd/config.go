package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"freight/internal/core/domain/model/transporter"
	"freight/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort               string  `mapstructure:"HTTP_PORT"`
	DBHost                 string  `mapstructure:"DB_HOST"`
	DBPort                 string  `mapstructure:"DB_PORT"`
	DBUser                 string  `mapstructure:"DB_USER"`
	DBPassword             string  `mapstructure:"DB_PASSWORD"`
	DBName                 string  `mapstructure:"DB_NAME"`
	DBSslMode              string  `mapstructure:"DB_SSLMODE"`
	LogLevel               string  `mapstructure:"LOG_LEVEL"`
	RequestExpirySchedule  string  `mapstructure:"REQUEST_EXPIRY_SCHEDULE"`
	DefaultServiceRadiusKm float64 `mapstructure:"DEFAULT_SERVICE_RADIUS_KM"`
}

func defaults() map[string]any {
	return map[string]any{
		"HTTP_PORT":                 "8080",
		"DB_HOST":                   "localhost",
		"DB_PORT":                   "5432",
		"DB_USER":                   "postgres",
		"DB_PASSWORD":               "",
		"DB_NAME":                   "freight",
		"DB_SSLMODE":                "disable",
		"LOG_LEVEL":                 "info",
		"REQUEST_EXPIRY_SCHEDULE":   jobs.DefaultRequestExpirySchedule,
		"DEFAULT_SERVICE_RADIUS_KM": transporter.DefaultServiceRadiusKm,
	}
}

// LoadConfig reads envFile into the process environment when it exists, then resolves
// every setting from the environment, falling back to defaults. Variables already set in
// the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	if c.DBHost == "" || c.DBName == "" {
		errs = append(errs, errors.New("DB_HOST and DB_NAME are required"))
	}
	if c.DefaultServiceRadiusKm <= 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_SERVICE_RADIUS_KM must be positive, got %v", c.DefaultServiceRadiusKm))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DSN renders the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
