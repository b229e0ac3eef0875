package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host        string
	Port        int
	CORSAllowed string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type ReportConfig struct {
	DefaultRangeDays int
	MaxRangeDays     int
	DefaultPageSize  int
	MaxPageSize      int
	ExportMaxRows    int
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Report      ReportConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host:        v.GetString("HTTP_HOST"),
			Port:        v.GetInt("HTTP_PORT"),
			CORSAllowed: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Report: ReportConfig{
			DefaultRangeDays: v.GetInt("REPORT_DEFAULT_RANGE_DAYS"),
			MaxRangeDays:     v.GetInt("REPORT_MAX_RANGE_DAYS"),
			DefaultPageSize:  v.GetInt("REPORT_DEFAULT_PAGE_SIZE"),
			MaxPageSize:      v.GetInt("REPORT_MAX_PAGE_SIZE"),
			ExportMaxRows:    v.GetInt("EXPORT_MAX_ROWS"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.HTTP.CORSAllowed == "" {
		cfg.HTTP.CORSAllowed = "*"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Report.DefaultRangeDays <= 0 {
		cfg.Report.DefaultRangeDays = 30
	}
	if cfg.Report.MaxRangeDays <= 0 {
		cfg.Report.MaxRangeDays = 366
	}
	if cfg.Report.DefaultPageSize <= 0 {
		cfg.Report.DefaultPageSize = 50
	}
	if cfg.Report.MaxPageSize <= 0 {
		cfg.Report.MaxPageSize = 500
	}
	if cfg.Report.ExportMaxRows <= 0 {
		cfg.Report.ExportMaxRows = 50000
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Report.DefaultRangeDays > cfg.Report.MaxRangeDays {
		return fmt.Errorf("REPORT_DEFAULT_RANGE_DAYS must not exceed REPORT_MAX_RANGE_DAYS")
	}
	if cfg.Report.DefaultPageSize > cfg.Report.MaxPageSize {
		return fmt.Errorf("REPORT_DEFAULT_PAGE_SIZE must not exceed REPORT_MAX_PAGE_SIZE")
	}
	return nil
}
