package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const DateLayout = "2006-01-02"

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type DataConfig struct {
	DatasetPath    string
	ReportPath     string
	ReportFilename string
	AssetsDir      string
	LogoFile       string
}

// BakingConfig holds the business constants of the baking report.
type BakingConfig struct {
	BatchSize    int
	Target       int
	MinStartDate time.Time
	ShipmentCode string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Data        DataConfig
	Baking      BakingConfig
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

	v.SetDefault("DATASET_PATH", "./Dataset/cleaned/final_data.xlsx")
	v.SetDefault("REPORT_PATH", "./Dataset/raw/12 Desember 2024.xlsx")
	v.SetDefault("REPORT_FILENAME", "baking_report.xlsx")
	v.SetDefault("ASSETS_DIR", "./assets")
	v.SetDefault("LOGO_FILE", "logo.jpg")
	v.SetDefault("BATCH_SIZE", 20)
	v.SetDefault("TARGET_BAKING", 25000)
	v.SetDefault("MIN_START_DATE", "2024-12-12")
	v.SetDefault("SHIPMENT_CODE", "LDCWT")

	_ = v.ReadInConfig()

	minStart, err := time.Parse(DateLayout, v.GetString("MIN_START_DATE"))
	if err != nil {
		return nil, fmt.Errorf("MIN_START_DATE must be YYYY-MM-DD: %w", err)
	}

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Data: DataConfig{
			DatasetPath:    v.GetString("DATASET_PATH"),
			ReportPath:     v.GetString("REPORT_PATH"),
			ReportFilename: v.GetString("REPORT_FILENAME"),
			AssetsDir:      v.GetString("ASSETS_DIR"),
			LogoFile:       v.GetString("LOGO_FILE"),
		},
		Baking: BakingConfig{
			BatchSize:    v.GetInt("BATCH_SIZE"),
			Target:       v.GetInt("TARGET_BAKING"),
			MinStartDate: minStart,
			ShipmentCode: v.GetString("SHIPMENT_CODE"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UseDatabase reports whether scan events are read from postgres instead of the workbook.
func (c *Config) UseDatabase() bool {
	return c.DB.DSN != ""
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" && cfg.Data.DatasetPath == "" {
		return fmt.Errorf("DATASET_PATH or DB_DSN is required")
	}
	if cfg.Data.ReportPath == "" {
		return fmt.Errorf("REPORT_PATH is required")
	}
	if cfg.Data.ReportFilename == "" {
		return fmt.Errorf("REPORT_FILENAME is required")
	}
	if cfg.Baking.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive")
	}
	if cfg.Baking.Target < 0 {
		return fmt.Errorf("TARGET_BAKING must not be negative")
	}
	return nil
}
