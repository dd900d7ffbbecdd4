package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/angas/pv-revenue-go/logging"
)

type AppConfigServer struct {
	Address string
	Port    int16
	// If not assigned, the server serves embedded files. If assigned, the
	// directory must contain a "static" and "templates" directory; templates
	// are hot-reloaded from it. Useful for development.
	WwwDir *string `mapstructure:"www_dir"`
	// Secret for the session cookie keeping the selected project.
	SessionSecret string `mapstructure:"session_secret"`
}

func (s AppConfigServer) GetPort() int16 {
	if s.Port == 0 {
		return 8080
	}
	return s.Port
}

type AppConfigData struct {
	// Directory holding Spotmarktpreis<year>.csv files and the bundled
	// example production datasets.
	Dir string
	// Historical years to calculate. The forecast year is handled separately.
	Years []int
	// The running year, completed synthetically from the prior year.
	ForecastYear int `mapstructure:"forecast_year"`
	// Anzulegender Wert in ct/kWh.
	ReferenceValue *float64 `mapstructure:"reference_value"`
}

func (d AppConfigData) GetYears() []int {
	if len(d.Years) == 0 {
		return []int{2021, 2022, 2023, 2024}
	}
	return d.Years
}

func (d AppConfigData) GetForecastYear() int {
	if d.ForecastYear == 0 {
		return 2025
	}
	return d.ForecastYear
}

func (d AppConfigData) GetReferenceValue() float64 {
	if d.ReferenceValue == nil {
		return 6.72
	}
	return *d.ReferenceValue
}

type AppConfigDatabase struct {
	Path string
}

func (d AppConfigDatabase) GetPath() string {
	if d.Path == "" {
		return "pv-revenue.db"
	}
	return d.Path
}

type AppConfigLogging struct {
	// Min log level for the database log store: "DEBUG", "INFO", "WARN",
	// "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries kept in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for the console: "DEBUG", "INFO", "WARN", "ERROR",
	// default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return logging.LogAttrFormatJSON
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Server   AppConfigServer
	Data     AppConfigData
	Database AppConfigDatabase
	Logging  AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
