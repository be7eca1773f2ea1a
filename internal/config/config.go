package config

import (
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDatabasePath = "database.path"
	KeyReportPath   = "report.path"
	KeyReportOpen   = "report.open"
	KeyReportWidth  = "report.width"
	KeyReportHeight = "report.height"
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
)

// Default values.
const (
	DefaultDatabasePath = "expenses.db"
	DefaultReportPath   = "spending_by_category.png"
	DefaultReportWidth  = 1000
	DefaultReportHeight = 600
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "console"
)

// Config is the resolved application configuration.
type Config struct {
	DatabasePath string
	ReportPath   string
	LogLevel     string
	LogFormat    string
	ReportWidth  int
	ReportHeight int
	ReportOpen   bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyReportPath, DefaultReportPath)
	v.SetDefault(KeyReportOpen, true)
	v.SetDefault(KeyReportWidth, DefaultReportWidth)
	v.SetDefault(KeyReportHeight, DefaultReportHeight)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
}

// Load reads the configuration from v, expanding file paths. Empty paths
// fall back to the defaults.
func Load(v *viper.Viper) Config {
	cfg := Config{
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		ReportPath:   ExpandPath(v.GetString(KeyReportPath)),
		ReportOpen:   v.GetBool(KeyReportOpen),
		ReportWidth:  v.GetInt(KeyReportWidth),
		ReportHeight: v.GetInt(KeyReportHeight),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultDatabasePath
	}
	if cfg.ReportPath == "" {
		cfg.ReportPath = DefaultReportPath
	}

	return cfg
}
