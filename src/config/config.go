package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service   ServiceConfig           `mapstructure:"service"`
	Input     InputConfig             `mapstructure:"input"`
	Issuers   map[string]IssuerConfig `mapstructure:"issuers"`
	Currency  CurrencyConfig          `mapstructure:"currency"`
	Databases DatabasesConfig         `mapstructure:"databases"`
	Scheduler SchedulerConfig         `mapstructure:"scheduler"`
	Secrets   SecretsConfig           `mapstructure:"secrets"`
}

type ServiceType string

const (
	CLI ServiceType = "CLI"
	API ServiceType = "API"
)

type ServiceConfig struct {
	Type      ServiceType `mapstructure:"type"`
	Port      string      `mapstructure:"port"`
	LogLevel  string      `mapstructure:"logLevel"`
	LogToFile bool        `mapstructure:"logToFile"`
	LogFile   string      `mapstructure:"logFile"`
}

type InputConfig struct {
	DataDir    string `mapstructure:"dataDir"`
	OutputFile string `mapstructure:"outputFile"`
	XLSXFile   string `mapstructure:"xlsxFile"`
}

// IssuerConfig describes where an issuer's statement lives and how to open it.
// Passwords are never stored here: PasswordEnv names an environment variable
// (usually set through .env) and SecretID an AWS Secrets Manager entry.
type IssuerConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	FilePattern       string `mapstructure:"filePattern"`
	AuxiliaryPattern  string `mapstructure:"auxiliaryPattern"`
	PasswordEnv       string `mapstructure:"passwordEnv"`
	SecretID          string `mapstructure:"secretId"`
	DefaultReportDate string `mapstructure:"defaultReportDate"`
}

type CurrencyConfig struct {
	BaseURL        string             `mapstructure:"baseUrl"`
	CacheFile      string             `mapstructure:"cacheFile"`
	CacheHours     int                `mapstructure:"cacheHours"`
	TimeoutSeconds int                `mapstructure:"timeoutSeconds"`
	FallbackRates  map[string]float64 `mapstructure:"fallbackRates"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

// Enabled reports whether a database was configured at all.
func (c SQLConfig) Enabled() bool {
	return c.ConnectionString != "" || c.Host != ""
}

// DSN builds a libpq style connection string.
func (c SQLConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.Username, c.Password, c.Database, c.Port)
}

type SchedulerConfig struct {
	Cron string `mapstructure:"cron"`
}

type SecretsConfig struct {
	AWSRegion string `mapstructure:"awsRegion"`
}

// LoadConfig reads appsettings.yaml (or appsettings.<env>.yaml when env is
// given) from path. A .env file next to the settings directory is loaded
// first so issuer passwords can be resolved from the environment.
func LoadConfig(path string, env ...string) (*Config, error) {
	var cfg Config

	_ = godotenv.Load(filepath.Join(path, "..", ".env"))

	v := viper.New()
	v.AddConfigPath(path)
	name := "appsettings"
	if len(env) > 0 && env[0] != "" {
		name = fmt.Sprintf("appsettings.%s", env[0])
	}
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(CLI))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.logLevel", "info")
	v.SetDefault("input.dataDir", "data/input")
	v.SetDefault("input.outputFile", "data/output/extracted_portfolio_data.json")
	v.SetDefault("currency.baseUrl", "https://api.exchangerate-api.com/v4/latest")
	v.SetDefault("currency.cacheFile", "exchange_rates_cache.json")
	v.SetDefault("currency.cacheHours", 24)
	v.SetDefault("currency.timeoutSeconds", 10)
}

// Issuer returns the issuer section for a manager name such as "Yes Bank".
func (c *Config) Issuer(name string) (IssuerConfig, bool) {
	issuer, ok := c.Issuers[IssuerKey(name)]
	return issuer, ok
}

// IssuerKey maps a manager name to its settings key ("IIFL 360 One" -> "iifl360one").
// Viper lowercases map keys, so lookups go through this.
func IssuerKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}
