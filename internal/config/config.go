package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Shop      ShopConfig
	Till      TillConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	Timezone string
}

type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// ShopConfig is the letterhead printed on receipts
type ShopConfig struct {
	Name    string
	Tagline string
	Address string
	Phone   string
	Email   string
}

type TillConfig struct {
	PackingUnitRate    int64
	BillPrefix         string
	ExportHistoryLimit int
	MenuFile           string
	ShutdownTimeout    time.Duration
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
	Timeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type MetricsConfig struct {
	Enabled bool
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "chaatgpt-till")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", false)
	v.SetDefault("APP_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "till.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "till")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("SHOP_NAME", "ChaatGPT")
	v.SetDefault("SHOP_TAGLINE", "Guaranteed Perfect Taste")
	v.SetDefault("SHOP_ADDRESS", "Near Central Bus Stand, Trichy")
	v.SetDefault("SHOP_PHONE", "8903145004")
	v.SetDefault("SHOP_EMAIL", "chaatgpt314@gmail.com")
	v.SetDefault("PACKING_UNIT_RATE", 5)
	v.SetDefault("BILL_PREFIX", "BG")
	v.SetDefault("EXPORT_HISTORY_LIMIT", 50)
	v.SetDefault("MENU_FILE", "configs/menu.toml")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10)
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_WIDTH", 32)
	v.SetDefault("PRINTER_TIMEOUT", 5)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("METRICS_ENABLED", true)
}

// Load reads .env and the environment into a Config
func Load() *Config {
	v := viper.GetViper()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	SetDefaults(v)
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			Debug:    v.GetBool("APP_DEBUG"),
			Timezone: v.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Driver:   v.GetString("DB_DRIVER"),
			Path:     v.GetString("DB_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
		},
		Shop: ShopConfig{
			Name:    v.GetString("SHOP_NAME"),
			Tagline: v.GetString("SHOP_TAGLINE"),
			Address: v.GetString("SHOP_ADDRESS"),
			Phone:   v.GetString("SHOP_PHONE"),
			Email:   v.GetString("SHOP_EMAIL"),
		},
		Till: TillConfig{
			PackingUnitRate:    v.GetInt64("PACKING_UNIT_RATE"),
			BillPrefix:         v.GetString("BILL_PREFIX"),
			ExportHistoryLimit: v.GetInt("EXPORT_HISTORY_LIMIT"),
			MenuFile:           v.GetString("MENU_FILE"),
			ShutdownTimeout:    time.Duration(v.GetInt("SHUTDOWN_TIMEOUT")) * time.Second,
		},
		Printer: PrinterConfig{
			Type:    v.GetString("PRINTER_TYPE"),
			USBPath: v.GetString("PRINTER_USB_PATH"),
			Address: v.GetString("PRINTER_ADDRESS"),
			Width:   v.GetInt("PRINTER_WIDTH"),
			Timeout: time.Duration(v.GetInt("PRINTER_TIMEOUT")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}

// Location resolves the till's local time zone, falling back to the host zone
func (c *AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
