package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Assistant AssistantConfig
	Sheets    SheetsConfig
	Pricing   PricingConfig
	Shop      ShopConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	Timezone string
}

// StorageConfig selects the backends. Driver is "postgres" or "memory";
// DraftDriver is "redis" or "memory".
type StorageConfig struct {
	Driver      string
	DraftDriver string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type RedisConfig struct {
	URL       string
	KeyPrefix string
	DraftTTL  time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
	// Assistant calls hit a paid API and get their own, tighter budget.
	AssistantRequests int
	AssistantDuration int
}

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	CharWidth int
	Timeout   time.Duration
}

type AssistantConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxHistory int
}

type SheetsConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

type PricingConfig struct {
	AreaKeywords []string
}

type ShopConfig struct {
	Name    string
	Address string
	Phone   string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "orderdesk")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_TIMEZONE", "Asia/Ho_Chi_Minh")
	viper.SetDefault("STORAGE_DRIVER", "memory")
	viper.SetDefault("DRAFT_DRIVER", "memory")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "orderdesk")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Ho_Chi_Minh")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("REDIS_KEY_PREFIX", "orderdesk:")
	viper.SetDefault("DRAFT_TTL_HOURS", 720)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("ASSISTANT_RATE_LIMIT_REQUESTS", 10)
	viper.SetDefault("ASSISTANT_RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 32)
	viper.SetDefault("PRINTER_TIMEOUT_SECONDS", 5)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("GEMINI_TIMEOUT_SECONDS", 30)
	viper.SetDefault("ASSISTANT_MAX_HISTORY", 20)
	viper.SetDefault("SHEETS_WEBHOOK_URL", "")
	viper.SetDefault("SHEETS_TIMEOUT_SECONDS", 15)
	viper.SetDefault("PRICING_AREA_KEYWORDS", "giấy,paper")
	viper.SetDefault("SHOP_NAME", "BACDEPZAI")
	viper.SetDefault("SHOP_ADDRESS", "")
	viper.SetDefault("SHOP_PHONE", "")

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Storage: StorageConfig{
			Driver:      viper.GetString("STORAGE_DRIVER"),
			DraftDriver: viper.GetString("DRAFT_DRIVER"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			URL:       viper.GetString("REDIS_URL"),
			KeyPrefix: viper.GetString("REDIS_KEY_PREFIX"),
			DraftTTL:  time.Duration(viper.GetInt("DRAFT_TTL_HOURS")) * time.Hour,
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests:          viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration:          viper.GetInt("RATE_LIMIT_DURATION"),
			AssistantRequests: viper.GetInt("ASSISTANT_RATE_LIMIT_REQUESTS"),
			AssistantDuration: viper.GetInt("ASSISTANT_RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
			Timeout:   time.Duration(viper.GetInt("PRINTER_TIMEOUT_SECONDS")) * time.Second,
		},
		Assistant: AssistantConfig{
			APIKey:     viper.GetString("GEMINI_API_KEY"),
			Model:      viper.GetString("GEMINI_MODEL"),
			BaseURL:    viper.GetString("GEMINI_BASE_URL"),
			Timeout:    time.Duration(viper.GetInt("GEMINI_TIMEOUT_SECONDS")) * time.Second,
			MaxHistory: viper.GetInt("ASSISTANT_MAX_HISTORY"),
		},
		Sheets: SheetsConfig{
			WebhookURL: viper.GetString("SHEETS_WEBHOOK_URL"),
			Timeout:    time.Duration(viper.GetInt("SHEETS_TIMEOUT_SECONDS")) * time.Second,
		},
		Pricing: PricingConfig{
			AreaKeywords: splitList(viper.GetStringSlice("PRICING_AREA_KEYWORDS")),
		},
		Shop: ShopConfig{
			Name:    viper.GetString("SHOP_NAME"),
			Address: viper.GetString("SHOP_ADDRESS"),
			Phone:   viper.GetString("SHOP_PHONE"),
		},
	}
}

// Location resolves the app timezone, falling back to local time.
func (c *AppConfig) Location() *time.Location {
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
