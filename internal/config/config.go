package config

import (
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Store       StoreConfig
	Order       OrderConfig
	Storage     StorageConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Printer     PrinterConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Idempotency IdempotencyConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// StoreConfig describes the shop printed on receipts and the zone used to
// decide which calendar day a sale belongs to.
type StoreConfig struct {
	Name     string
	Address  string
	Phone    string
	Timezone string
}

type OrderConfig struct {
	StartOffset int64
}

// StorageConfig selects the key-value backend: memory, sqlite, mysql, postgres or redis.
type StorageConfig struct {
	Driver     string
	SQLitePath string
	MySQLDSN   string
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
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type PrinterConfig struct {
	Type     string
	USBPath  string
	Address  string
	SpoolDir string
	Width    int
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

type IdempotencyConfig struct {
	CacheSize int
	TTL       time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg(".env file not found, using environment variables")
	}

	setDefaults()

	return fromViper()
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "comanda-pos")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("STORE_NAME", "Comanda POS")
	viper.SetDefault("STORE_ADDRESS", "")
	viper.SetDefault("STORE_PHONE", "")
	viper.SetDefault("STORE_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("ORDER_START_OFFSET", 1000)
	viper.SetDefault("STORAGE_DRIVER", "sqlite")
	viper.SetDefault("SQLITE_PATH", "./data/comanda.db")
	viper.SetDefault("MYSQL_DSN", "root:root@tcp(localhost:3306)/comanda?parseTime=true")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "comanda")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_KEY_PREFIX", "comanda:")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_SPOOL_DIR", "./data/spool")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("IDEMPOTENCY_CACHE_SIZE", 512)
	viper.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
}

func fromViper() *Config {
	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Store: StoreConfig{
			Name:     viper.GetString("STORE_NAME"),
			Address:  viper.GetString("STORE_ADDRESS"),
			Phone:    viper.GetString("STORE_PHONE"),
			Timezone: viper.GetString("STORE_TIMEZONE"),
		},
		Order: OrderConfig{
			StartOffset: viper.GetInt64("ORDER_START_OFFSET"),
		},
		Storage: StorageConfig{
			Driver:     viper.GetString("STORAGE_DRIVER"),
			SQLitePath: viper.GetString("SQLITE_PATH"),
			MySQLDSN:   viper.GetString("MYSQL_DSN"),
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
			Addr:      viper.GetString("REDIS_ADDR"),
			Password:  viper.GetString("REDIS_PASSWORD"),
			DB:        viper.GetInt("REDIS_DB"),
			KeyPrefix: viper.GetString("REDIS_KEY_PREFIX"),
		},
		Printer: PrinterConfig{
			Type:     viper.GetString("PRINTER_TYPE"),
			USBPath:  viper.GetString("PRINTER_USB_PATH"),
			Address:  viper.GetString("PRINTER_ADDRESS"),
			SpoolDir: viper.GetString("PRINTER_SPOOL_DIR"),
			Width:    viper.GetInt("PRINTER_WIDTH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Idempotency: IdempotencyConfig{
			CacheSize: viper.GetInt("IDEMPOTENCY_CACHE_SIZE"),
			TTL:       time.Duration(viper.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
		},
	}
}

// Location resolves the store time zone, falling back to UTC when the name is unknown
func (c *StoreConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", c.Timezone).Msg("unknown store timezone, using UTC")
		return time.UTC
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
