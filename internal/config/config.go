package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"CONN_MAX_IDLE_TIME" env-default:"1m"`
	RunMigrations   bool          `yaml:"RUN_MIGRATIONS" env:"RUN_MIGRATIONS" env-default:"true"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type FlashSale struct {
	Windows       []string      `yaml:"WINDOWS" env:"FLASH_SALE_WINDOWS" env-default:"12:00-14:00,20:00-22:00"`
	Timezone      string        `yaml:"TIMEZONE" env:"FLASH_SALE_TIMEZONE" env-default:"Asia/Ho_Chi_Minh"`
	RefreshPeriod time.Duration `yaml:"REFRESH_PERIOD" env:"FLASH_SALE_REFRESH_PERIOD" env-default:"60s"`
}

type Session struct {
	IdleTTL     time.Duration `yaml:"IDLE_TTL" env:"SESSION_IDLE_TTL" env-default:"30m"`
	SweepPeriod time.Duration `yaml:"SWEEP_PERIOD" env:"SESSION_SWEEP_PERIOD" env-default:"1m"`
	StoreTTL    time.Duration `yaml:"STORE_TTL" env:"SESSION_STORE_TTL" env-default:"720h"`
}

type Coupon struct {
	LookupTimeout time.Duration `yaml:"LOOKUP_TIMEOUT" env:"COUPON_LOOKUP_TIMEOUT" env-default:"3s"`
	MaxAttempts   int64         `yaml:"MAX_ATTEMPTS" env:"COUPON_MAX_ATTEMPTS" env-default:"10"`
	AttemptWindow time.Duration `yaml:"ATTEMPT_WINDOW" env:"COUPON_ATTEMPT_WINDOW" env-default:"1m"`
}

type Breaker struct {
	MaxRequests      uint32        `yaml:"MAX_REQUESTS" env:"BREAKER_MAX_REQUESTS" env-default:"1"`
	Interval         time.Duration `yaml:"INTERVAL" env:"BREAKER_INTERVAL" env-default:"60s"`
	Timeout          time.Duration `yaml:"TIMEOUT" env:"BREAKER_TIMEOUT" env-default:"30s"`
	FailureThreshold uint32        `yaml:"FAILURE_THRESHOLD" env:"BREAKER_FAILURE_THRESHOLD" env-default:"5"`
}

type Stripe struct {
	APIKey        string `yaml:"STRIPE_API_KEY" env:"STRIPE_API_KEY" env-default:""`
	WebhookSecret string `yaml:"STRIPE_WEBHOOK_SECRET" env:"STRIPE_WEBHOOK_SECRET" env-default:""`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@example.com"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Storefront"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type OTel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"apparel-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT" env-default:""`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	Currency     string `yaml:"currency" env:"CURRENCY" env-default:"VND"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	Cache        CacheConfig  `yaml:"cache"`
	FlashSale    FlashSale    `yaml:"flash_sale"`
	Session      Session      `yaml:"session"`
	Coupon       Coupon       `yaml:"coupon"`
	Breaker      Breaker      `yaml:"breaker"`
	Stripe       Stripe       `yaml:"stripe"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Security     Security     `yaml:"security"`
	OTel         OTel         `yaml:"otel"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {

			log.Fatal("Config path is not set")

		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", configPath, err)
	}

	if _, err := cfg.FlashSale.ParsedWindows(); err != nil {
		return nil, err
	}

	if _, err := cfg.FlashSale.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}

func (f *FlashSale) ParsedWindows() ([]models.FlashSaleWindow, error) {
	windows := make([]models.FlashSaleWindow, 0, len(f.Windows))

	for _, raw := range f.Windows {
		w, err := models.ParseFlashSaleWindow(raw)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	return windows, nil
}

func (f *FlashSale) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return nil, fmt.Errorf("flash sale timezone %q: %w", f.Timezone, err)
	}

	return loc, nil
}
