package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, carrier credentials, etc.)
// - default: Values common across all environments (timeouts, cache sizing, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Log     LogConfig
	Carrier CarrierConfig
	Cache   CacheConfig
	Timer   TimerConfig
	Events  EventsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type CarrierConfig struct {
	BaseURL   string `envconfig:"CARRIER_BASE_URL" required:"true"`
	Login     string `envconfig:"CARRIER_LOGIN" required:"true"`
	Password  string `envconfig:"CARRIER_PASSWORD" required:"true"`
	Lang      string `envconfig:"CARRIER_LANG" default:"en"`
	Currency  string `envconfig:"CARRIER_CURRENCY" default:"EUR"`
	UserAgent string `envconfig:"CARRIER_USER_AGENT" default:"coach-booking-engine/1.0"`

	Timeout         time.Duration `envconfig:"CARRIER_TIMEOUT" default:"15s"`
	MaxRetries      int           `envconfig:"CARRIER_MAX_RETRIES" default:"2"`
	Backoff         time.Duration `envconfig:"CARRIER_BACKOFF" default:"500ms"`
	BackoffStrategy string        `envconfig:"CARRIER_BACKOFF_STRATEGY" default:"linear"`

	BurstLimit  int `envconfig:"CARRIER_BURST_LIMIT" default:"5"`
	MinuteLimit int `envconfig:"CARRIER_MINUTE_LIMIT" default:"60"`
	HourLimit   int `envconfig:"CARRIER_HOUR_LIMIT" default:"1000"`
}

type CacheConfig struct {
	BaseTTL          time.Duration `envconfig:"PLAN_CACHE_BASE_TTL" default:"30m"`
	MaxTTL           time.Duration `envconfig:"PLAN_CACHE_MAX_TTL" default:"2h"`
	SeatScale        int           `envconfig:"PLAN_CACHE_SEAT_SCALE" default:"50"`
	MaxEntries       int           `envconfig:"PLAN_CACHE_MAX_ENTRIES" default:"200"`
	SizeLimitKB      int           `envconfig:"PLAN_CACHE_SIZE_LIMIT_KB" default:"5120"`
	SweepInterval    time.Duration `envconfig:"PLAN_CACHE_SWEEP_INTERVAL" default:"5m"`
	CoalesceInFlight bool          `envconfig:"PLAN_CACHE_COALESCE_IN_FLIGHT" default:"false"`
}

type TimerConfig struct {
	TickInterval time.Duration `envconfig:"RESERVATION_TICK_INTERVAL" default:"1s"`
}

type EventsConfig struct {
	LogCapacity  int      `envconfig:"EVENTS_LOG_CAPACITY" default:"256"`
	KafkaBrokers []string `envconfig:"EVENTS_KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"EVENTS_KAFKA_TOPIC" default:"reservation-events"`
	KafkaQueue   int      `envconfig:"EVENTS_KAFKA_QUEUE" default:"128"`
}

func (c *CarrierConfig) Endpoint(path string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.BaseURL, "/"), path)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Carrier: CarrierConfig{
			BaseURL:         "http://127.0.0.1:0",
			Login:           "test",
			Password:        "test",
			Lang:            "en",
			Currency:        "EUR",
			UserAgent:       "coach-booking-engine/test",
			Timeout:         2 * time.Second,
			MaxRetries:      2,
			Backoff:         time.Millisecond,
			BackoffStrategy: "fixed",
			BurstLimit:      100,
			MinuteLimit:     1000,
			HourLimit:       10000,
		},
		Cache: CacheConfig{
			BaseTTL:       30 * time.Minute,
			MaxTTL:        2 * time.Hour,
			SeatScale:     50,
			MaxEntries:    50,
			SizeLimitKB:   1024,
			SweepInterval: 5 * time.Minute,
		},
		Timer: TimerConfig{
			TickInterval: time.Second,
		},
		Events: EventsConfig{
			LogCapacity: 64,
			KafkaTopic:  "reservation-events",
			KafkaQueue:  16,
		},
	}
}
