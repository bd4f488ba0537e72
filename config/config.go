package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort     string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost     string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment    string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName    string `env:"SERVICE_NAME" envDefault:"safecall"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"v1"`

	// Redis 配置，RedisAddr 为空时使用进程内的 pending 锁
	RedisAddr     string `env:"REDIS_ADDR" envDefault:""`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"safecall"`

	// RabbitMQ 配置，RabbitMQAddr 为空时通知只写日志
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:""`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`
	DispatchExchange string `env:"DISPATCH_EXCHANGE" envDefault:"safecall.dispatch"`
	DispatchQueue    string `env:"DISPATCH_QUEUE" envDefault:"safecall.dispatch.resolved"`

	// 模拟呼叫配置
	DispatchDelayMs int `env:"DISPATCH_DELAY_MS" envDefault:"500"`
	SignUpDelayMs   int `env:"SIGNUP_DELAY_MS" envDefault:"1000"`

	// 定位配置，LocationDenied 为 true 时模拟用户拒绝授权
	LocationLatitude  float64 `env:"LOCATION_LATITUDE" envDefault:"40.7128"`
	LocationLongitude float64 `env:"LOCATION_LONGITUDE" envDefault:"-74.0060"`
	LocationDenied    bool    `env:"LOCATION_DENIED" envDefault:"false"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
	TracingSampler float64 `env:"TRACING_SAMPLER" envDefault:"0.1"`

	// 速率限制配置, 只作用于呼叫接口，需要 Redis
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitWindow  int  `env:"RATE_LIMIT_WINDOW" envDefault:"60"`
	RateLimitMax     int  `env:"RATE_LIMIT_MAX" envDefault:"30"`
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	if err := Load(); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}
}

// Load 重新解析环境变量到 Cfg
func Load() error {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return err
	}
	Cfg = cfg

	validateConfig()
	return nil
}

func validateConfig() {
	if Cfg.DispatchDelayMs <= 0 {
		log.Printf("WARN: DISPATCH_DELAY_MS must be positive, falling back to 500")
		Cfg.DispatchDelayMs = 500
	}

	if Cfg.SignUpDelayMs < 0 {
		log.Printf("WARN: SIGNUP_DELAY_MS is negative, falling back to 1000")
		Cfg.SignUpDelayMs = 1000
	}

	if Cfg.RedisAddr == "" {
		log.Printf("WARN: REDIS_ADDR is not set, dispatch guard is local to this process")
	}

	if Cfg.RabbitMQAddr == "" {
		log.Printf("WARN: RABBITMQ_ADDR is not set, dispatch notifications are only logged")
	}
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) RabbitMQEnabled() bool {
	return c.RabbitMQAddr != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
