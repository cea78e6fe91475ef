// Package config предоставляет структуры и функцию загрузки конфигурации.
//
// Таблицы лимитов, цен и окон анализа входят в конфигурацию и передаются
// в ядро явно: ядро не читает и не пишет глобальное изменяемое состояние.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/allocation"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/revenue"
)

// Config — общая структура настроек приложения.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQConnection      `yaml:"rabbitmq_connection"`
	SMTPConnection          `yaml:"smtp_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Allocation              `yaml:"allocation"`
}

// HTTPServer — настройки HTTP-сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection — настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitMQConnection — настройки подключения к брокеру уведомлений.
type RabbitMQConnection struct {
	URL          string        `yaml:"url"`
	ConnectRetry int           `yaml:"connect_retry" env-default:"5"`
	ConnectDelay time.Duration `yaml:"connect_delay" env-default:"3s"`
	ScanInterval time.Duration `yaml:"scan_interval" env-default:"12h"`
}

// SMTPConnection — настройки SMTP для отправителя уведомлений.
type SMTPConnection struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     string `yaml:"smtp_port" env-default:"587"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPass     string `yaml:"smtp_pass"`
	SupportInbox string `yaml:"support_inbox"`
}

// JWTToken — настройки подписи административных токенов.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Allocation — таблицы и окна ядра распределения и проекции выручки.
type Allocation struct {
	CapacityLimits allocation.Limits `yaml:"capacity_limits"`
	Prices         revenue.Prices    `yaml:"prices"`
	AnalysisDays   int               `yaml:"analysis_days" env-default:"7"`
	ProjectionDays int               `yaml:"projection_days" env-default:"30"`
	SnapshotTTL    time.Duration     `yaml:"snapshot_ttl" env-default:"30s"`
}

// MustLoad загружает конфигурацию из файла, указанного в CONFIG_PATH.
// Падает при отсутствии файла — запуск без конфигурации бессмыслен.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	cfg.applyDefaults()
	return &cfg
}

// applyDefaults подставляет таблицы исходной системы, когда файл
// конфигурации их не задаёт.
func (c *Config) applyDefaults() {
	if len(c.Allocation.CapacityLimits) == 0 {
		c.Allocation.CapacityLimits = allocation.DefaultLimits()
	}
	if len(c.Allocation.Prices) == 0 {
		c.Allocation.Prices = revenue.DefaultPrices()
	}
}
