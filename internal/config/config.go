package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string    `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis     `yaml:"redis"`
	Archive    Archive   `yaml:"archive"`
	Transport  Transport `yaml:"transport"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Archive - finished game summaries kept in redis.
type Archive struct {
	Buffer  int   `yaml:"buffer" env:"ARCHIVE_BUFFER" env-default:"64"`
	History int64 `yaml:"history" env:"ARCHIVE_HISTORY" env-default:"100"`
}

type Transport struct {
	SendBuffer      int           `yaml:"send-buffer" env:"TRANSPORT_SEND_BUFFER" env-default:"64"`
	MaxMessageBytes int64         `yaml:"max-message-bytes" env:"TRANSPORT_MAX_MESSAGE_BYTES" env-default:"8192"`
	PongWait        time.Duration `yaml:"pong-wait" env:"TRANSPORT_PONG_WAIT" env-default:"60s"`
	AllowedOrigins  []string      `yaml:"allowed-origins" env:"TRANSPORT_ALLOWED_ORIGINS" env-separator:","`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
