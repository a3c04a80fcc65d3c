package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type UpstreamConfig struct {
	BaseURL  string
	Timeout  time.Duration
	Login    string
	Password string
}

type PollConfig struct {
	OrdersInterval  time.Duration
	DriversInterval time.Duration
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Upstream    UpstreamConfig
	Poll        PollConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Upstream: UpstreamConfig{
			BaseURL:  v.GetString("UPSTREAM_BASE_URL"),
			Timeout:  v.GetDuration("UPSTREAM_TIMEOUT"),
			Login:    v.GetString("UPSTREAM_LOGIN"),
			Password: v.GetString("UPSTREAM_PASSWORD"),
		},
		Poll: PollConfig{
			OrdersInterval:  v.GetDuration("POLL_ORDERS_INTERVAL"),
			DriversInterval: v.GetDuration("POLL_DRIVERS_INTERVAL"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = 15 * time.Second
	}
	if cfg.Poll.OrdersInterval == 0 {
		cfg.Poll.OrdersInterval = 10 * time.Second
	}
	if cfg.Poll.DriversInterval == 0 {
		cfg.Poll.DriversInterval = 5 * time.Second
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if cfg.Upstream.Login == "" || cfg.Upstream.Password == "" {
		return fmt.Errorf("UPSTREAM_LOGIN and UPSTREAM_PASSWORD are required")
	}
	if cfg.Poll.DriversInterval > cfg.Poll.OrdersInterval {
		return fmt.Errorf("POLL_DRIVERS_INTERVAL must not exceed POLL_ORDERS_INTERVAL")
	}
	return nil
}
