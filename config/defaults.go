package config

import (
	"time"

	"github.com/venturoid/driverproxy/logger"
)

func getDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Database: DatabaseConfig{
			Dialect:         "mysql",
			Host:            "localhost",
			Port:            3306,
			ParseTime:       true,
			Location:        "Local",
			Charset:         "utf8mb4",
			SSLMode:         "disable",
			Retries:         3,
			RetryDelay:      5 * time.Second,
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: 10 * time.Second,
			Properties:      []string{},
		},
		Redis: RedisConfig{
			Repository: "driverproxy",
			Host:       "localhost",
			Port:       6379,
			Properties: []string{},
		},
		RabbitMQ: RabbitMQConfig{
			Host:        "localhost",
			Port:        5672,
			VirtualHost: "/",
			Retries:     5,
			Delay:       2 * time.Second,
			Pool:        1,
			Properties:  []string{},
		},
	}
}
