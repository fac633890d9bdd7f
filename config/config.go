package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/venturoid/driverproxy/connurl"
	godatabase "github.com/venturoid/driverproxy/database"
	"github.com/venturoid/driverproxy/logger"
	"github.com/venturoid/driverproxy/rabbitmq"
	"github.com/venturoid/driverproxy/redis"
)

type Config struct {
	Logger   logger.Config  `mapstructure:"logger"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

// Properties are "key=value" items, kept as a list so their order survives decoding.
type DatabaseConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Dialect    string   `mapstructure:"dialect"`
	Host       string   `mapstructure:"host"`
	Port       int      `mapstructure:"port"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	Name       string   `mapstructure:"name"`
	Properties []string `mapstructure:"properties"`

	ParseTime       bool          `mapstructure:"parseTime"`
	Location        string        `mapstructure:"location"`
	Charset         string        `mapstructure:"charset"`
	SSLMode         string        `mapstructure:"sslMode"`
	Retries         int           `mapstructure:"retries"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
}

type RedisConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Repository string   `mapstructure:"repository"`
	Host       string   `mapstructure:"host"`
	Port       int      `mapstructure:"port"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	DB         int      `mapstructure:"db"`
	TLS        bool     `mapstructure:"tls"`
	Properties []string `mapstructure:"properties"`
}

type RabbitMQConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	VirtualHost string        `mapstructure:"virtualHost"`
	Retries     int           `mapstructure:"retries"`
	Delay       time.Duration `mapstructure:"delay"`
	Pool        int           `mapstructure:"pool"`
	Properties  []string      `mapstructure:"properties"`
}

// Connection converts the section into a godatabase connection.
func (c DatabaseConfig) Connection() (godatabase.Connection, error) {
	props, err := connurl.ParseProperties(c.Properties)
	if err != nil {
		return godatabase.Connection{}, fmt.Errorf("database properties: %w", err)
	}

	return godatabase.Connection{
		Dialect:    godatabase.Dialect(c.Dialect),
		Host:       c.Host,
		Port:       c.Port,
		Username:   c.Username,
		Password:   c.Password,
		Database:   c.Name,
		Properties: props,
		Configuration: godatabase.Configuration{
			ParseTime:       c.ParseTime,
			Location:        c.Location,
			Charset:         c.Charset,
			SSLMode:         c.SSLMode,
			Retries:         c.Retries,
			RetryDelay:      c.RetryDelay,
			MaxIdleConns:    c.MaxIdleConns,
			MaxOpenConns:    c.MaxOpenConns,
			ConnMaxLifetime: c.ConnMaxLifetime,
		},
	}, nil
}

func (c RedisConfig) Options() (redis.Options, error) {
	props, err := connurl.ParseProperties(c.Properties)
	if err != nil {
		return redis.Options{}, fmt.Errorf("redis properties: %w", err)
	}

	return redis.Options{
		Repository: c.Repository,
		Host:       c.Host,
		Port:       c.Port,
		Username:   c.Username,
		Password:   c.Password,
		DB:         c.DB,
		TLS:        c.TLS,
		Properties: props,
	}, nil
}

func (c RabbitMQConfig) Config() (rabbitmq.Config, error) {
	props, err := connurl.ParseProperties(c.Properties)
	if err != nil {
		return rabbitmq.Config{}, fmt.Errorf("rabbitmq properties: %w", err)
	}

	port := ""
	if c.Port != 0 {
		port = strconv.Itoa(c.Port)
	}

	return rabbitmq.Config{
		RabbitMQConfig: &rabbitmq.RabbitMQConfig{
			Host:        c.Host,
			Port:        port,
			Username:    c.Username,
			Password:    c.Password,
			VirtualHost: c.VirtualHost,
			Properties:  props,
		},
		Retries: c.Retries,
		Delay:   c.Delay,
		Pool:    c.Pool,
	}, nil
}
