package rabbitmq

import (
	"errors"
	"net/url"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/venturoid/driverproxy/connurl"
)

// user and password are reserved so the broker credentials go through SASL
var dialect = connurl.Dialect{
	Protocol: "amqp://",
	Names: connurl.PropertyNames{
		Server:   "host",
		Port:     "port",
		User:     "user",
		Password: "password",
	},
}

func buildURL(config Config) (string, error) {
	if config.RabbitMQConfig == nil {
		return "", errors.New("rabbitmq config is required")
	}

	if config.RabbitMQConfig.Host == "" {
		return "", errors.New("rabbitmq host is required")
	}

	port := config.RabbitMQConfig.Port
	if port == "" {
		port = "5672"
	}

	if config.RabbitMQConfig.Username == "" {
		return "", errors.New("rabbitmq username is required")
	}

	if config.RabbitMQConfig.Password == "" {
		return "", errors.New("rabbitmq password is required")
	}

	if config.RabbitMQConfig.VirtualHost == "" {
		return "", errors.New("rabbitmq virtual host is required")
	}

	props := connurl.NewProperties(
		"host", config.RabbitMQConfig.Host,
		"port", port,
		connurl.DatabaseProperty, url.PathEscape(config.RabbitMQConfig.VirtualHost),
	)
	props.Merge(config.RabbitMQConfig.Properties)

	return dialect.URL(nil, props)
}

func dialConfig(config Config) amqp.Config {
	properties := amqp.NewConnectionProperties()
	properties["connection_name"] = "driverproxy-" + uuid.New().String()

	return amqp.Config{
		SASL: []amqp.Authentication{&amqp.PlainAuth{
			Username: config.RabbitMQConfig.Username,
			Password: config.RabbitMQConfig.Password,
		}},
		Vhost:      config.RabbitMQConfig.VirtualHost,
		Properties: properties,
		Locale:     "en_US",
	}
}
