package rabbitmq

import (
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/venturoid/driverproxy/connurl"
)

// Config is a struct to store rabbitmq configuration
type Config struct {
	RabbitMQConfig *RabbitMQConfig
	Retries        int
	Delay          time.Duration
	Pool           int
}

// RabbitMQConfig is a struct to store rabbitmq configuration.
// VirtualHost is the vhost name as the broker knows it, "/" for the default one.
type RabbitMQConfig struct {
	Host        string
	Port        string
	Username    string
	Password    string
	VirtualHost string
	Properties  *connurl.Properties
}

// Rabbit is a struct to store rabbitmq connection
type Rabbit struct {
	mx     *sync.Mutex
	n      int
	url    string
	config amqp.Config

	connection []*amqp.Connection
}
