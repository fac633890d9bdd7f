package rabbitmq

import (
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/venturoid/driverproxy/logger"
	"go.uber.org/zap"
)

var dial = amqp.DialConfig

func (conf *Config) connect(url string, config amqp.Config) (*amqp.Connection, error) {
	log := logger.New("info")

	maxRetries := 5
	if conf.Retries > 0 {
		maxRetries = conf.Retries
	}

	delay := time.Second * 2
	if conf.Delay > 0 {
		delay = conf.Delay
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		data, err := dial(url, config)
		if err == nil {
			return data, nil
		}

		lastErr = err
		log.Warn("error on connecting to rabbitmq",
			zap.Int("attempt", i+1),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)

		if i < maxRetries-1 {
			time.Sleep(delay)
			delay *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect to rabbitmq: %w", lastErr)
}

func (conf *Config) createPool(url string, config amqp.Config) ([]*amqp.Connection, error) {
	pool := []*amqp.Connection{}

	if conf.Pool <= 0 {
		conf.Pool = 1
	}

	for i := 0; i < conf.Pool; i++ {
		data, err := conf.connect(url, config)
		if err != nil {
			for _, conn := range pool {
				conn.Close()
			}
			return nil, err
		}
		pool = append(pool, data)
	}

	return pool, nil
}

// NewRabbitMQ dials Pool connections to the broker described by config.
func NewRabbitMQ(config Config) (*Rabbit, error) {
	log := logger.New("info")

	url, err := buildURL(config)
	if err != nil {
		log.Error("error on building rabbitmq url", zap.Error(err))
		return nil, err
	}
	log.Info("connecting to rabbitmq", zap.String("url", logger.RedactURL(url)))

	amqpConfig := dialConfig(config)
	pool, err := config.createPool(url, amqpConfig)
	if err != nil {
		log.Error("error on creating connection", zap.Error(err))
		return nil, err
	}

	service := Rabbit{
		mx:     &sync.Mutex{},
		url:    url,
		config: amqpConfig,

		connection: pool,
	}

	log.Info("successfully create rabbitmq service", zap.Int("pool", len(pool)))
	return &service, nil
}

// CloseConnection closes every pooled connection.
func (rmq *Rabbit) CloseConnection() error {
	if rmq.connection == nil {
		return errors.New("rabbitmq connection is empty")
	}

	var errs []error
	for _, conn := range rmq.connection {
		if conn.IsClosed() {
			continue
		}
		if err := conn.Close(); err != nil {
			logger.New("info").Error("error on close connection", zap.Error(err))
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("error on close connection: %w", errors.Join(errs...))
	}
	return nil
}

// next returns the pool index to use and advances the round robin.
func (rmq *Rabbit) next() int {
	i := rmq.n
	rmq.n = (rmq.n + 1) % len(rmq.connection)
	return i
}

func (rmq *Rabbit) getConnection() (*amqp.Connection, error) {
	rmq.mx.Lock()
	defer rmq.mx.Unlock()

	if len(rmq.connection) == 0 {
		return nil, errors.New("rabbitmq connection is empty")
	}

	i := rmq.next()
	if rmq.connection[i].IsClosed() {
		logger.New("info").Info("reconnect rabbitmq connection", zap.Int("index", i))
		data, err := dial(rmq.url, rmq.config)
		if err != nil {
			return nil, fmt.Errorf("error on connecting to rabbitmq: %w", err)
		}
		rmq.connection[i] = data
	}

	return rmq.connection[i], nil
}

// Channel opens a channel on the next pooled connection, redialing it when closed.
func (rmq *Rabbit) Channel() (*amqp.Channel, error) {
	conn, err := rmq.getConnection()
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}
	return channel, nil
}
