package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/venturoid/driverproxy/logger"
	"go.uber.org/zap"
)

type Redis struct {
	client *redis.Client
	logger bool
	ctx    context.Context
}

// CreateConnection is a function to create connection to redis
// it will return redis client and error if any
func CreateConnection(options Options, ctx context.Context) (*Redis, error) {
	log := logger.New("info")

	/* validate request */
	if err := options.Validate(); err != nil {
		return nil, err
	}

	if ctx == nil {
		return nil, errors.New("context is required")
	}

	/* create connection */
	opts, err := options.RedisOptions()
	if err != nil {
		return nil, fmt.Errorf("error build redis options: %w", err)
	}

	if url, err := options.URL(); err == nil {
		log.Info("connecting to redis", zap.String("url", logger.RedactURL(url)))
	}

	client := redis.NewClient(opts)

	/* check connection */
	if data, err := client.Ping(ctx).Result(); err != nil {
		log.Error("error connect to redis", zap.Error(err))
		client.Close()
		return nil, fmt.Errorf("error connect to redis: %w", err)
	} else {
		log.Info("successfully connect to redis", zap.String("ping", data))
	}

	return &Redis{
		client: client,
		ctx:    ctx,
		logger: options.Logger,
	}, nil
}

// Client returns the underlying go-redis client
func (r *Redis) Client() *redis.Client {
	return r.client
}

// Ping checks that the server is still reachable
func (r *Redis) Ping() error {
	if r.client == nil {
		return errors.New("client connection is empty")
	}

	if err := r.client.Ping(r.ctx).Err(); err != nil {
		return fmt.Errorf("error ping redis: %w", err)
	}

	if r.logger {
		logger.New("info").Debug("successfully ping redis")
	}
	return nil
}

// Close is a function to close connection to redis
func (r *Redis) Close() error {
	if r.client == nil {
		return errors.New("client connection is empty")
	}

	if err := r.client.Close(); err != nil {
		logger.New("info").Error("error close connection", zap.Error(err))
		return errors.New("error close connection")
	}

	logger.New("info").Info("successfully close connection")
	return nil
}
