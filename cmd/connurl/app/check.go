package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/venturoid/driverproxy/config"
	godatabase "github.com/venturoid/driverproxy/database"
	"github.com/venturoid/driverproxy/logger"
	"github.com/venturoid/driverproxy/rabbitmq"
	"github.com/venturoid/driverproxy/redis"
	"go.uber.org/zap"
)

func newCheckCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Connect to every enabled backend of the configuration and ping it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configDir)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := logger.NewWithConfig(cfg.Logger)
			logger.Zap = log
			defer log.Sync()

			return check(cmd.Context(), cfg, log)
		},
	}

	cmd.Flags().StringVar(&configDir, "config", "", "Directory holding driverproxy.yaml")

	return cmd
}

func check(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	checked := 0

	if cfg.Database.Enabled {
		if err := checkDatabase(cfg.Database); err != nil {
			return err
		}
		log.Info("database is reachable", zap.String("dialect", cfg.Database.Dialect))
		checked++
	}

	if cfg.Redis.Enabled {
		if err := checkRedis(ctx, cfg.Redis); err != nil {
			return err
		}
		log.Info("redis is reachable", zap.String("repository", cfg.Redis.Repository))
		checked++
	}

	if cfg.RabbitMQ.Enabled {
		if err := checkRabbitMQ(cfg.RabbitMQ); err != nil {
			return err
		}
		log.Info("rabbitmq is reachable", zap.String("vhost", cfg.RabbitMQ.VirtualHost))
		checked++
	}

	if checked == 0 {
		return errors.New("no backend is enabled")
	}
	return nil
}

func checkDatabase(section config.DatabaseConfig) error {
	conn, err := section.Connection()
	if err != nil {
		return err
	}

	db, err := godatabase.NewConnection(conn)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}

func checkRedis(ctx context.Context, section config.RedisConfig) error {
	options, err := section.Options()
	if err != nil {
		return err
	}

	client, err := redis.CreateConnection(options, ctx)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer client.Close()

	return client.Ping()
}

func checkRabbitMQ(section config.RabbitMQConfig) error {
	rc, err := section.Config()
	if err != nil {
		return err
	}

	rmq, err := rabbitmq.NewRabbitMQ(rc)
	if err != nil {
		return fmt.Errorf("rabbitmq: %w", err)
	}
	defer rmq.CloseConnection()

	channel, err := rmq.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: %w", err)
	}
	return channel.Close()
}
