package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/venturoid/driverproxy/connurl"
	"github.com/venturoid/driverproxy/logger"
	"go.uber.org/zap"
)

// credentials travel through redis.Options, never through the url
var dialect = connurl.Dialect{
	Protocol: "redis://",
	Names: connurl.PropertyNames{
		Server:   "host",
		Port:     "port",
		User:     "user",
		Password: "password",
	},
}

type Options struct {
	Repository string
	Host       string
	Port       int
	Username   string
	Password   string
	DB         int
	TLS        bool
	Properties *connurl.Properties
	Logger     bool
}

func (o *Options) Validate() error {
	if o.Host == "" {
		return errors.New("redis host is required")
	}

	if o.Repository == "" {
		return errors.New("redis repository name is required")
	}

	return nil
}

// URL returns the redis connection url, for example
// redis://cache:6379/2?client_name=orders&dial_timeout=5s.
func (o *Options) URL() (string, error) {
	d := dialect
	if o.TLS {
		d.Protocol = "rediss://"
	}

	props := connurl.NewProperties("host", o.Host)
	if o.Port != 0 {
		props.Set("port", strconv.Itoa(o.Port))
	}
	props.Set(connurl.DatabaseProperty, strconv.Itoa(o.DB))
	props.Set("client_name", o.Repository)
	props.Merge(o.Properties)

	return d.URL(nil, props)
}

func (o *Options) RedisOptions() (*redis.Options, error) {
	url, err := o.URL()
	if err != nil {
		return nil, err
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	opts.Username = o.Username
	opts.Password = o.Password
	if o.Properties.Get("pool_size") == "" {
		opts.PoolSize = 1
	}

	repository := o.Repository
	opts.OnConnect = func(ctx context.Context, cn *redis.Conn) error {
		logger.New("info").Info("redis is connected", zap.String("name", repository))
		return nil
	}

	return opts, nil
}
