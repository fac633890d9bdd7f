package rabbitmq

import (
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venturoid/driverproxy/connurl"
)

func validConfig() Config {
	return Config{
		RabbitMQConfig: &RabbitMQConfig{
			Host:        "broker",
			Username:    "guest",
			Password:    "s3cr3t",
			VirtualHost: "/",
		},
	}
}

func TestBuildURL(t *testing.T) {
	testCases := []struct {
		TestName string

		config        func(c *RabbitMQConfig)
		Expected      string
		ExpectedVhost string
	}{
		{
			TestName:      "default vhost is path escaped",
			config:        func(c *RabbitMQConfig) {},
			Expected:      "amqp://broker:5672/%2F",
			ExpectedVhost: "/",
		},
		{
			TestName: "named vhost with properties",
			config: func(c *RabbitMQConfig) {
				c.Port = "5673"
				c.VirtualHost = "orders"
				c.Properties = connurl.NewProperties("heartbeat", "30", "password", "leak", "connection_timeout", "5000")
			},
			Expected:      "amqp://broker:5673/orders?heartbeat=30&connection_timeout=5000",
			ExpectedVhost: "orders",
		},
	}

	for _, c := range testCases {
		t.Run(c.TestName, func(t *testing.T) {
			config := validConfig()
			c.config(config.RabbitMQConfig)

			got, err := buildURL(config)
			require.NoError(t, err)
			assert.Equal(t, c.Expected, got)

			uri, err := amqp.ParseURI(got)
			require.NoError(t, err)
			assert.Equal(t, "broker", uri.Host)
			assert.Equal(t, c.ExpectedVhost, uri.Vhost)
			assert.Empty(t, uri.Password)
		})
	}
}

func TestBuildURL_KeepsCallerConfig(t *testing.T) {
	config := validConfig()

	got, err := buildURL(config)
	require.NoError(t, err)
	assert.Equal(t, "amqp://broker:5672/%2F", got)
	assert.Empty(t, config.RabbitMQConfig.Port)
}

func TestBuildURL_Errors(t *testing.T) {
	testCases := []struct {
		TestName string

		config        func(c *RabbitMQConfig)
		ExpectedError string
	}{
		{TestName: "host", config: func(c *RabbitMQConfig) { c.Host = "" }, ExpectedError: "rabbitmq host is required"},
		{TestName: "username", config: func(c *RabbitMQConfig) { c.Username = "" }, ExpectedError: "rabbitmq username is required"},
		{TestName: "password", config: func(c *RabbitMQConfig) { c.Password = "" }, ExpectedError: "rabbitmq password is required"},
		{TestName: "vhost", config: func(c *RabbitMQConfig) { c.VirtualHost = "" }, ExpectedError: "rabbitmq virtual host is required"},
	}

	for _, c := range testCases {
		t.Run(c.TestName, func(t *testing.T) {
			config := validConfig()
			c.config(config.RabbitMQConfig)

			_, err := buildURL(config)
			assert.EqualError(t, err, c.ExpectedError)
		})
	}

	_, err := buildURL(Config{})
	assert.EqualError(t, err, "rabbitmq config is required")
}

func TestDialConfig(t *testing.T) {
	config := dialConfig(validConfig())

	require.Len(t, config.SASL, 1)
	auth, ok := config.SASL[0].(*amqp.PlainAuth)
	require.True(t, ok)
	assert.Equal(t, "guest", auth.Username)
	assert.Equal(t, "s3cr3t", auth.Password)
	assert.Equal(t, "/", config.Vhost)
	assert.Equal(t, "en_US", config.Locale)
	assert.Contains(t, config.Properties["connection_name"], "driverproxy-")

	other := dialConfig(validConfig())
	assert.NotEqual(t, config.Properties["connection_name"], other.Properties["connection_name"])
}

func stubDial(t *testing.T, fn func(url string, config amqp.Config) (*amqp.Connection, error)) {
	t.Helper()
	original := dial
	dial = fn
	t.Cleanup(func() { dial = original })
}

func TestConnect_Retries(t *testing.T) {
	calls := 0
	stubDial(t, func(string, amqp.Config) (*amqp.Connection, error) {
		calls++
		return nil, errors.New("connection refused")
	})

	conf := Config{Retries: 3, Delay: time.Millisecond}
	_, err := conf.connect("amqp://broker:5672/%2F", amqp.Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 3, calls)
}

func TestCreatePool(t *testing.T) {
	calls := 0
	stubDial(t, func(url string, config amqp.Config) (*amqp.Connection, error) {
		calls++
		assert.Equal(t, "amqp://broker:5672/%2F", url)
		if calls == 2 {
			return nil, errors.New("transient")
		}
		return &amqp.Connection{}, nil
	})

	conf := Config{Retries: 2, Delay: time.Millisecond, Pool: 2}
	pool, err := conf.createPool("amqp://broker:5672/%2F", amqp.Config{})

	require.NoError(t, err)
	assert.Len(t, pool, 2)
	assert.Equal(t, 3, calls)
}

func TestNewRabbitMQ(t *testing.T) {
	var got amqp.Config
	stubDial(t, func(url string, config amqp.Config) (*amqp.Connection, error) {
		got = config
		return &amqp.Connection{}, nil
	})

	config := validConfig()
	config.Pool = 3
	rmq, err := NewRabbitMQ(config)

	require.NoError(t, err)
	assert.Len(t, rmq.connection, 3)
	assert.Equal(t, "amqp://broker:5672/%2F", rmq.url)
	assert.Equal(t, "/", got.Vhost)

	_, err = NewRabbitMQ(Config{RabbitMQConfig: &RabbitMQConfig{}})
	assert.EqualError(t, err, "rabbitmq host is required")
}

func TestGetConnection_RoundRobin(t *testing.T) {
	pool := []*amqp.Connection{{}, {}, {}}
	rmq := &Rabbit{mx: &sync.Mutex{}, connection: pool}

	for _, want := range []int{0, 1, 2, 0, 1} {
		conn, err := rmq.getConnection()
		require.NoError(t, err)
		assert.Same(t, pool[want], conn)
	}

	empty := &Rabbit{mx: &sync.Mutex{}}
	_, err := empty.getConnection()
	assert.EqualError(t, err, "rabbitmq connection is empty")

	err = empty.CloseConnection()
	assert.EqualError(t, err, "rabbitmq connection is empty")
}
