package godatabase

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/venturoid/driverproxy/connurl"
)

type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// MySQL credentials are reserved so they never reach the URL; they are set on the
// driver config instead. pgx reads user and password from the query string.
var dialects = map[Dialect]connurl.Dialect{
	MySQL: {
		Protocol: "mysql://",
		Names: connurl.PropertyNames{
			Server:   "host",
			Port:     "port",
			Database: "database",
			User:     "user",
			Password: "password",
		},
	},
	Postgres: {
		Protocol: "postgres://",
		Names: connurl.PropertyNames{
			Server:   "host",
			Port:     "port",
			Database: "dbname",
		},
	},
}

func (d Dialect) connurl() (connurl.Dialect, error) {
	dialect, ok := dialects[d]
	if !ok {
		return connurl.Dialect{}, fmt.Errorf("unsupported database dialect %q", d)
	}
	return dialect, nil
}

// properties returns the property bag for the connection: reserved properties first,
// then dialect defaults, then caller properties overriding the defaults in place.
func (c Connection) properties() *connurl.Properties {
	props := connurl.NewProperties()
	props.Set("host", c.Host)
	if c.Port != 0 {
		props.Set("port", strconv.Itoa(c.Port))
	}
	// empty values would reach the query string as "key="
	if c.Database != "" {
		props.Set(connurl.DatabaseProperty, c.Database)
	}
	if c.Username != "" {
		props.Set(connurl.UserProperty, c.Username)
	}
	if c.Password != "" {
		props.Set(connurl.PasswordProperty, c.Password)
	}

	switch c.Dialect {
	case MySQL:
		parseTime := "False"
		if c.ParseTime {
			parseTime = "True"
		}

		loc := c.Location
		if loc == "" {
			loc = "Local"
		}

		charset := c.Charset
		if charset == "" {
			charset = "utf8mb4"
		}

		props.Set("charset", charset)
		props.Set("parseTime", parseTime)
		props.Set("loc", loc)
	case Postgres:
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		props.Set("sslmode", sslMode)
	}

	props.Merge(c.Properties)
	return props
}

// URL returns the connection URL for the configured dialect.
func (c Connection) URL() (string, error) {
	dialect, err := c.Dialect.connurl()
	if err != nil {
		return "", err
	}

	return dialect.URL(nil, c.properties())
}

// dataSource returns the database/sql driver name and data source name.
func (c Connection) dataSource() (string, string, error) {
	rawURL, err := c.URL()
	if err != nil {
		return "", "", err
	}

	switch c.Dialect {
	case MySQL:
		cfg, err := mysqlConfig(rawURL, c.Username, c.Password)
		if err != nil {
			return "", "", err
		}
		return "mysql", cfg.FormatDSN(), nil
	default:
		return "pgx", rawURL, nil
	}
}

// mysqlConfig translates a mysql:// connection URL into a driver config.
func mysqlConfig(rawURL, username, password string) (*mysql.Config, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql url: %w", err)
	}

	dsn := fmt.Sprintf("tcp(%s)/%s", u.Host, strings.TrimPrefix(u.Path, "/"))
	if u.RawQuery != "" {
		dsn += "?" + u.RawQuery
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}

	cfg.User = username
	cfg.Passwd = password
	return cfg, nil
}
