package godatabase

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/venturoid/driverproxy/connurl"
	"github.com/venturoid/driverproxy/logger"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Configuration struct {
	ParseTime bool
	Location  string
	Charset   string
	SSLMode   string

	Retries    int
	RetryDelay time.Duration

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type Connection struct {
	Dialect Dialect

	// database connection information
	Host     string
	Port     int
	Username string
	Password string
	Database string

	// extra driver properties, appended to the url query in order
	Properties *connurl.Properties

	// database connection configuration
	Configuration
}

func NewConnection(config Connection) (*database, error) {
	// set default values
	if config.Dialect == "" {
		config.Dialect = MySQL
	}
	if config.Retries == 0 {
		config.Retries = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 5 * time.Second
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 10
	}
	if config.MaxOpenConns == 0 {
		config.MaxOpenConns = 50
	}
	if config.ConnMaxLifetime == 0 {
		config.ConnMaxLifetime = 10 * time.Second
	}

	// fail fast on configuration errors, retrying can not fix them
	if _, _, err := config.dataSource(); err != nil {
		return nil, err
	}

	log := logger.New("info")

	// connect to database
	var db *gorm.DB
	if data, err := config.connect(); err != nil {
		log.Error("error on creating connection gorm database", zap.Error(err))
	} else {
		db = data
	}

	if db == nil {
		if data, err := config.reconnect(); err != nil {
			log.Error("error on reconnecting to database", zap.Error(err))
			return nil, err
		} else {
			db = data
		}
	}

	return &database{
		DB:         db,
		connection: &config,
	}, nil
}

func (c *Connection) connect() (*gorm.DB, error) {
	log := logger.New("info")

	driverName, dsn, err := c.dataSource()
	if err != nil {
		return nil, err
	}

	if rawURL, err := c.URL(); err == nil {
		log.Info("connecting to database",
			zap.String("dialect", string(c.Dialect)),
			zap.String("url", logger.RedactURL(rawURL)),
		)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("error on creating connection sql database: %w", err)
	}

	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetConnMaxLifetime(c.ConnMaxLifetime)

	// assign database connection
	gormDB, err := gorm.Open(c.dialector(db), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error on opening gorm database: %w", err)
	}

	log.Info("database connection successfully", zap.String("dialect", string(c.Dialect)))
	return gormDB, nil
}

func (c *Connection) dialector(db *sql.DB) gorm.Dialector {
	if c.Dialect == Postgres {
		return postgres.New(postgres.Config{Conn: db})
	}
	return mysql.New(mysql.Config{Conn: db})
}

func (c *Connection) reconnect() (*gorm.DB, error) {
	log := logger.New("info")

	retry := c.Retries
	// reconnect to database
	if retry == 0 {
		return nil, fmt.Errorf("failed to reconnect to database")
	}

	var lastErr error
	for retry > 0 {
		data, err := c.connect()
		if err == nil {
			return data, nil
		}

		lastErr = err
		retry--
		log.Warn("reconnect", zap.Int("remaining", retry), zap.Error(err))
		if retry > 0 {
			<-time.After(c.RetryDelay)
		}
	}

	return nil, fmt.Errorf("failed to reconnect to database: %w", lastErr)
}
