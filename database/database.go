package godatabase

import (
	"reflect"

	"github.com/venturoid/driverproxy/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type database struct {
	*gorm.DB
	connection *Connection
}

// Get returns a live session, reconnecting when the current one fails a ping.
func (x *database) Get() *gorm.DB {
	log := logger.New("info")

	var reconnect bool
	if x.DB == nil {
		reconnect = true
	}

	if reflect.DeepEqual(x.DB, &gorm.DB{}) {
		reconnect = true
	}

	if !reconnect {
		if data, err := x.DB.DB(); err != nil {
			log.Warn("error get database connection", zap.Error(err))
			reconnect = true
		} else {
			if err := data.Ping(); err != nil {
				log.Warn("error ping database connection", zap.Error(err))
				reconnect = true
			}
		}
	}

	if reconnect {
		log.Info("reconnect to database", zap.String("dialect", string(x.connection.Dialect)))
		if data, err := x.connection.reconnect(); err != nil {
			log.Error("error reconnect to database", zap.Error(err))
		} else {
			x.DB = data
		}
	}

	return x.DB
}

// Close closes the underlying connection pool.
func (x *database) Close() error {
	if x.DB == nil {
		return nil
	}

	sqlDB, err := x.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
