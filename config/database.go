package config

import (
	"context"
	"fmt"
	"time"

	"FoodOrder/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func (c DatabaseConfig) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverMySQL:
		dsn := c.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				c.Username, c.Password, c.Host, c.Port, c.Database)
		}
		return mysql.Open(dsn), nil
	case DriverPostgres:
		dsn := c.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				c.Host, c.Port, c.Username, c.Password, c.Database)
		}
		return postgres.Open(dsn), nil
	case DriverSQLite:
		dsn := c.DSN
		if dsn == "" {
			dsn = c.Database
		}
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LoginToken{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
		&models.Cart{},
		&models.CartItem{},
	)
}

func SetupDatabaseConnection(cfg DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return db, nil
}

// SetupRedisConnection returns nil when no address is configured.
func SetupRedisConnection(cfg RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, err
	}

	return redisClient, nil
}

// SetupMongoConnection returns nil when no uri is configured.
func SetupMongoConnection(cfg MongoDBConfig) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// zapWriter forwards gorm output at a single zap level.
type zapWriter struct {
	printf func(template string, args ...interface{})
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.printf(format, args...)
}

// newGormLogger traces every statement at debug level. Otherwise gorm only
// reports slow queries and errors, and those go out as warnings.
func newGormLogger(log *zap.Logger) logger.Interface {
	sugar := log.Named("gorm").Sugar()
	level, printf := logger.Warn, sugar.Warnf
	if log.Core().Enabled(zap.DebugLevel) {
		level, printf = logger.Info, sugar.Debugf
	}
	return logger.New(zapWriter{printf: printf}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
