package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type ServerConfig struct {
	Port        string   `yaml:"port"`
	Mode        string   `yaml:"mode"`
	AllowOrigin []string `yaml:"allowOrigins"`
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	Database     string `yaml:"database"`
	MaxIdleConns int    `yaml:"maxIdleConns"`
	MaxOpenConns int    `yaml:"maxOpenConns"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	Database int           `yaml:"database"`
	TTL      time.Duration `yaml:"ttl"`
}

type MongoDBConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Issuer string        `yaml:"issuer"`
	TTL    time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level       string   `yaml:"level"`
	Encoding    string   `yaml:"encoding"`
	OutputPaths []string `yaml:"outputPaths"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	MongoDB  MongoDBConfig  `yaml:"mongodb"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`
	Admin    AdminConfig    `yaml:"admin"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: "3000", Mode: "release", AllowOrigin: []string{"*"}},
		Database: DatabaseConfig{
			Driver:       "sqlite",
			Database:     "cuisine.db",
			MaxIdleConns: 5,
			MaxOpenConns: 20,
		},
		Redis:   RedisConfig{TTL: 10 * time.Minute},
		MongoDB: MongoDBConfig{Database: "cuisine", Collection: "audit_logs"},
		JWT:     JWTConfig{Issuer: "cuisine-backend", TTL: 24 * time.Hour},
		Log:     LogConfig{Level: "info", Encoding: "json", OutputPaths: []string{"stdout"}},
	}
}

// LoadConfig reads the yaml file on top of Default. A missing file is fine
// as long as the environment supplies what Validate needs.
func LoadConfig(filename string) (Config, error) {
	config := Default()

	file, err := os.Open(filename)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, fmt.Errorf("decode %s: %w", filename, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return config, err
	}

	return config, nil
}

// Load picks up .env, the yaml file named by CONFIG_PATH (or DefaultPath)
// and then the environment overrides.
func Load() (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	path := getEnv("CONFIG_PATH", DefaultPath)
	config, err := LoadConfig(path)
	if err != nil {
		return config, err
	}

	applyEnv(&config)

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func applyEnv(config *Config) {
	config.Server.Port = getEnv("PORT", config.Server.Port)
	config.Database.Driver = getEnv("DB_DRIVER", config.Database.Driver)
	config.Database.DSN = getEnv("DB_DSN", config.Database.DSN)
	config.Database.Password = getEnv("DB_PASSWORD", config.Database.Password)
	config.Redis.Addr = getEnv("REDIS_ADDR", config.Redis.Addr)
	config.MongoDB.URI = getEnv("MONGODB_URI", config.MongoDB.URI)
	config.JWT.Secret = getEnv("JWT_SECRET", config.JWT.Secret)
	config.Admin.Username = getEnv("ADMIN_USERNAME", config.Admin.Username)
	config.Admin.Password = getEnv("ADMIN_PASSWORD", config.Admin.Password)
	if v, ok := os.LookupEnv("JWT_TTL_MINUTES"); ok {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			config.JWT.TTL = time.Duration(minutes) * time.Minute
		}
	}
}

func (c Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required (set JWT_SECRET)")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("jwt.ttl must be positive")
	}
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
