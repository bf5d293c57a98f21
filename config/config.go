package config

import (
	"Storefront/models"
	"fmt"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"os"
	"time"
)

const DefaultPath = "config/config.yaml"

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type BackendConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
	Addr    string        `yaml:"addr"`
}

type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

type SessionConfig struct {
	PrivateKeyPath string        `yaml:"privateKeyPath"`
	PublicKeyPath  string        `yaml:"publicKeyPath"`
	TTL            time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Config struct {
	Server   ServerConfig           `yaml:"server"`
	Backend  BackendConfig          `yaml:"backend"`
	Database DatabaseConfig         `yaml:"database"`
	Redis    RedisConfig            `yaml:"redis"`
	Session  SessionConfig          `yaml:"session"`
	Log      LogConfig              `yaml:"log"`
	Seed     []models.InventoryItem `yaml:"seed"`
}

// Default returns the configuration used for any field the file leaves empty.
func Default() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8080"},
		Backend: BackendConfig{BaseURL: "http://localhost:3000", Addr: ":3000"},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		Session: SessionConfig{
			PrivateKeyPath: "session/private_key.pem",
			PublicKeyPath:  "session/public_key.pem",
			TTL:            24 * time.Hour,
		},
		Log: LogConfig{Level: "info"},
	}
}

func LoadConfig(filename string) (Config, error) {
	config := Default()
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("decode %s: %w", filename, err)
	}
	config.applyDefaults()

	return config, nil
}

// applyDefaults refills fields that an explicit empty value in the file cleared.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = d.Backend.BaseURL
	}
	if c.Backend.Addr == "" {
		c.Backend.Addr = d.Backend.Addr
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = d.Redis.Addr
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = d.Session.TTL
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

func SetupLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	zapConfig := zap.NewProductionConfig()
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	return zapConfig.Build()
}

func SetupMySQLConnection(cfg DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.InventoryItem{},
		&models.CartItem{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func SetupRedisConnection(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.Database,
	})
}
