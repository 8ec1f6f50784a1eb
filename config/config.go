// server/config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port            string `mapstructure:"port"`
	Env             string `mapstructure:"env"`
	ShutdownTimeout string `mapstructure:"shutdownTimeout"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allowOrigins"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	S3      S3Config      `mapstructure:"s3"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"

	EnvDev = "dev"
)

var ErrInvalidConfig = errors.New("invalid config")

// LoadConfig reads config.yaml from path and overrides it with environment
// variables. A missing file is fine; the environment and defaults are used.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", EnvDev)
	v.SetDefault("server.shutdownTimeout", "5s")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("mongo.dbName", "station")
	v.SetDefault("jwt.expiration", "12h")
	v.SetDefault("cors.allowOrigins", []string{"*"})
	v.SetDefault("metrics.enabled", true)

	v.AutomaticEnv()
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.env", "APP_ENV")
	v.BindEnv("server.shutdownTimeout", "SERVER_SHUTDOWN_TIMEOUT")
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.dbName", "MONGO_DBNAME")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	v.BindEnv("s3.bucket", "S3_BUCKET")
	v.BindEnv("s3.region", "S3_REGION")
	v.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	v.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	v.BindEnv("cors.allowOrigins", "CORS_ALLOW_ORIGINS")
	v.BindEnv("metrics.enabled", "METRICS_ENABLED")

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("failed to decode config: %w", err)
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("%w: mongo.uri is required for the mongo driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.JWT.Secret == "" && !c.IsDev() {
		return fmt.Errorf("%w: jwt.secret is required outside %s", ErrInvalidConfig, EnvDev)
	}
	if _, err := c.TokenTTL(); err != nil {
		return err
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		return err
	}
	return nil
}

func (c Config) IsDev() bool { return c.Server.Env == EnvDev }

// TokenTTL is the lifetime of a session token.
func (c Config) TokenTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.JWT.Expiration)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: jwt.expiration %q", ErrInvalidConfig, c.JWT.Expiration)
	}
	return d, nil
}

func (c Config) ShutdownTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: server.shutdownTimeout %q", ErrInvalidConfig, c.Server.ShutdownTimeout)
	}
	return d, nil
}

// JWTSecret falls back to a fixed development secret in dev.
func (c Config) JWTSecret() []byte {
	if c.JWT.Secret == "" && c.IsDev() {
		return []byte("station-dev-secret")
	}
	return []byte(c.JWT.Secret)
}
