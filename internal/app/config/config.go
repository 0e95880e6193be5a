package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	JWT         JWTConfig
	Redis       RedisConfig
	MinIO       MinIOConfig
	Database    DatabaseConfig
	Storage     StorageConfig
	Render      RenderConfig
	Sweep       SweepConfig
	Log         LogConfig
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod `mapstructure:"-"`
}

type RedisConfig struct {
	Enabled     bool
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type DatabaseConfig struct {
	Driver string // postgres | sqlite
	Path   string // sqlite file
}

type StorageConfig struct {
	Driver    string // minio | local
	LocalRoot string
}

type RenderConfig struct {
	ConverterPath  string
	ConvertTimeout time.Duration
	Timezone       string
	Title          string
	TempDir        string
}

type SweepConfig struct {
	Enabled  bool
	Schedule string
	Batch    int
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	envRedisHost   = "REDIS_HOST"
	envRedisPort   = "REDIS_PORT"
	envRedisUser   = "REDIS_USER"
	envRedisPass   = "REDIS_PASSWORD"
	envMinIOHost   = "MINIO_ENDPOINT"
	envMinIOAccess = "MINIO_ACCESS_KEY"
	envMinIOSecret = "MINIO_SECRET_KEY"
	envJWTSecret   = "JWT_SECRET"
	envLogLevel    = "LOG_LEVEL"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("ServiceHost", "0.0.0.0")
	v.SetDefault("ServicePort", 8080)

	v.SetDefault("JWT.ExpiresIn", time.Hour)

	v.SetDefault("Redis.Enabled", true)
	v.SetDefault("Redis.Host", "localhost")
	v.SetDefault("Redis.Port", 6379)
	v.SetDefault("Redis.DialTimeout", 10*time.Second)
	v.SetDefault("Redis.ReadTimeout", 10*time.Second)

	v.SetDefault("MinIO.Endpoint", "localhost:9000")
	v.SetDefault("MinIO.Bucket", "custody-terms")

	v.SetDefault("Database.Driver", "postgres")
	v.SetDefault("Database.Path", "custody.db")

	v.SetDefault("Storage.Driver", "minio")
	v.SetDefault("Storage.LocalRoot", "media")

	v.SetDefault("Render.ConverterPath", "soffice")
	v.SetDefault("Render.ConvertTimeout", 60*time.Second)
	v.SetDefault("Render.Timezone", "America/Sao_Paulo")
	v.SetDefault("Render.Title", "TERMO DE RESPONSABILIDADE")

	v.SetDefault("Sweep.Enabled", true)
	v.SetDefault("Sweep.Schedule", "*/15 * * * *")
	v.SetDefault("Sweep.Batch", 50)

	v.SetDefault("Log.Level", "info")
	v.SetDefault("Log.Format", "text")
}

// NewConfig reads config/<CONFIG_NAME>.toml (default "config") over built-in defaults, then
// applies secrets from the environment and .env. A missing file is not an error.
func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Warnf("config file %q not found, using defaults", configName)
	}

	cfg := &Config{}
	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	cfg.JWT.SigningMethod = jwt.SigningMethodHS256
	if secret := os.Getenv(envJWTSecret); secret != "" {
		cfg.JWT.Token = secret
	}
	if cfg.JWT.Token == "" {
		return nil, errors.New("jwt secret is empty: set JWT_SECRET")
	}

	if host := os.Getenv(envRedisHost); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv(envRedisPort); port != "" {
		cfg.Redis.Port, err = strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("redis port must be int value: %w", err)
		}
	}
	if user := os.Getenv(envRedisUser); user != "" {
		cfg.Redis.User = user
	}
	if pass := os.Getenv(envRedisPass); pass != "" {
		cfg.Redis.Password = pass
	}

	if endpoint := os.Getenv(envMinIOHost); endpoint != "" {
		cfg.MinIO.Endpoint = endpoint
	}
	if key := os.Getenv(envMinIOAccess); key != "" {
		cfg.MinIO.AccessKey = key
	}
	if secret := os.Getenv(envMinIOSecret); secret != "" {
		cfg.MinIO.SecretKey = secret
	}

	if level := os.Getenv(envLogLevel); level != "" {
		cfg.Log.Level = level
	}

	log.Info("config parsed")

	return cfg, nil
}
