package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the server and the terminal client.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Backend     BackendConfig     `mapstructure:"backend"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Collections CollectionsConfig `mapstructure:"collections"`
	Redis       RedisConfig       `mapstructure:"redis"`
	S3          S3Config          `mapstructure:"s3"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	Log         LogConfig         `mapstructure:"log"`
	Session     SessionConfig     `mapstructure:"session"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// BackendConfig is what the client needs to reach the hosted backend.
type BackendConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	Platform  string        `mapstructure:"platform"`
	ProjectID string        `mapstructure:"project_id"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

// CollectionsConfig names one collection per entity kind.
type CollectionsConfig struct {
	User       string `mapstructure:"user"`
	Account    string `mapstructure:"account"`
	Workout    string `mapstructure:"workout"`
	Exercise   string `mapstructure:"exercise"`
	WorkoutSet string `mapstructure:"workout_set"`
	Export     string `mapstructure:"export"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Enabled reports whether enough is configured to talk to a bucket.
func (c S3Config) Enabled() bool {
	return c.BucketName != "" && c.AccessKeyID != ""
}

// JWTConfig defines session token signing configuration.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	File     string `mapstructure:"file"`
	ToStdout bool   `mapstructure:"to_stdout"`
	JSON     bool   `mapstructure:"json"`
}

// SessionConfig tunes the workout session tracker.
type SessionConfig struct {
	MaxSets int `mapstructure:"max_sets"`
}

type RateLimitConfig struct {
	LoginPerMinute int `mapstructure:"login_per_minute"`
}

// LoadConfig reads config.yaml from path, then applies environment overrides.
// Nested keys map to env vars with dots replaced, e.g. jwt.secret -> JWT_SECRET.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, err
		}
		// No file: defaults and env vars only.
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")

	v.SetDefault("backend.endpoint", "http://localhost:8080")
	v.SetDefault("backend.platform", "com.nclx.gymnotetaker")
	v.SetDefault("backend.project_id", "gymnotetaker")
	v.SetDefault("backend.timeout", "30s")

	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "gymnotetaker")

	v.SetDefault("collections.user", "users")
	v.SetDefault("collections.account", "accounts")
	v.SetDefault("collections.workout", "workouts")
	v.SetDefault("collections.exercise", "exercises")
	v.SetDefault("collections.workout_set", "workout_sets")
	v.SetDefault("collections.export", "exports")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "168h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.to_stdout", true)
	v.SetDefault("log.json", false)

	v.SetDefault("session.max_sets", 4)
	v.SetDefault("ratelimit.login_per_minute", 20)
}
