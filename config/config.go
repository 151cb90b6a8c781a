package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Draft session storage: "memory" or "redis".
	DraftStore       string `mapstructure:"DRAFT_STORE"`
	DraftTTLMinutes  int    `mapstructure:"DRAFT_TTL_MINUTES"`
	SubmitLockSecond int    `mapstructure:"SUBMIT_LOCK_SECONDS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDraftDB  int    `mapstructure:"REDIS_DRAFT_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Remote savings API.
	CoreAPIURL            string `mapstructure:"CORE_API_URL"`
	CoreAPITimeoutSeconds int    `mapstructure:"CORE_API_TIMEOUT_SECONDS"`

	// Activity telemetry: "log" or "mongo".
	ActivitySink string `mapstructure:"ACTIVITY_SINK"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Push notifications (requires redis for the queue).
	NotificationsEnabled    bool   `mapstructure:"NOTIFICATIONS_ENABLED"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	WorkerConcurrency       int    `mapstructure:"WORKER_CONCURRENCY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("DRAFT_STORE", "memory")
	v.SetDefault("DRAFT_TTL_MINUTES", 30)
	v.SetDefault("SUBMIT_LOCK_SECONDS", 30)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DRAFT_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("CORE_API_URL", "http://localhost:9000/api/v1")
	v.SetDefault("CORE_API_TIMEOUT_SECONDS", 15)
	v.SetDefault("ACTIVITY_SINK", "log")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "autosave")
	v.SetDefault("NOTIFICATIONS_ENABLED", false)
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("WORKER_CONCURRENCY", 5)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// DraftTTL is how long an untouched wizard draft survives.
func (c Config) DraftTTL() time.Duration {
	if c.DraftTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.DraftTTLMinutes) * time.Minute
}

// SubmitLockTTL bounds how long a crashed submission can hold the lock.
func (c Config) SubmitLockTTL() time.Duration {
	if c.SubmitLockSecond <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.SubmitLockSecond) * time.Second
}

func (c Config) CoreAPITimeout() time.Duration {
	if c.CoreAPITimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.CoreAPITimeoutSeconds) * time.Second
}
