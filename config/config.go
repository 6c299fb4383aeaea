package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	StaffAccessCode   string `mapstructure:"STAFF_ACCESS_CODE"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisCheckInDB int    `mapstructure:"REDIS_CHECKIN_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Seat engine tuning.
	StrictReserve     bool `mapstructure:"STRICT_RESERVE"`
	HoldTTLMinutes    int  `mapstructure:"HOLD_TTL_MINUTES"`
	StaleAfterHours   int  `mapstructure:"STALE_AFTER_HOURS"`
	CheckInTTLMinutes int  `mapstructure:"CHECKIN_TTL_MINUTES"`

	// Sweep cadence (cron expressions for the asynq scheduler).
	ExpirySweepSpec string `mapstructure:"EXPIRY_SWEEP_SPEC"`
	StaleSweepSpec  string `mapstructure:"STALE_SWEEP_SPEC"`

	// Firebase Cloud Messaging.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
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

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_CHECKIN_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "shuttle")
	viper.SetDefault("STRICT_RESERVE", false)
	viper.SetDefault("HOLD_TTL_MINUTES", 5)
	viper.SetDefault("STALE_AFTER_HOURS", 24)
	viper.SetDefault("CHECKIN_TTL_MINUTES", 15)
	viper.SetDefault("EXPIRY_SWEEP_SPEC", "@every 5m")
	viper.SetDefault("STALE_SWEEP_SPEC", "@every 1h")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// HoldTTL returns the configured hold lifetime.
func HoldTTL() time.Duration {
	if AppConfig.HoldTTLMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(AppConfig.HoldTTLMinutes) * time.Minute
}

// StaleAfter returns how long a booking may wait for staff verification
// before the stale sweep cancels it.
func StaleAfter() time.Duration {
	if AppConfig.StaleAfterHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(AppConfig.StaleAfterHours) * time.Hour
}

// CheckInTTL returns how long an issued check-in code stays redeemable.
func CheckInTTL() time.Duration {
	if AppConfig.CheckInTTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(AppConfig.CheckInTTLMinutes) * time.Minute
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
