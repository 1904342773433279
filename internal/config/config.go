package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBLogLevel string

	HTTPAddr      string
	GinMode       string
	SessionSecret string
	SessionStore  string
	RedisHost     string
	RedisPort     string

	LogLevel  string
	LogFormat string

	DashboardWindowDays int
	ReminderWindowDays  int
}

var defaults = map[string]any{
	"DB_DRIVER":             "sqlite",
	"DB_PATH":               "student_tasks.db",
	"DB_HOST":               "localhost",
	"DB_PORT":               "",
	"DB_USER":               "taskuser",
	"DB_PASSWORD":           "taskpassword",
	"DB_NAME":               "student_tasks",
	"DB_LOG_LEVEL":          "warn",
	"HTTP_ADDR":             "127.0.0.1:8080",
	"GIN_MODE":              "debug",
	"SESSION_SECRET":        "default-secret-key-change-me",
	"SESSION_STORE":         "cookie",
	"REDIS_HOST":            "localhost",
	"REDIS_PORT":            "6379",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "console",
	"DASHBOARD_WINDOW_DAYS": 14,
	"REMINDER_WINDOW_DAYS":  3,
}

// Load reads configuration from defaults, an optional .env file and the environment.
func Load() *Config {
	envFile := os.Getenv("TASKTRACKER_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("config: could not load %s: %v", envFile, err)
	}

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		DBDriver:   v.GetString("DB_DRIVER"),
		DBPath:     v.GetString("DB_PATH"),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBLogLevel: v.GetString("DB_LOG_LEVEL"),

		HTTPAddr:      v.GetString("HTTP_ADDR"),
		GinMode:       v.GetString("GIN_MODE"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		SessionStore:  v.GetString("SESSION_STORE"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		DashboardWindowDays: v.GetInt("DASHBOARD_WINDOW_DAYS"),
		ReminderWindowDays:  v.GetInt("REMINDER_WINDOW_DAYS"),
	}
}
