package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	Environment     string

	// Polling cadence for client-side consumers (chatwatch).
	MessagePollInterval  time.Duration
	ChatListPollInterval time.Duration
	BadgePollInterval    time.Duration
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		FirebaseProject:      getEnv("FIREBASE_PROJECT_ID", ""),
		Environment:          getEnv("ENVIRONMENT", "development"),
		MessagePollInterval:  getEnvAsDuration("MESSAGE_POLL_INTERVAL_MS", 3000),
		ChatListPollInterval: getEnvAsDuration("CHAT_LIST_POLL_INTERVAL_MS", 5000),
		BadgePollInterval:    getEnvAsDuration("BADGE_POLL_INTERVAL_MS", 10000),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultMillis int64) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		millis, err := strconv.ParseInt(value, 10, 64)
		if err == nil && millis > 0 {
			return time.Duration(millis) * time.Millisecond
		}
	}
	return time.Duration(defaultMillis) * time.Millisecond
}
