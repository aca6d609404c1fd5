package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type ServiceConfig struct {
	DatabaseURL       string
	TelegramToken     string
	NotifyPollSeconds int64
}

var instance *ServiceConfig
var once sync.Once

func GetServiceConfig() *ServiceConfig {
	once.Do(func() {
		instance = &ServiceConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Infof("no .env file loaded: %s", err.Error())
		}

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get db url")
		}

		// Empty token disables notification delivery; rows still queue up.
		instance.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")

		instance.NotifyPollSeconds = getEnvAsInt("NOTIFY_POLL_SECONDS", 30)
		if instance.NotifyPollSeconds <= 0 {
			instance.NotifyPollSeconds = 30
		}
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
