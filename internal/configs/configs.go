package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppURL                   string
	DatabaseDriver           string
	DatabaseDSN              string
	RateLimit                int
	RedisEnabled             bool
	RedisAddr                string
	TaskLockTTLSeconds       int
	JWTSecret                string
	JWTTTLHours              int
	KafkaBrokers             []string
	KafkaTopic               string
	EventWorkers             int
	EventQueueSize           int
	EventRedeliverySeconds   int
	EventRedeliveryBatchSize int
	ShutdownTimeoutSeconds   int
}

func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	var intErr error
	asInt := func(key string, defaultVal int) int {
		i, err := getEnvAsInt(key, defaultVal)
		if err != nil && intErr == nil {
			intErr = err
		}
		return i
	}

	cfg := Config{
		AppURL:                   fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:           strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
		DatabaseDSN:              getEnv("DATABASE_DSN", "skill_market.db"),
		RateLimit:                asInt("RATE_LIMIT_PER_MINUTE", 60),
		RedisEnabled:             getEnvAsBool("REDIS_ENABLED", false),
		RedisAddr:                fmt.Sprintf("%s:%s", redisHost, redisPort),
		TaskLockTTLSeconds:       asInt("TASK_LOCK_TTL_SECONDS", 5),
		JWTSecret:                getEnv("JWT_SECRET", ""),
		JWTTTLHours:              asInt("JWT_TTL_HOURS", 8),
		KafkaBrokers:             getEnvAsList("KAFKA_BROKERS"),
		KafkaTopic:               getEnv("KAFKA_TOPIC", "skill-market.lifecycle"),
		EventWorkers:             asInt("EVENT_WORKERS", 2),
		EventQueueSize:           asInt("EVENT_QUEUE_SIZE", 100),
		EventRedeliverySeconds:   asInt("EVENT_REDELIVERY_INTERVAL_SECONDS", 30),
		EventRedeliveryBatchSize: asInt("EVENT_REDELIVERY_BATCH_SIZE", 50),
		ShutdownTimeoutSeconds:   asInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	if intErr != nil {
		return Config{}, intErr
	}

	return cfg, validate(cfg)
}

func validate(cfg Config) error {
	switch {
	case cfg.AppURL == "":
		return errors.New("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	case cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres":
		return errors.New("DATABASE_DRIVER must be sqlite or postgres")
	case cfg.DatabaseDSN == "":
		return errors.New("DATABASE_DSN must not be empty")
	case cfg.RateLimit <= 0:
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	case cfg.TaskLockTTLSeconds <= 0:
		return errors.New("TASK_LOCK_TTL_SECONDS must be greater than 0")
	case len(cfg.JWTSecret) < 16:
		return errors.New("JWT_SECRET must be at least 16 characters")
	case cfg.JWTTTLHours <= 0:
		return errors.New("JWT_TTL_HOURS must be greater than 0")
	case len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "":
		return errors.New("KAFKA_TOPIC must not be empty when KAFKA_BROKERS is set")
	case cfg.EventWorkers <= 0:
		return errors.New("EVENT_WORKERS must be greater than 0")
	case cfg.EventQueueSize <= 0:
		return errors.New("EVENT_QUEUE_SIZE must be greater than 0")
	case cfg.EventRedeliverySeconds <= 0:
		return errors.New("EVENT_REDELIVERY_INTERVAL_SECONDS must be greater than 0")
	case cfg.EventRedeliveryBatchSize <= 0:
		return errors.New("EVENT_REDELIVERY_BATCH_SIZE must be greater than 0")
	case cfg.ShutdownTimeoutSeconds <= 0:
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return defaultVal
		}
		return b
	}
	return defaultVal
}

func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
