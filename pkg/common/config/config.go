package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	ServerHost     string
	ServerPort     string
	ConsumerPort   string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers []string
	KafkaGroupID string

	// Queues
	QueueSendName         string
	NotificationQueueName string

	// EMIAS consumer cache
	CacheSavingMinutes int

	// External EMIAS service
	EmiasURL            string
	EmiasRequestTimeout time.Duration

	// JWT
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTTTL      time.Duration

	// Notifications
	NotificationTemplatesPath string
}

func Load() *Config {
	return &Config{
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ConsumerPort:   getEnv("CONSUMER_PORT", "8090"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "analysis"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "analysis123"),
		PostgresDB:       getEnv("POSTGRES_DB", "analysis"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers: getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "analysis-platform"),

		QueueSendName:         getEnv("QUEUE_SEND_NAME", "analysis-results"),
		NotificationQueueName: getEnv("NOTIFICATION_QUEUE_NAME", "analysis-notifications"),

		CacheSavingMinutes: getIntEnv("CACHE_SAVING_MINUTES", 60),

		EmiasURL:            getEnv("EMIAS_URL", "http://localhost:8090"),
		EmiasRequestTimeout: getDuration("EMIAS_REQUEST_TIMEOUT", 10*time.Second),

		JWTSecret:   getEnv("JWT_SECRET", "local-development-secret"),
		JWTIssuer:   getEnv("JWT_ISSUER", "analysis-platform"),
		JWTAudience: getEnv("JWT_AUDIENCE", "analysis-api"),
		JWTTTL:      getDuration("JWT_TTL", time.Hour),

		NotificationTemplatesPath: getEnv("NOTIFICATION_TEMPLATES_PATH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
