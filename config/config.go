package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	BaseURL    string

	DatabaseDSN string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CloudinaryUrl string

	TrustVisionURL    string
	TrustVisionAPIKey string

	AccessSecret string

	RegistrationOpen bool
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	// registration is open unless explicitly switched off
	registrationOpen := os.Getenv("REGISTRATION_OPEN") != "false"

	return Config{
		ServerPort:        os.Getenv("SERVER_PORT"),
		BaseURL:           os.Getenv("BASE_URL"),
		DatabaseDSN:       os.Getenv("DATABASE_DSN"),
		KafkaBroker:       os.Getenv("KAFKA_BROKER"),
		KafkaTopic:        os.Getenv("KAFKA_TOPIC"),
		KafkaUsername:     os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:     os.Getenv("KAFKA_PASSWORD"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		CloudinaryUrl:     os.Getenv("CLOUDINARY_URL"),
		TrustVisionURL:    os.Getenv("TRUSTVISION_URL"),
		TrustVisionAPIKey: os.Getenv("TRUSTVISION_API_KEY"),
		AccessSecret:      os.Getenv("ACCESS_SECRET"),
		RegistrationOpen:  registrationOpen,
	}
}
