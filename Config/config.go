package Config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds every externally injected value. It is resolved exactly once
// at process start; nothing else in the codebase reads the environment.
type Config struct {
	AppPort      string
	GinMode      string
	AllowOrigins []string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string

	ApiSecret          string
	TokenLifespanHours int

	FirebaseCredentialsPath string
	WhatsappBridgeURL       string
	GreenAPIInstance        string
	GreenAPIToken           string
}

var (
	config *Config
	once   sync.Once
)

// Load reads the .env file (if present) and returns the singleton Config.
func Load() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}

		lifespan, err := strconv.Atoi(getEnv("TOKEN_HOUR_LIFESPAN", "24"))
		if err != nil {
			lifespan = 24
		}

		config = &Config{
			AppPort:      getEnv("APP_PORT", "3005"),
			GinMode:      getEnv("GIN_MODE", "debug"),
			AllowOrigins: strings.Split(getEnv("ALLOW_ORIGINS", "http://localhost:3000"), ","),

			DBHost:     getEnv("DB_HOST", "localhost"),
			DBUser:     os.Getenv("DB_USER"),
			DBPassword: os.Getenv("DB_PASSWORD"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     getEnv("DB_PORT", "5432"),

			RedisAddr:     os.Getenv("REDIS_ADDR"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),

			ApiSecret:          os.Getenv("API_SECRET"),
			TokenLifespanHours: lifespan,

			FirebaseCredentialsPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
			WhatsappBridgeURL:       getEnv("WHATSAPP_BRIDGE_URL", "http://localhost:3000"),
			GreenAPIInstance:        os.Getenv("GREEN_API_INSTANCE"),
			GreenAPIToken:           os.Getenv("GREEN_API_TOKEN"),
		}
	})
	return config
}

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}
