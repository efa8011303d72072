package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes. Firebase verifies Google sign-in ID tokens; local issues its
// own HMAC tokens for development and tests.
const (
	AuthModeFirebase = "firebase"
	AuthModeLocal    = "local"
)

type Config struct {
	ServerAddress string
	AuthMode      string
	JWTSecret     string
	JWTExpiration time.Duration

	FirebaseProjectID       string
	FirebaseCredentialsJSON string

	MongoURI string
	MongoDB  string

	DataDir       string
	PublicBaseURL string
}

func Load() *Config {
	// Optional .env for local development.
	_ = godotenv.Load()

	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		AuthMode:      getEnv("AUTH_MODE", AuthModeFirebase),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration: 24 * time.Hour,

		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),

		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getEnv("MONGO_DB", "pickleconnect"),

		DataDir:       getEnv("DATA_DIR", "./data"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}
}

// UseMongo reports whether the document store is Mongo or the local
// file-backed fallback.
func (c *Config) UseMongo() bool {
	return c.MongoURI != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
