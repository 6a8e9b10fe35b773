package config

import "os"

// Config holds the environment-driven settings for the server.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
}

// FromEnv reads the configuration from environment variables, applying
// development defaults for anything unset.
func FromEnv() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		MongoURI:      getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getenv("MONGODB_DATABASE", "roster"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
