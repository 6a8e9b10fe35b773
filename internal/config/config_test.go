package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DATABASE", "")

	cfg := FromEnv()

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.MongoDatabase != "roster" {
		t.Errorf("Expected default database roster, got %s", cfg.MongoDatabase)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DATABASE", "roster_staging")

	cfg := FromEnv()

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://db:27017" {
		t.Errorf("Expected overridden URI, got %s", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "roster_staging" {
		t.Errorf("Expected database roster_staging, got %s", cfg.MongoDatabase)
	}
}
