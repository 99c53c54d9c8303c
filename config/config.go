package config

import (
	"fmt"
	"os"
)

// Config holds deployment-time settings read from the environment.
type Config struct {
	Port       string
	MongoURI   string
	MongoDB    string
	RedisAddr  string
	PoolRegion string
	PoolID     string

	// IdentityURL overrides the provider URL derived from region and pool id.
	IdentityURL string
}

func Load() Config {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		MongoURI:    getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getenv("MONGO_DB", "stagepass"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		PoolRegion:  getenv("POOL_REGION", "us-east-1"),
		PoolID:      os.Getenv("POOL_ID"),
		IdentityURL: os.Getenv("IDENTITY_URL"),
	}
	if cfg.Port == "" {
		cfg.Port = ":8080"
	} else if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IdentityBaseURL is the root of the hosted identity provider's API.
func (c Config) IdentityBaseURL() string {
	if c.IdentityURL != "" {
		return c.IdentityURL
	}
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", c.PoolRegion, c.PoolID)
}

// JWKSURL is the provider's published key-set endpoint.
func (c Config) JWKSURL() string {
	return c.IdentityBaseURL() + "/.well-known/jwks.json"
}
