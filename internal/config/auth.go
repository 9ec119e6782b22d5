package config

import (
	"log"
	"os"
	"sync"
)

const devJWTSecret = "pathfinder-dev-secret"

type AuthConfig struct {
	JWTSecret string
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

// LoadAuthConfig reads JWT_SECRET. Outside production a fixed development
// secret is used when it is unset; in production an empty secret is fatal.
func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			if LoadAppConfig().IsProduction() {
				log.Fatal("JWT_SECRET must be set in production")
			}
			log.Println("Warning: JWT_SECRET not set, using development secret")
			secret = devJWTSecret
		}
		authConfig = &AuthConfig{JWTSecret: secret}
	})
	return authConfig
}
