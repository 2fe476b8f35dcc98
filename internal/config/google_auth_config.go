package config

import "os"

type GGAuthConfig struct {
	// RequiredDomain restricts Google sign-in to one email domain when set.
	RequiredDomain string
}

func NewGGAuthConfig() *GGAuthConfig {
	return &GGAuthConfig{
		RequiredDomain: os.Getenv("GOOGLE_REQUIRED_DOMAIN"),
	}
}
