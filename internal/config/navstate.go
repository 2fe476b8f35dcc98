package config

import (
	"os"
	"strconv"
	"time"
)

type NavStateConfig struct {
	TTL time.Duration
}

func NewNavStateConfig() *NavStateConfig {
	ttlHours := os.Getenv("NAV_STATE_TTL_HOURS")
	varInt, err := strconv.Atoi(ttlHours)
	if err != nil {
		varInt = 24
	}
	return &NavStateConfig{
		TTL: time.Duration(varInt) * time.Hour,
	}
}
