package auth

import (
	"os"
	"strconv"
	"time"
)

// Config holds API-key authentication settings. Auth is off by default
// so the tool works unconfigured on a single desk; enabling it guards
// the generation endpoints when the service is shared.
type Config struct {
	Enabled bool
	// HashAlgorithm selects bcrypt or argon2 for stored key hashes.
	HashAlgorithm string
	BcryptCost    int
	Argon2Time    uint32
	Argon2Memory  uint32
	Argon2Threads uint8
	// SeedKeys are "label:rawkey" pairs, comma-separated, loaded at
	// boot. Raw keys are hashed immediately and never retained.
	SeedKeys string
	// RatePerMinute limits requests per authenticated key.
	RatePerMinute int
	RateWindow    time.Duration
}

func LoadConfig() Config {
	return Config{
		Enabled:       getBool("AUTH_ENABLED", false),
		HashAlgorithm: getenv("AUTH_HASH_ALGORITHM", "bcrypt"),
		BcryptCost:    getInt("AUTH_BCRYPT_COST", 12),
		Argon2Time:    uint32(getInt("AUTH_ARGON2_TIME", 1)),
		Argon2Memory:  uint32(getInt("AUTH_ARGON2_MEMORY", 64*1024)),
		Argon2Threads: uint8(getInt("AUTH_ARGON2_THREADS", 4)),
		SeedKeys:      getenv("AUTH_API_KEYS", ""),
		RatePerMinute: getInt("AUTH_RATE_PER_MIN", 60),
		RateWindow:    getDuration("AUTH_RATE_WINDOW", time.Minute),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
