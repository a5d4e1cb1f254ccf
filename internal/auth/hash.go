package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// KeyPrefix is prepended to all issued keys for easy identification.
const KeyPrefix = "rk_" // receipt key

// ErrInvalidKeyFormat indicates a key without the expected prefix.
var ErrInvalidKeyFormat = errors.New("invalid API key format")

// GenerateKey returns a new raw API key. The raw key is shown once and
// only its hash is stored.
func GenerateKey() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return KeyPrefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashKey hashes a raw key with the configured algorithm.
func HashKey(rawKey string, cfg Config) (string, error) {
	data := strings.TrimPrefix(rawKey, KeyPrefix)
	if data == rawKey {
		return "", ErrInvalidKeyFormat
	}
	if cfg.HashAlgorithm == "argon2" {
		return hashArgon2(data, cfg)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(data), cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

// VerifyKey checks a raw key against a stored hash, detecting the
// algorithm from the hash format.
func VerifyKey(rawKey, storedHash string, cfg Config) bool {
	data := strings.TrimPrefix(rawKey, KeyPrefix)
	if data == rawKey {
		return false
	}
	if strings.HasPrefix(storedHash, "$argon2") {
		return verifyArgon2(data, storedHash)
	}
	if strings.HasPrefix(storedHash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(data)) == nil
	}
	return false
}

func hashArgon2(data string, cfg Config) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	hash := argon2.IDKey([]byte(data), salt, cfg.Argon2Time, cfg.Argon2Memory, cfg.Argon2Threads, 32)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		cfg.Argon2Memory, cfg.Argon2Time, cfg.Argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

func verifyArgon2(data, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false
	}
	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(data), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
