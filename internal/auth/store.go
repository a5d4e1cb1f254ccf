package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrUnknownKey indicates no stored key matched.
var ErrUnknownKey = errors.New("unknown API key")

// Client is the authenticated caller a key belongs to.
type Client struct {
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

// KeyStore validates raw keys against stored hashes.
type KeyStore interface {
	Validate(rawKey string) (Client, error)
	Add(label, rawKey string) error
}

// InMemoryKeyStore keeps hashed keys in memory, seeded from the
// environment at boot.
type InMemoryKeyStore struct {
	mu      sync.RWMutex
	cfg     Config
	clients map[string]Client // key hash -> client
}

func NewInMemoryKeyStore(cfg Config) *InMemoryKeyStore {
	return &InMemoryKeyStore{
		cfg:     cfg,
		clients: map[string]Client{},
	}
}

// SeedFromConfig loads "label:rawkey" pairs from cfg.SeedKeys.
func (s *InMemoryKeyStore) SeedFromConfig() error {
	if s.cfg.SeedKeys == "" {
		return nil
	}
	for _, pair := range strings.Split(s.cfg.SeedKeys, ",") {
		label, rawKey, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			return fmt.Errorf("malformed key entry %q, want label:rawkey", pair)
		}
		if err := s.Add(label, rawKey); err != nil {
			return fmt.Errorf("seed key %q: %w", label, err)
		}
	}
	return nil
}

func (s *InMemoryKeyStore) Add(label, rawKey string) error {
	hash, err := HashKey(rawKey, s.cfg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[hash] = Client{Label: label, CreatedAt: time.Now().UTC()}
	return nil
}

func (s *InMemoryKeyStore) Validate(rawKey string) (Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for hash, client := range s.clients {
		if VerifyKey(rawKey, hash, s.cfg) {
			return client, nil
		}
	}
	return Client{}, ErrUnknownKey
}
