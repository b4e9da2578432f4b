package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"

	"tixmarket/pkg/logger"
)

// Store persists the active configuration document. Load never fails for a
// missing document; it returns Defaults instead.
type Store interface {
	Load(ctx context.Context) (Config, error)
	Save(ctx context.Context, cfg Config) error
}

type memoryStore struct {
	mu  sync.RWMutex
	cfg Config
}

func NewMemoryStore() Store {
	return &memoryStore{cfg: Defaults()}
}

func (s *memoryStore) Load(ctx context.Context) (Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, nil
}

func (s *memoryStore) Save(ctx context.Context, cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	return nil
}

// fileStore keeps the document as indented JSON on disk.
type fileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Load(ctx context.Context) (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Defaults()
		if err := s.write(cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}

	cfg, err := Decode(data)
	if err != nil {
		logger.GetDefault().WithError(err).Warn("Stored configuration unreadable, using defaults", "path", s.path)
		return Defaults(), nil
	}
	return cfg, nil
}

func (s *fileStore) Save(ctx context.Context, cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(cfg)
}

func (s *fileStore) write(cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

// redisStore shares the document between processes under a single key.
type redisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) Store {
	return &redisStore{client: client, key: key}
}

func (s *redisStore) Load(ctx context.Context) (Config, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return Defaults(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to load configuration from redis: %w", err)
	}
	cfg, err := Decode(val)
	if err != nil {
		logger.GetDefault().WithError(err).Warn("Stored configuration unreadable, using defaults", "key", s.key)
		return Defaults(), nil
	}
	return cfg, nil
}

func (s *redisStore) Save(ctx context.Context, cfg Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save configuration to redis: %w", err)
	}
	return nil
}
