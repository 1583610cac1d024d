// Package redis stores graph descriptions in Redis as JSON documents.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/fsmgraph/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store keeps named graph descriptions under a key prefix, with a sorted-set index.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored graphs.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for graphs.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "fsmgraph:graph:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists desc under name.
func (s *Store) Save(ctx context.Context, name string, desc *domain.GraphDescription) error {
	if desc == nil {
		return domain.ErrNilDescription
	}
	if name == "" {
		return fmt.Errorf("graph name cannot be empty")
	}

	data, err := json.Marshal(desc)
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(name), data, s.ttl)

	// Score = expiry time, so List can prune lazily.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: name})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the description stored under name.
func (s *Store) Load(ctx context.Context, name string) (*domain.GraphDescription, error) {
	val, err := s.client.Get(ctx, s.key(name)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, name)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var desc domain.GraphDescription
	if err := json.Unmarshal([]byte(val), &desc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
	}
	if desc.Name == "" {
		desc.Name = name
	}
	return &desc, nil
}

// Delete removes the graph.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the names of stored graphs, dropping expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired graphs: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list graphs: %w", err)
	}
	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Graph binds the store to a single name as a ports.GraphStore.
func (s *Store) Graph(name string) *Graph {
	return &Graph{store: s, name: name}
}

// Graph is a named view over a Store.
type Graph struct {
	store *Store
	name  string
}

func (g *Graph) Load(ctx context.Context) (*domain.GraphDescription, error) {
	return g.store.Load(ctx, g.name)
}

func (g *Graph) Store(ctx context.Context, desc *domain.GraphDescription) error {
	return g.store.Save(ctx, g.name, desc)
}
