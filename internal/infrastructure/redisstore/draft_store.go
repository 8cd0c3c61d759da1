package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain/order"
)

var _ serviceorder.DraftStore = (*DraftStore)(nil)

// DraftStore un Snapshot por clave, serializado en JSON, con TTL renovado en cada escritura.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewDraftStore construye el store; ttl <= 0 = sin vencimiento.
func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl, prefix: "taller:draft:"}
}

// WithPrefix cambia el prefijo de las claves (pruebas).
func (s *DraftStore) WithPrefix(prefix string) *DraftStore {
	s.prefix = prefix
	return s
}

func (s *DraftStore) key(id string) string { return s.prefix + id }

func (s *DraftStore) Save(ctx context.Context, id string, snap order.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("redis: serializar borrador: %w", err)
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, s.key(id), data, ttl).Err()
}

func (s *DraftStore) Load(ctx context.Context, id string) (*order.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap order.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("redis: borrador %s corrupto: %w", id, err)
	}
	return &snap, nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
