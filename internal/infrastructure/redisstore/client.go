// Package redisstore guarda los borradores de orden de servicio en Redis
// para que sobrevivan a reinicios y se compartan entre réplicas de la API.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewClient interpreta REDIS_URL y verifica la conexión.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: url inválida: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}
