package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/farmapunto/pos-api/internal/application/sale"
	"github.com/farmapunto/pos-api/internal/domain/entity"
)

var _ sale.ProductoCache = (*RedisProductoCache)(nil)

// RedisProductoCache cache de catálogo sobre Redis para la ruta de cobro.
// Solo guarda productos (catálogo casi estático); nunca existencias ni saldos.
type RedisProductoCache struct {
	client *redis.Client
}

// NewRedisProductoCache construye el cache con su cliente Redis.
func NewRedisProductoCache(addr, password string, db int) *RedisProductoCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisProductoCache{client: client}
}

// Ping verifica la conexión.
func (c *RedisProductoCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisProductoCache) Close() error {
	return c.client.Close()
}

func clave(id string) string {
	return fmt.Sprintf("producto:%s", id)
}

// Get devuelve el producto cacheado, o (nil, false, nil) en miss.
func (c *RedisProductoCache) Get(ctx context.Context, id string) (*entity.Producto, bool, error) {
	val, err := c.client.Get(ctx, clave(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var p entity.Producto
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

// Set guarda el producto con TTL.
func (c *RedisProductoCache) Set(ctx context.Context, id string, p *entity.Producto, ttl time.Duration) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, clave(id), payload, ttl).Err()
}
