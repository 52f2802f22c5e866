package cache

import (
	"context"
	"time"

	"github.com/farmapunto/pos-api/internal/application/sale"
	"github.com/farmapunto/pos-api/internal/domain/entity"
)

var _ sale.ProductoCache = (NoopProductoCache{})

// NoopProductoCache se usa cuando no hay Redis configurado: todo es miss.
type NoopProductoCache struct{}

func (NoopProductoCache) Get(_ context.Context, _ string) (*entity.Producto, bool, error) {
	return nil, false, nil
}

func (NoopProductoCache) Set(_ context.Context, _ string, _ *entity.Producto, _ time.Duration) error {
	return nil
}
