package sale

import (
	"context"
	"time"

	"github.com/farmapunto/pos-api/internal/domain/entity"
	"github.com/farmapunto/pos-api/internal/domain/repository"
)

// VentaTxRunner ejecuta una función dentro de una transacción con los repos que
// participan en el commit de la venta. Si fn retorna error, el runner hace
// rollback completo: ninguna escritura parcial queda visible.
type VentaTxRunner interface {
	RunVenta(ctx context.Context, fn func(
		invRepo repository.InventarioRepository,
		ventaRepo repository.VentaRepository,
		clienteRepo repository.ClienteRepository,
		ticketRepo repository.TicketRepository,
	) error) error
}

// ProductoCache cache de catálogo con TTL para la ruta de cobro (solo lectura:
// nunca cachea existencias ni saldos). Un miss regresa (nil, false, nil).
type ProductoCache interface {
	Get(ctx context.Context, id string) (*entity.Producto, bool, error)
	Set(ctx context.Context, id string, p *entity.Producto, ttl time.Duration) error
}
