package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmapunto/pos-api/internal/application/sale"
	"github.com/farmapunto/pos-api/internal/domain/repository"
)

// Ensure TxRunner implements sale.VentaTxRunner.
var _ sale.VentaTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunVenta inicia una transacción, ejecuta fn con los repos de la venta atados
// a la tx y hace Commit o Rollback. Si fn retorna error no queda escritura alguna.
func (r *TxRunner) RunVenta(ctx context.Context, fn func(
	invRepo repository.InventarioRepository,
	ventaRepo repository.VentaRepository,
	clienteRepo repository.ClienteRepository,
	ticketRepo repository.TicketRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invRepo := NewInventarioRepository(tx)
	ventaRepo := NewVentaRepository(tx)
	clienteRepo := NewClienteRepository(tx)
	ticketRepo := NewTicketRepository(tx)

	if err := fn(invRepo, ventaRepo, clienteRepo, ticketRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
