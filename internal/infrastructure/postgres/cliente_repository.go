package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/farmapunto/pos-api/internal/domain/entity"
	"github.com/farmapunto/pos-api/internal/domain/money"
	"github.com/farmapunto/pos-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, nombre, telefono, inapam, saldo_monedero, creado_en, actualizado_en`

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = $1`
	return r.scanCliente(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el cliente bloqueando el renglón (SELECT FOR UPDATE)
// para revalidar y actualizar el saldo dentro de la transacción de venta.
func (r *ClienteRepo) GetForUpdate(id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = $1 FOR UPDATE`
	return r.scanCliente(r.q.QueryRow(context.Background(), query, id))
}

func (r *ClienteRepo) scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	var saldo decimal.Decimal
	err := row.Scan(&c.ID, &c.Nombre, &c.Telefono, &c.INAPAM, &saldo, &c.CreadoEn, &c.ActualizadoEn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	c.SaldoMonedero = money.FromDecimal(saldo)
	return &c, nil
}

// ActualizarSaldo fija el saldo cacheado del monedero. Solo se llama dentro de
// la transacción de venta, después de insertar el movimiento de ledger.
func (r *ClienteRepo) ActualizarSaldo(id string, saldo money.Cents) error {
	query := `UPDATE clientes SET saldo_monedero = $2, actualizado_en = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, saldo.Decimal())
	if err != nil {
		return fmt.Errorf("actualizar saldo: %w", err)
	}
	return nil
}

// CrearMovimiento inserta una entrada del ledger del monedero (solo-apéndice).
func (r *ClienteRepo) CrearMovimiento(mov *entity.MovimientoMonedero) error {
	query := `
		INSERT INTO movimientos_monedero (id, cliente_id, farmacia_id, abono, cargo, motivo, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.ClienteID, mov.FarmaciaID, mov.Abono.Decimal(), mov.Cargo.Decimal(), mov.Motivo, mov.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento monedero: %w", err)
	}
	return nil
}

// ListMovimientos devuelve el ledger del cliente, del más reciente al más antiguo.
func (r *ClienteRepo) ListMovimientos(clienteID string) ([]*entity.MovimientoMonedero, error) {
	query := `
		SELECT id, cliente_id, farmacia_id, abono, cargo, motivo, fecha
		FROM movimientos_monedero WHERE cliente_id = $1 ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query, clienteID)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var out []*entity.MovimientoMonedero
	for rows.Next() {
		var m entity.MovimientoMonedero
		var abono, cargo decimal.Decimal
		if err := rows.Scan(&m.ID, &m.ClienteID, &m.FarmaciaID, &abono, &cargo, &m.Motivo, &m.Fecha); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		m.Abono = money.FromDecimal(abono)
		m.Cargo = money.FromDecimal(cargo)
		out = append(out, &m)
	}
	return out, rows.Err()
}
