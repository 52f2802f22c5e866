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

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository (usable con pool o tx).
// Los montos se guardan como NUMERIC(12,2); el codec de shopspring/decimal
// hace la conversión y el dominio trabaja en centavos.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	query := `
		INSERT INTO ventas (id, farmacia_id, cliente_id, cajero_id, ticket_id, fecha,
			efectivo, tarjeta, transferencia, monedero, total, descuento, abono_monedero)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.FarmaciaID, venta.ClienteID, venta.CajeroID, venta.TicketID, venta.Fecha,
		venta.Efectivo.Decimal(), venta.Tarjeta.Decimal(), venta.Transferencia.Decimal(),
		venta.Monedero.Decimal(), venta.Total.Decimal(), venta.Descuento.Decimal(),
		venta.AbonoMonedero.Decimal(),
	)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CreateDetalle persiste una línea de la venta.
func (r *VentaRepo) CreateDetalle(d *entity.DetalleVenta) error {
	query := `
		INSERT INTO detalle_ventas (id, venta_id, producto_id, nombre, categoria, cantidad,
			precio_unitario, importe, descuento, abono_monedero, precio_original, costo,
			promocion, anotacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.VentaID, d.ProductoID, d.Nombre, d.Categoria, d.Cantidad,
		d.PrecioUnitario.Decimal(), d.Importe.Decimal(), d.Descuento.Decimal(),
		d.AbonoMonedero.Decimal(), d.PrecioOriginal.Decimal(), d.Costo.Decimal(),
		d.Promocion, d.Anotacion,
	)
	if err != nil {
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	query := `
		SELECT id, farmacia_id, cliente_id, cajero_id, ticket_id, fecha,
			efectivo, tarjeta, transferencia, monedero, total, descuento, abono_monedero
		FROM ventas WHERE id = $1`
	var v entity.Venta
	var efectivo, tarjeta, transferencia, monedero, total, descuento, abono decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.FarmaciaID, &v.ClienteID, &v.CajeroID, &v.TicketID, &v.Fecha,
		&efectivo, &tarjeta, &transferencia, &monedero, &total, &descuento, &abono,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	v.Efectivo = money.FromDecimal(efectivo)
	v.Tarjeta = money.FromDecimal(tarjeta)
	v.Transferencia = money.FromDecimal(transferencia)
	v.Monedero = money.FromDecimal(monedero)
	v.Total = money.FromDecimal(total)
	v.Descuento = money.FromDecimal(descuento)
	v.AbonoMonedero = money.FromDecimal(abono)
	return &v, nil
}

// GetDetalles devuelve las líneas de una venta en el orden en que se vendieron.
func (r *VentaRepo) GetDetalles(ventaID string) ([]*entity.DetalleVenta, error) {
	query := `
		SELECT id, venta_id, producto_id, nombre, categoria, cantidad,
			precio_unitario, importe, descuento, abono_monedero, precio_original, costo,
			promocion, anotacion
		FROM detalle_ventas WHERE venta_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("get detalles: %w", err)
	}
	defer rows.Close()

	var out []*entity.DetalleVenta
	for rows.Next() {
		var d entity.DetalleVenta
		var precio, importe, descuento, abono, original, costo decimal.Decimal
		if err := rows.Scan(
			&d.ID, &d.VentaID, &d.ProductoID, &d.Nombre, &d.Categoria, &d.Cantidad,
			&precio, &importe, &descuento, &abono, &original, &costo,
			&d.Promocion, &d.Anotacion,
		); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		d.PrecioUnitario = money.FromDecimal(precio)
		d.Importe = money.FromDecimal(importe)
		d.Descuento = money.FromDecimal(descuento)
		d.AbonoMonedero = money.FromDecimal(abono)
		d.PrecioOriginal = money.FromDecimal(original)
		d.Costo = money.FromDecimal(costo)
		out = append(out, &d)
	}
	return out, rows.Err()
}
