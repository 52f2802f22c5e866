package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farmapunto/pos-api/internal/domain/entity"
	"github.com/farmapunto/pos-api/internal/domain/money"
	"github.com/farmapunto/pos-api/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo implementación de InventarioRepository (usable con pool o tx).
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

// GetLote lee existencia y precio de varios productos de una farmacia en una
// sola consulta. Productos sin renglón no aparecen en el mapa.
func (r *InventarioRepo) GetLote(farmaciaID string, productoIDs []string) (map[string]*entity.Inventario, error) {
	if len(productoIDs) == 0 {
		return map[string]*entity.Inventario{}, nil
	}
	query := `
		SELECT producto_id, existencia, precio, actualizado_en
		FROM inventario
		WHERE farmacia_id = $1 AND producto_id = ANY($2)`
	rows, err := r.q.Query(context.Background(), query, farmaciaID, productoIDs)
	if err != nil {
		return nil, fmt.Errorf("get inventario lote: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*entity.Inventario, len(productoIDs))
	for rows.Next() {
		inv := entity.Inventario{FarmaciaID: farmaciaID}
		var precio decimal.Decimal
		if err := rows.Scan(&inv.ProductoID, &inv.Existencia, &precio, &inv.ActualizadoEn); err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		inv.Precio = money.FromDecimal(precio)
		out[inv.ProductoID] = &inv
	}
	return out, rows.Err()
}

// DescontarExistencia es el decremento condicional que sostiene el invariante
// existencia >= 0 bajo concurrencia: el UPDATE solo procede si la existencia
// alcanza. RowsAffected() == 0 significa que otra venta ganó la carrera entre la
// pre-validación y el commit; el caller debe abortar la transacción completa.
func (r *InventarioRepo) DescontarExistencia(farmaciaID, productoID string, cantidad int) (bool, error) {
	query := `
		UPDATE inventario
		SET existencia = existencia - $3, actualizado_en = now()
		WHERE farmacia_id = $1 AND producto_id = $2 AND existencia >= $3`
	tag, err := r.q.Exec(context.Background(), query, farmaciaID, productoID, cantidad)
	if err != nil {
		return false, fmt.Errorf("descontar existencia: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
