package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/farmapunto/pos-api/internal/domain/entity"
	"github.com/farmapunto/pos-api/internal/domain/money"
	"github.com/farmapunto/pos-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository (usable con pool o tx).
// La configuración de promociones vive en la columna jsonb promos.
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumns = `id, nombre, categoria, costo, aplica_inapam, promos, creado_en, actualizado_en`

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetLote obtiene varios productos en una sola consulta, indexados por ID.
func (r *ProductoRepo) GetLote(ids []string) (map[string]*entity.Producto, error) {
	if len(ids) == 0 {
		return map[string]*entity.Producto{}, nil
	}
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get productos lote: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*entity.Producto, len(ids))
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// List lista el catálogo completo ordenado por nombre.
func (r *ProductoRepo) List() ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	var costo decimal.Decimal
	var promos []byte
	err := row.Scan(&p.ID, &p.Nombre, &p.Categoria, &costo, &p.AplicaINAPAM, &promos, &p.CreadoEn, &p.ActualizadoEn)
	if err != nil {
		return nil, err
	}
	p.Costo = money.FromDecimal(costo)
	if len(promos) > 0 {
		if err := json.Unmarshal(promos, &p.Promos); err != nil {
			return nil, fmt.Errorf("promos jsonb: %w", err)
		}
	}
	return &p, nil
}
