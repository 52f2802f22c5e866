package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmapunto/pos-api/internal/domain/entity"
	"github.com/farmapunto/pos-api/internal/domain/repository"
)

var _ repository.FarmaciaRepository = (*FarmaciaRepo)(nil)

// FarmaciaRepo implementación de FarmaciaRepository (usable con pool o tx).
type FarmaciaRepo struct {
	q Querier
}

// NewFarmaciaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFarmaciaRepository(q Querier) *FarmaciaRepo {
	return &FarmaciaRepo{q: q}
}

// GetByID obtiene una sucursal por ID.
func (r *FarmaciaRepo) GetByID(id string) (*entity.Farmacia, error) {
	query := `
		SELECT id, nombre, direccion, zona_horaria, creado_en
		FROM farmacias WHERE id = $1`
	var f entity.Farmacia
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.Nombre, &f.Direccion, &f.ZonaHoraria, &f.CreadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get farmacia: %w", err)
	}
	return &f, nil
}
