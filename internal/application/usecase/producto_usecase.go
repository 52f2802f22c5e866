package usecase

import (
	"github.com/farmapunto/pos-api/internal/application/dto"
	"github.com/farmapunto/pos-api/internal/domain"
	"github.com/farmapunto/pos-api/internal/domain/entity"
	"github.com/farmapunto/pos-api/internal/domain/repository"
)

// ProductoUseCase lecturas de catálogo para caja (la administración del
// catálogo vive en otro módulo).
type ProductoUseCase struct {
	productoRepo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(productoRepo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{productoRepo: productoRepo}
}

// GetByID obtiene un producto del catálogo.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	p, err := uc.productoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductoResponse(p), nil
}

// List lista el catálogo completo.
func (uc *ProductoUseCase) List() ([]*dto.ProductoResponse, error) {
	productos, err := uc.productoRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		out = append(out, toProductoResponse(p))
	}
	return out, nil
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		Categoria:    p.Categoria,
		Costo:        p.Costo.Decimal(),
		AplicaINAPAM: p.AplicaINAPAM,
	}
}
