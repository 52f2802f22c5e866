package entity

import (
	"time"

	"github.com/farmapunto/pos-api/internal/domain/money"
	"github.com/farmapunto/pos-api/internal/domain/promo"
)

// Producto es un artículo del catálogo. El catálogo es propiedad del módulo de
// administración; para el motor de ventas es solo lectura. El costo unitario se
// copia a cada línea de venta como snapshot para reportes de margen.
type Producto struct {
	ID           string
	Nombre       string
	Categoria    string
	Costo        money.Cents
	AplicaINAPAM bool
	Promos       promo.Config
	CreadoEn     time.Time
	ActualizadoEn time.Time
}
