package entity

import (
	"time"

	"github.com/farmapunto/pos-api/internal/domain/money"
)

// Inventario es la existencia y el precio de venta de un producto en una farmacia.
// Invariante: Existencia >= 0 siempre; solo la reserva de inventario del motor de
// ventas la decrementa, y siempre con decremento condicional.
type Inventario struct {
	FarmaciaID    string
	ProductoID    string
	Existencia    int
	Precio        money.Cents // precio de venta en esta farmacia
	ActualizadoEn time.Time
}
