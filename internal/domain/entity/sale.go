package entity

import (
	"time"

	"github.com/farmapunto/pos-api/internal/domain/money"
)

// Venta es la cabecera de una venta cobrada. Se crea una sola vez, de forma
// atómica junto con sus detalles, y es inmutable después (las correcciones van
// por el proceso de devoluciones, fuera de este módulo).
type Venta struct {
	ID            string
	FarmaciaID    string
	ClienteID     *string // nil = público general
	CajeroID      string
	TicketID      *string // ticket de consulta cerrado por esta venta
	Fecha         time.Time
	Efectivo      money.Cents
	Tarjeta       money.Cents
	Transferencia money.Cents
	Monedero      money.Cents // cargo al monedero usado como pago
	Total         money.Cents
	Descuento     money.Cents // suma de descuentos de todas las líneas
	AbonoMonedero money.Cents // abono de lealtad generado por esta venta
}

// DetalleVenta es una línea de la venta con los snapshots que exigen los
// reportes: precio original, costo y la promoción que fijó el precio final.
type DetalleVenta struct {
	ID             string
	VentaID        string
	ProductoID     string
	Nombre         string
	Categoria      string
	Cantidad       int
	PrecioUnitario money.Cents // precio final por unidad, ya con descuentos
	Importe        money.Cents // PrecioUnitario × Cantidad
	Descuento      money.Cents
	AbonoMonedero  money.Cents
	PrecioOriginal money.Cents
	Costo          money.Cents
	Promocion      string // etiqueta: Lunes, Temporada, 3x2-Gratis, INAPAM-Cliente...
	Anotacion      string // detalle del descuento aplicado, p. ej. "10%+5%"
}
