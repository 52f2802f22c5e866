package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaVentaRequest una línea del carrito. Las unidades gratis de una promoción
// de cantidad se envían como línea aparte con precio_unitario = 0.
type LineaVentaRequest struct {
	ProductoID     string          `json:"producto_id" validate:"required,uuid"`
	Cantidad       int             `json:"cantidad" validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CrearVentaRequest entrada para cobrar una venta. Los montos se reciben en
// decimales y se convierten a centavos antes de conciliar.
type CrearVentaRequest struct {
	FarmaciaID      string              `json:"farmacia_id" validate:"required,uuid"`
	ClienteID       string              `json:"cliente_id" validate:"omitempty,uuid"`
	TicketID        string              `json:"ticket_id" validate:"omitempty,uuid"`
	DescuentoINAPAM bool                `json:"descuento_inapam"`
	Lineas          []LineaVentaRequest `json:"lineas" validate:"required,min=1"`
	Efectivo        decimal.Decimal     `json:"efectivo"`
	Tarjeta         decimal.Decimal     `json:"tarjeta"`
	Transferencia   decimal.Decimal     `json:"transferencia"`
	Monedero        decimal.Decimal     `json:"monedero"`
}

// DetalleVentaResponse una línea de la venta persistida.
type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Nombre         string          `json:"nombre"`
	Categoria      string          `json:"categoria"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Importe        decimal.Decimal `json:"importe"`
	Descuento      decimal.Decimal `json:"descuento"`
	AbonoMonedero  decimal.Decimal `json:"abono_monedero"`
	PrecioOriginal decimal.Decimal `json:"precio_original"`
	Promocion      string          `json:"promocion"`
	Anotacion      string          `json:"anotacion,omitempty"`
}

// VentaResponse la venta cobrada con sus totales calculados.
type VentaResponse struct {
	ID            string                 `json:"id"`
	FarmaciaID    string                 `json:"farmacia_id"`
	ClienteID     string                 `json:"cliente_id,omitempty"`
	CajeroID      string                 `json:"cajero_id"`
	TicketID      string                 `json:"ticket_id,omitempty"`
	Fecha         time.Time              `json:"fecha"`
	Efectivo      decimal.Decimal        `json:"efectivo"`
	Tarjeta       decimal.Decimal        `json:"tarjeta"`
	Transferencia decimal.Decimal        `json:"transferencia"`
	Monedero      decimal.Decimal        `json:"monedero"`
	Total         decimal.Decimal        `json:"total"`
	Descuento     decimal.Decimal        `json:"descuento"`
	AbonoMonedero decimal.Decimal        `json:"abono_monedero"`
	Detalles      []DetalleVentaResponse `json:"detalles"`
}
