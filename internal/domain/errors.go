package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// Errores del motor de ventas. Se detectan en la fase de validación o dentro de
// la transacción; en ambos casos rechazar la venta no deja efecto en el store.
var (
	ErrProductoNoEncontrado    = errors.New("producto no encontrado en inventario")
	ErrStockInsuficiente       = errors.New("existencia insuficiente")
	ErrPromoCantidadNoCoincide = errors.New("las unidades gratis declaradas no coinciden con la promoción de cantidad")
	ErrPagoDescuadrado         = errors.New("el pago recibido no coincide con el total de la venta")
	ErrMonederoInsuficiente    = errors.New("saldo de monedero insuficiente")
	ErrSinMonedero             = errors.New("el pago con monedero requiere un cliente registrado")
)

// Errores de ticket de consulta (cierre por cobro).
var (
	ErrTicketNoEncontrado = errors.New("ticket de consulta no encontrado")
	ErrTicketNoPorPagar   = errors.New("el ticket no está en estado por pagar")
	ErrTicketYaCobrado    = errors.New("el ticket ya tiene una venta ligada")
	ErrTicketDeOtroCajero = errors.New("el ticket está tomado por otro cajero")
)

// Errores de commit: la transacción completa se revierte y el store queda intacto.
// El caller debe recargar existencias y decidir si reintenta, nunca reenviar a ciegas.
var (
	ErrSobreventaConcurrente = errors.New("existencia modificada por una venta concurrente")
	ErrCierreTicketFallido   = errors.New("no se pudo cerrar el ticket junto con la venta")
)
