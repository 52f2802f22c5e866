package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/farmapunto/pos-api/internal/application/dto"
	"github.com/farmapunto/pos-api/internal/application/sale"
	"github.com/farmapunto/pos-api/internal/domain"
)

// VentaHandler maneja el cobro de ventas (protegido).
type VentaHandler struct {
	uc *sale.CrearVentaUseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *sale.CrearVentaUseCase) *VentaHandler {
	return &VentaHandler{uc: uc}
}

// codigoVenta mapea cada error del motor de ventas a su código estable. Los
// clientes distinguen por código; el mensaje lleva el detalle legible.
// Los códigos de commit (CONCURRENT_OVERSELL, TICKET_CLOSE_FAILED) indican que
// la transacción se revirtió completa: recargar existencias antes de reintentar.
func codigoVenta(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProductoNoEncontrado):
		return fiber.StatusNotFound, "PRODUCT_NOT_FOUND"
	case errors.Is(err, domain.ErrStockInsuficiente):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrPromoCantidadNoCoincide):
		return fiber.StatusUnprocessableEntity, "QUANTITY_PROMO_MISMATCH"
	case errors.Is(err, domain.ErrPagoDescuadrado):
		return fiber.StatusUnprocessableEntity, "PAYMENT_MISMATCH"
	case errors.Is(err, domain.ErrMonederoInsuficiente):
		return fiber.StatusUnprocessableEntity, "INSUFFICIENT_WALLET_FUNDS"
	case errors.Is(err, domain.ErrSinMonedero):
		return fiber.StatusUnprocessableEntity, "NO_WALLET_ACCOUNT"
	case errors.Is(err, domain.ErrTicketNoEncontrado):
		return fiber.StatusNotFound, "TICKET_NOT_FOUND"
	case errors.Is(err, domain.ErrTicketNoPorPagar):
		return fiber.StatusConflict, "TICKET_NOT_AWAITING_PAYMENT"
	case errors.Is(err, domain.ErrTicketYaCobrado):
		return fiber.StatusConflict, "TICKET_ALREADY_BILLED"
	case errors.Is(err, domain.ErrTicketDeOtroCajero):
		return fiber.StatusConflict, "TICKET_CLAIMED_BY_OTHER_CASHIER"
	case errors.Is(err, domain.ErrSobreventaConcurrente):
		return fiber.StatusConflict, "CONCURRENT_OVERSELL"
	case errors.Is(err, domain.ErrCierreTicketFallido):
		return fiber.StatusConflict, "TICKET_CLOSE_FAILED"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// CrearVenta cobra una venta completa (precios, pago, inventario, monedero,
// ticket) como unidad atómica.
func (h *VentaHandler) CrearVenta(c *fiber.Ctx) error {
	cajeroID := GetUserID(c)
	if cajeroID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CrearVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CrearVenta(c.Context(), cajeroID, in)
	if err != nil {
		status, code := codigoVenta(err)
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetVenta obtiene una venta cobrada con su detalle.
func (h *VentaHandler) GetVenta(c *fiber.Ctx) error {
	resp, err := h.uc.GetVenta(c.Context(), c.Params("id"))
	if err != nil {
		status, code := codigoVenta(err)
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	}
	return c.JSON(resp)
}
