package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/farmapunto/pos-api/internal/domain"
)

// Los códigos son contrato con los clientes del POS: distinguen reintentar
// (conflictos de commit) de corregir la captura (validaciones).
func TestCodigoVenta(t *testing.T) {
	casos := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrProductoNoEncontrado, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{domain.ErrStockInsuficiente, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrPromoCantidadNoCoincide, fiber.StatusUnprocessableEntity, "QUANTITY_PROMO_MISMATCH"},
		{domain.ErrPagoDescuadrado, fiber.StatusUnprocessableEntity, "PAYMENT_MISMATCH"},
		{domain.ErrMonederoInsuficiente, fiber.StatusUnprocessableEntity, "INSUFFICIENT_WALLET_FUNDS"},
		{domain.ErrSinMonedero, fiber.StatusUnprocessableEntity, "NO_WALLET_ACCOUNT"},
		{domain.ErrTicketNoEncontrado, fiber.StatusNotFound, "TICKET_NOT_FOUND"},
		{domain.ErrTicketNoPorPagar, fiber.StatusConflict, "TICKET_NOT_AWAITING_PAYMENT"},
		{domain.ErrTicketYaCobrado, fiber.StatusConflict, "TICKET_ALREADY_BILLED"},
		{domain.ErrTicketDeOtroCajero, fiber.StatusConflict, "TICKET_CLAIMED_BY_OTHER_CASHIER"},
		{domain.ErrSobreventaConcurrente, fiber.StatusConflict, "CONCURRENT_OVERSELL"},
		{domain.ErrCierreTicketFallido, fiber.StatusConflict, "TICKET_CLOSE_FAILED"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{errors.New("se cayó la base"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, c := range casos {
		status, code := codigoVenta(c.err)
		assert.Equal(t, c.status, status, c.code)
		assert.Equal(t, c.code, code, c.code)
	}
}

// Los errores envueltos con contexto conservan su código.
func TestCodigoVenta_ErroresEnvueltos(t *testing.T) {
	err := fmt.Errorf("%w: paracetamol (existencia 3, solicitado 5)", domain.ErrStockInsuficiente)
	status, code := codigoVenta(err)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", code)
}
