package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/farmapunto/pos-api/internal/application/dto"
	"github.com/farmapunto/pos-api/internal/application/usecase"
	"github.com/farmapunto/pos-api/internal/domain"
)

// ClienteHandler consultas de clientes y monedero (protegido).
type ClienteHandler struct {
	uc *usecase.ClienteUseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *usecase.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// GetMonedero devuelve saldo y ledger del monedero de un cliente.
func (h *ClienteHandler) GetMonedero(c *fiber.Ctx) error {
	resp, err := h.uc.GetMonedero(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
