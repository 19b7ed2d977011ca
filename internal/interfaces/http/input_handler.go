package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrostock/agrostock-api/internal/application/dto"
	"github.com/agrostock/agrostock-api/internal/application/usecase"
)

// InputHandler maneja las peticiones HTTP del directorio de insumos (protegido).
// Stock y costo son de solo lectura aquí.
type InputHandler struct {
	uc *usecase.InputUseCase
}

// NewInputHandler construye el handler.
func NewInputHandler(uc *usecase.InputUseCase) *InputHandler {
	return &InputHandler{uc: uc}
}

// Create crea un insumo con stock y costo en cero.
func (h *InputHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInputRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID obtiene un insumo.
func (h *InputHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// List lista insumos.
func (h *InputHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "inputs": list})
}
