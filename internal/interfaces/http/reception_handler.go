package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrostock/agrostock-api/internal/application/dto"
	"github.com/agrostock/agrostock-api/internal/application/procurement"
)

// ReceptionHandler maneja las peticiones HTTP de recepciones de mercancía (protegido).
type ReceptionHandler struct {
	postUC *procurement.PostReceiptUseCase
}

// NewReceptionHandler construye el handler.
func NewReceptionHandler(postUC *procurement.PostReceiptUseCase) *ReceptionHandler {
	return &ReceptionHandler{postUC: postUC}
}

// Create godoc
// @Summary      Registrar recepción de mercancía contra una orden de compra
// @Tags         receptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "purchase_order_id, details (línea de orden + cantidad), notes, received_date"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/receptions [post]
func (h *ReceptionHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := procurement.PostReceiptInput{
		PurchaseOrderID: in.PurchaseOrderID,
		ReceivedByID:    userID, // del token, nunca del body
		Notes:           in.Notes,
		ReceivedDate:    in.ReceivedDate,
	}
	for _, d := range in.Details {
		input.Details = append(input.Details, procurement.ReceiptLineInput{
			PurchaseOrderDetailID: d.PurchaseOrderDetailID,
			Quantity:              d.Quantity,
			Notes:                 d.Notes,
		})
	}

	resp, err := h.postUC.PostReceipt(c.Context(), input)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Obtener una recepción con sus relaciones expandidas
// @Tags         receptions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receptions/{id} [get]
func (h *ReceptionHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.postUC.GetReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// ListByOrder godoc
// @Summary      Listar las recepciones de una orden de compra
// @Tags         receptions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receptions [get]
func (h *ReceptionHandler) ListByOrder(c *fiber.Ctx) error {
	list, err := h.postUC.ListReceiptsByOrder(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "receptions": list})
}
