package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/stock"
)

// SaleHandler registra ventas de caja (protegido).
type SaleHandler struct {
	engine *stock.Engine
}

// NewSaleHandler construye el handler.
func NewSaleHandler(engine *stock.Engine) *SaleHandler {
	return &SaleHandler{engine: engine}
}

// Create godoc
// @Summary      Registrar una venta y descontar stock
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "payment_method, items"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	sale, err := h.engine.RecordSale(c.Context(), actorFrom(c), in.ToMutation())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromSale(sale))
}
