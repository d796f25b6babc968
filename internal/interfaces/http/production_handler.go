package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/stock"
)

// ProductionHandler registra tandas de producción (protegido).
type ProductionHandler struct {
	engine *stock.Engine
}

// NewProductionHandler construye el handler.
func NewProductionHandler(engine *stock.Engine) *ProductionHandler {
	return &ProductionHandler{engine: engine}
}

// Create godoc
// @Summary      Producir productos consumiendo insumos según receta
// @Description  Todo o nada: si falta cualquier insumo no se modifica ningún stock.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductionRequest  true  "items product_id, quantity"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductionRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	run, err := h.engine.ProduceProduct(c.Context(), actorFrom(c), in.ToMutation())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProductionRun(run))
}
