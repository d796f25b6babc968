package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/stock"
)

// LossHandler registra y lista pérdidas (protegido).
type LossHandler struct {
	engine *stock.Engine
}

// NewLossHandler construye el handler.
func NewLossHandler(engine *stock.Engine) *LossHandler {
	return &LossHandler{engine: engine}
}

// Create godoc
// @Summary      Registrar una pérdida
// @Description  El descuento se trunca en cero si la pérdida supera el stock.
// @Tags         losses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LossRequest  true  "product_id, quantity, unit, category, description"
// @Success      201   {object}  dto.LossResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/losses [post]
func (h *LossHandler) Create(c *fiber.Ctx) error {
	var in dto.LossRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	rec, err := h.engine.RecordLoss(c.Context(), actorFrom(c), in.ToMutation())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromLossRecord(rec))
}

// List godoc
// @Summary      Listar pérdidas
// @Tags         losses
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "producto"
// @Param        limit       query  int     false  "límite"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {array}   dto.LossResponse
// @Router       /api/losses [get]
func (h *LossHandler) List(c *fiber.Ctx) error {
	var q dto.LossListQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	records, err := h.engine.ListLosses(c.Context(), actorFrom(c), q.ProductID, q.Limit, q.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.LossResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.FromLossRecord(r))
	}
	return c.JSON(out)
}
