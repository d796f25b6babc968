package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/stock"
)

// PurchaseHandler maneja solicitudes y aprobación de compras (protegido).
type PurchaseHandler struct {
	engine *stock.Engine
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(engine *stock.Engine) *PurchaseHandler {
	return &PurchaseHandler{engine: engine}
}

// Create godoc
// @Summary      Solicitar una compra
// @Description  Si el rol puede autoaprobar, la compra se recibe y suma stock en la misma operación.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "supplier, items"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	p, err := h.engine.CreatePurchase(c.Context(), actorFrom(c), in.ToMutation())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPurchase(p))
}

// Approve godoc
// @Summary      Aprobar una compra pendiente
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/approve [post]
func (h *PurchaseHandler) Approve(c *fiber.Ctx) error {
	p, err := h.engine.ApprovePurchase(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromPurchase(p))
}

// Reject godoc
// @Summary      Rechazar una compra pendiente
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/reject [post]
func (h *PurchaseHandler) Reject(c *fiber.Ctx) error {
	p, err := h.engine.RejectPurchase(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromPurchase(p))
}

// Get godoc
// @Summary      Obtener una compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	p, err := h.engine.GetPurchase(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromPurchase(p))
}

// List godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Pendiente | Aprobada | Rechazada"
// @Success      200  {array}  dto.PurchaseResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var q dto.PurchaseListQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	list, err := h.engine.ListPurchases(c.Context(), actorFrom(c), q.Status, q.Limit, q.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromPurchase(p))
	}
	return c.JSON(out)
}
