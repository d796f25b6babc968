package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/xlsx"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	templatePageSize = 200
)

// InventoryHandler maneja ajustes manuales, conteos físicos y el historial de auditoría (protegido).
type InventoryHandler struct {
	engine *stock.Engine
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *stock.Engine) *InventoryHandler {
	return &InventoryHandler{engine: engine}
}

// Adjust godoc
// @Summary      Ajuste manual de inventario (Entrada/Salida)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, type, quantity, unit, reason"
// @Success      201   {object}  dto.InventoryChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	change, err := h.engine.AdjustInventory(c.Context(), actorFrom(c), in.ToMutation())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromInventoryChange(change))
}

// StockCount godoc
// @Summary      Conciliar un conteo físico
// @Description  Fija el stock de cada línea al valor contado y registra la diferencia.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockCountRequest  true  "líneas product_id, counted, unit"
// @Success      201   {object}  stock.CountResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-counts [post]
func (h *InventoryHandler) StockCount(c *fiber.Ctx) error {
	var in dto.StockCountRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	res, err := h.engine.ReconcileStockCount(c.Context(), actorFrom(c), in.ToMutation())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// ImportStockCount godoc
// @Summary      Conciliar un conteo físico desde Excel
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "planilla .xlsx (product_id, contado, unidad)"
// @Param        reason  formData  string  false  "motivo"
// @Success      201   {object}  stock.CountResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-counts/xlsx [post]
func (h *InventoryHandler) ImportStockCount(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo 'file' requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	lines, err := xlsx.ParseStockCount(f)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.engine.ReconcileStockCount(c.Context(), actorFrom(c), stock.StockCount{Lines: lines, Reason: c.FormValue("reason")})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// StockCountTemplate godoc
// @Summary      Planilla de conteo físico con el stock actual
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/inventory/stock-counts/template [get]
func (h *InventoryHandler) StockCountTemplate(c *fiber.Ctx) error {
	var products []*entity.Product
	for offset := 0; ; offset += templatePageSize {
		page, err := h.engine.ListProducts(c.Context(), repository.ProductFilter{Limit: templatePageSize, Offset: offset})
		if err != nil {
			return writeError(c, err)
		}
		products = append(products, page...)
		if len(page) < templatePageSize {
			break
		}
	}
	data, err := xlsx.StockCountTemplate(products)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="conteo.xlsx"`)
	return c.Send(data)
}

// Audit godoc
// @Summary      Historial de auditoría de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "producto"
// @Param        user_id      query  string  false  "empleado"
// @Param        change_type  query  string  false  "Entrada | Salida"
// @Param        kind         query  string  false  "entry, exit, sale, purchase_receipt, production, loss, initial_stock, stock_count"
// @Param        from         query  string  false  "RFC3339"
// @Param        to           query  string  false  "RFC3339"
// @Param        limit        query  int     false  "límite"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.AuditListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/audit [get]
func (h *InventoryHandler) Audit(c *fiber.Ctx) error {
	var q dto.AuditQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	filter := repository.AuditFilter{
		ProductID:  q.ProductID,
		UserID:     q.UserID,
		ChangeType: q.ChangeType,
		Kind:       entity.MutationKind(q.Kind),
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	if q.From != "" {
		t, _ := time.Parse(time.RFC3339, q.From)
		filter.From = &t
	}
	if q.To != "" {
		t, _ := time.Parse(time.RFC3339, q.To)
		filter.To = &t
	}
	records, err := h.engine.QueryAudit(c.Context(), actorFrom(c), filter)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.AuditRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, dto.FromAuditRecord(r))
	}
	return c.JSON(dto.AuditListResponse{Items: items, Page: dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset}})
}

// LowStock godoc
// @Summary      Reporte de stock bajo con cantidad sugerida de pedido
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   stock.LowStockItem
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.engine.LowStockReport(c.Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}
