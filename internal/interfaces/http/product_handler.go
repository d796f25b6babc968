package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	engine *stock.Engine
}

// NewProductHandler construye el handler.
func NewProductHandler(engine *stock.Engine) *ProductHandler {
	return &ProductHandler{engine: engine}
}

// Create godoc
// @Summary      Crear producto o insumo con su receta
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	p, err := h.engine.CreateProductWithRecipe(c.Context(), actorFrom(c), in.ToMutation())
	if err != nil {
		return writeError(c, err)
	}
	recipe, err := h.engine.GetProductRecipe(c.Context(), p.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProduct(p, recipe))
}

// GetByID godoc
// @Summary      Obtener producto por ID con su receta
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	p, err := h.engine.GetProduct(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	recipe, err := h.engine.GetProductRecipe(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromProduct(p, recipe))
}

// List godoc
// @Summary      Listar productos activos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        ingredients  query  string  false  "true = solo insumos, false = solo productos"
// @Param        limit        query  int     false  "límite"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	filter := repository.ProductFilter{Limit: q.Limit, Offset: q.Offset}
	if q.Ingredients != "" {
		only := q.Ingredients == "true"
		filter.IngredientsOnly = &only
	}
	list, err := h.engine.ListProducts(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p, nil))
	}
	return c.JSON(dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}})
}

// Delete godoc
// @Summary      Desactivar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.engine.DeleteProduct(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
