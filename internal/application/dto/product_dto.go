package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// RecipeLineRequest línea de receta.
type RecipeLineRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"gt=0"`
	Unit         string          `json:"unit"`
}

// CreateProductRequest entrada para crear un producto con su receta.
type CreateProductRequest struct {
	Name              string              `json:"name" validate:"required,min=1,max=200"`
	Description       string              `json:"description"`
	Price             decimal.Decimal     `json:"price" validate:"gte=0"`
	BaseUnit          string              `json:"base_unit" validate:"omitempty,oneof=g ml unidades"`
	IsIngredient      bool                `json:"is_ingredient"`
	Category          string              `json:"category" validate:"omitempty,oneof=Producto Insumo"`
	RecipeYield       int                 `json:"recipe_yield" validate:"gte=0"`
	LossRate          decimal.Decimal     `json:"loss_rate" validate:"gte=0"`
	LowStockThreshold decimal.Decimal     `json:"low_stock_threshold" validate:"gte=0"`
	InitialStock      decimal.Decimal     `json:"initial_stock" validate:"gte=0"`
	Recipe            []RecipeLineRequest `json:"recipe" validate:"dive"`
}

// ToMutation convierte el request en la mutación del motor.
func (r CreateProductRequest) ToMutation() stock.NewProduct {
	recipe := make([]stock.RecipeLine, 0, len(r.Recipe))
	for _, l := range r.Recipe {
		recipe = append(recipe, stock.RecipeLine{IngredientID: l.IngredientID, Quantity: l.Quantity, Unit: l.Unit})
	}
	return stock.NewProduct{
		Name:              r.Name,
		Description:       r.Description,
		Price:             r.Price,
		BaseUnit:          entity.BaseUnit(r.BaseUnit),
		IsIngredient:      r.IsIngredient,
		Category:          r.Category,
		RecipeYield:       r.RecipeYield,
		LossRate:          r.LossRate,
		LowStockThreshold: r.LowStockThreshold,
		Recipe:            recipe,
		InitialStock:      r.InitialStock,
	}
}

// RecipeLinkResponse línea de receta en la salida.
type RecipeLinkResponse struct {
	IngredientID     string          `json:"ingredient_id"`
	IngredientName   string          `json:"ingredient_name"`
	QuantityPerBatch decimal.Decimal `json:"quantity_per_batch"`
	Unit             string          `json:"unit"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Description       string               `json:"description"`
	Price             decimal.Decimal      `json:"price"`
	Stock             decimal.Decimal      `json:"stock"`
	BaseUnit          string               `json:"base_unit"`
	IsIngredient      bool                 `json:"is_ingredient"`
	Category          string               `json:"category"`
	RecipeYield       int                  `json:"recipe_yield"`
	LossRate          decimal.Decimal      `json:"loss_rate"`
	LowStockThreshold decimal.Decimal      `json:"low_stock_threshold"`
	LowStock          bool                 `json:"low_stock"`
	Active            bool                 `json:"active"`
	Recipe            []RecipeLinkResponse `json:"recipe,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// FromProduct mapea la entidad.
func FromProduct(p *entity.Product, recipe []entity.RecipeLink) ProductResponse {
	out := ProductResponse{
		ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price, Stock: p.Stock,
		BaseUnit: string(p.BaseUnit), IsIngredient: p.IsIngredient, Category: p.Category,
		RecipeYield: p.RecipeYield, LossRate: p.LossRate, LowStockThreshold: p.LowStockThreshold,
		LowStock: p.LowStockThreshold.IsPositive() && p.Stock.LessThan(p.LowStockThreshold),
		Active:   p.Active, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
	for _, l := range recipe {
		out.Recipe = append(out.Recipe, RecipeLinkResponse{
			IngredientID: l.IngredientID, IngredientName: l.IngredientName,
			QuantityPerBatch: l.QuantityPerBatch, Unit: l.Unit,
		})
	}
	return out
}

// ProductListQuery filtros de GET /api/products.
type ProductListQuery struct {
	Ingredients string `query:"ingredients" validate:"omitempty,oneof=true false"`
	PageRequest
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
