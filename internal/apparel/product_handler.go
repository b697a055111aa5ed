package apparel

import (
	"strings"

	"merchstock-backend/internal/database"
	"merchstock-backend/internal/models"
	"merchstock-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	ProductName     string  `json:"product_name"`
	CategoryID      uint    `json:"category_id"`
	ItemID          string  `json:"item_id"`
	Gender          string  `json:"gender"`
	Material        string  `json:"material"`
	Description     string  `json:"description"`
	HSCode          string  `json:"hs_code"`
	UnitPrice       float64 `json:"unit_price"`
	CountryOfOrigin string  `json:"country_of_origin"`
	Notes           string  `json:"notes"`
}

type UpdateProductRequest struct {
	ProductName     *string  `json:"product_name"`
	CategoryID      *uint    `json:"category_id"`
	ItemID          *string  `json:"item_id"`
	Gender          *string  `json:"gender"`
	Material        *string  `json:"material"`
	Description     *string  `json:"description"`
	HSCode          *string  `json:"hs_code"`
	UnitPrice       *float64 `json:"unit_price"`
	CountryOfOrigin *string  `json:"country_of_origin"`
	Notes           *string  `json:"notes"`
}

type ProductResponse struct {
	ID              uint              `json:"id"`
	ProductName     string            `json:"product_name"`
	CategoryID      uint              `json:"category_id"`
	CategoryName    string            `json:"category_name"`
	ItemID          string            `json:"item_id"`
	Gender          string            `json:"gender"`
	Material        string            `json:"material"`
	Description     string            `json:"description"`
	HSCode          string            `json:"hs_code"`
	UnitPrice       float64           `json:"unit_price"`
	CountryOfOrigin string            `json:"country_of_origin"`
	Notes           string            `json:"notes"`
	TotalStock      int               `json:"total_stock"`
	Variants        []VariantResponse `json:"variants,omitempty"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}

func toProductResponse(p models.ApparelProduct, withVariants bool) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID,
		ProductName:     p.ProductName,
		CategoryID:      p.CategoryID,
		CategoryName:    p.Category.Name,
		ItemID:          p.ItemID,
		Gender:          string(p.Gender),
		Material:        p.Material,
		Description:     p.Description,
		HSCode:          p.HSCode,
		UnitPrice:       p.UnitPrice,
		CountryOfOrigin: p.CountryOfOrigin,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, v := range p.Variants {
		resp.TotalStock += v.QtyStock
		if withVariants {
			resp.Variants = append(resp.Variants, toVariantResponse(v))
		}
	}
	return resp
}

func parseGender(raw string) (models.Gender, bool) {
	switch models.Gender(raw) {
	case models.GenderMen, models.GenderWomen, models.GenderUnisex, models.GenderYouth:
		return models.Gender(raw), true
	}
	return "", false
}

// GET /api/apparel/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var productList []models.ApparelProduct
		if err := database.DB.
			Preload("Category").
			Preload("Variants").
			Order("product_name asc").
			Find(&productList).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		resp := make([]ProductResponse, 0, len(productList))
		for _, p := range productList {
			resp = append(resp, toProductResponse(p, false))
		}
		return c.JSON(resp)
	}
}

// GET /api/apparel/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.ApparelProduct
		if err := database.DB.
			Preload("Category").
			Preload("Variants.Size").
			Preload("Variants.Color").
			First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return c.JSON(toProductResponse(product, true))
	}
}

// POST /api/apparel/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.ProductName = strings.TrimSpace(body.ProductName)
		if body.ProductName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
		}

		gender := models.GenderUnisex
		if body.Gender != "" {
			g, ok := parseGender(body.Gender)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid gender code")
			}
			gender = g
		}

		var category models.ApparelCategory
		if err := database.DB.First(&category, "id = ?", body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Category not found")
		}

		actor, err := stock.ResolveActor(c)
		if err != nil {
			return err
		}

		product := models.ApparelProduct{
			ProductName:     body.ProductName,
			CategoryID:      category.ID,
			ItemID:          body.ItemID,
			Gender:          gender,
			Material:        body.Material,
			Description:     body.Description,
			HSCode:          body.HSCode,
			UnitPrice:       body.UnitPrice,
			CountryOfOrigin: body.CountryOfOrigin,
			Notes:           body.Notes,
			CreatedByID:     &actor.ID,
			UpdatedByID:     &actor.ID,
		}
		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create product")
		}

		product.Category = category
		return c.Status(fiber.StatusCreated).JSON(toProductResponse(product, false))
	}
}

// PATCH /api/apparel/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.ApparelProduct
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ProductName != nil {
			name := strings.TrimSpace(*body.ProductName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Product name cannot be empty")
			}
			product.ProductName = name
		}
		if body.CategoryID != nil {
			var category models.ApparelCategory
			if err := database.DB.First(&category, "id = ?", *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Category not found")
			}
			product.CategoryID = category.ID
		}
		if body.Gender != nil {
			g, ok := parseGender(*body.Gender)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid gender code")
			}
			product.Gender = g
		}
		if body.ItemID != nil {
			product.ItemID = *body.ItemID
		}
		if body.Material != nil {
			product.Material = *body.Material
		}
		if body.Description != nil {
			product.Description = *body.Description
		}
		if body.HSCode != nil {
			product.HSCode = *body.HSCode
		}
		if body.UnitPrice != nil {
			product.UnitPrice = *body.UnitPrice
		}
		if body.CountryOfOrigin != nil {
			product.CountryOfOrigin = *body.CountryOfOrigin
		}
		if body.Notes != nil {
			product.Notes = *body.Notes
		}

		actor, err := stock.ResolveActor(c)
		if err != nil {
			return err
		}
		product.UpdatedByID = &actor.ID

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}

		database.DB.Preload("Category").Preload("Variants").First(&product, product.ID)
		return c.JSON(toProductResponse(product, false))
	}
}

// DELETE /api/apparel/products/:id
// Removes the product, all its variants and every ledger row belonging to
// those variants in one transaction.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.ApparelProduct
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.
				Where("entity_type = ? AND product_id = ?", models.StockEntityApparelVariant, product.ID).
				Delete(&models.StockTransaction{}).Error; err != nil {
				return err
			}
			if err := tx.
				Where("product_id = ?", product.ID).
				Delete(&models.ApparelVariant{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
