package apparel

import (
	"errors"

	"merchstock-backend/internal/database"
	"merchstock-backend/internal/models"
	"merchstock-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateVariantRequest struct {
	ProductID         uint     `json:"product_id"`
	SizeID            uint     `json:"size_id"`
	ColorID           uint     `json:"color_id"`
	QtyStock          int      `json:"qty_stock"`
	MinimumStockLevel *int     `json:"minimum_stock_level"`
	SKU               string   `json:"sku"`
	Weight            *float64 `json:"weight"`
}

// UpdateVariantRequest changes descriptive fields only. Size and color are
// part of the variant identity, replacing them means a different variant.
type UpdateVariantRequest struct {
	MinimumStockLevel *int     `json:"minimum_stock_level"`
	SKU               *string  `json:"sku"`
	Weight            *float64 `json:"weight"`
}

type VariantResponse struct {
	ID                uint     `json:"id"`
	ProductID         uint     `json:"product_id"`
	ProductName       string   `json:"product_name,omitempty"`
	SizeID            uint     `json:"size_id"`
	SizeValue         string   `json:"size_value"`
	ColorID           uint     `json:"color_id"`
	ColorName         string   `json:"color_name"`
	QtyStock          int      `json:"qty_stock"`
	MinimumStockLevel int      `json:"minimum_stock_level"`
	SKU               string   `json:"sku"`
	Weight            *float64 `json:"weight"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// variantMetadataColumns: what a metadata edit may write. qty_stock stays out
// so a stale read can never undo a concurrent stock adjustment.
var variantMetadataColumns = []string{
	"minimum_stock_level", "sku", "weight", "updated_by_id",
}

func saveVariantMetadata(db *gorm.DB, variant *models.ApparelVariant) error {
	return db.Model(variant).Select(variantMetadataColumns).Updates(variant).Error
}

func toVariantResponse(v models.ApparelVariant) VariantResponse {
	return VariantResponse{
		ID:                v.ID,
		ProductID:         v.ProductID,
		ProductName:       v.Product.ProductName,
		SizeID:            v.SizeID,
		SizeValue:         v.Size.SizeValue,
		ColorID:           v.ColorID,
		ColorName:         v.Color.ColorName,
		QtyStock:          v.QtyStock,
		MinimumStockLevel: v.MinimumStockLevel,
		SKU:               v.SKU,
		Weight:            v.Weight,
		CreatedAt:         v.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         v.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/apparel/variants?product_id=
func ListVariantsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.
			Preload("Product").
			Preload("Size").
			Preload("Color").
			Joins("JOIN apparel_sizes ON apparel_sizes.id = apparel_variants.size_id").
			Order("apparel_variants.product_id asc, apparel_sizes.display_order asc")

		if productID := c.QueryInt("product_id"); productID > 0 {
			query = query.Where("apparel_variants.product_id = ?", productID)
		}

		var variantList []models.ApparelVariant
		if err := query.Find(&variantList).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list variants")
		}

		resp := make([]VariantResponse, 0, len(variantList))
		for _, v := range variantList {
			resp = append(resp, toVariantResponse(v))
		}
		return c.JSON(resp)
	}
}

// GET /api/apparel/variants/:id
func GetVariantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var variant models.ApparelVariant
		if err := database.DB.
			Preload("Product").
			Preload("Size").
			Preload("Color").
			First(&variant, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Variant not found")
		}
		return c.JSON(toVariantResponse(variant))
	}
}

// POST /api/apparel/variants
func CreateVariantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateVariantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.QtyStock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stock quantity cannot be negative")
		}

		var product models.ApparelProduct
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Product not found")
		}
		var size models.ApparelSize
		if err := database.DB.First(&size, "id = ?", body.SizeID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Size not found")
		}
		var color models.ApparelColor
		if err := database.DB.First(&color, "id = ?", body.ColorID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Color not found")
		}

		var existing models.ApparelVariant
		err := database.DB.
			Where("product_id = ? AND size_id = ? AND color_id = ?", product.ID, size.ID, color.ID).
			First(&existing).Error
		if err == nil {
			return fiber.NewError(fiber.StatusConflict, "A variant with this size and color already exists for the product")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not check existing variants")
		}

		actor, err := stock.ResolveActor(c)
		if err != nil {
			return err
		}

		variant := models.ApparelVariant{
			ProductID:         product.ID,
			SizeID:            size.ID,
			ColorID:           color.ID,
			QtyStock:          body.QtyStock,
			MinimumStockLevel: 5,
			SKU:               body.SKU,
			Weight:            body.Weight,
			CreatedByID:       &actor.ID,
			UpdatedByID:       &actor.ID,
		}
		if body.MinimumStockLevel != nil {
			variant.MinimumStockLevel = *body.MinimumStockLevel
		}

		if err := database.DB.Create(&variant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create variant")
		}

		variant.Product = product
		variant.Size = size
		variant.Color = color
		return c.Status(fiber.StatusCreated).JSON(toVariantResponse(variant))
	}
}

// PATCH /api/apparel/variants/:id
func UpdateVariantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var variant models.ApparelVariant
		if err := database.DB.First(&variant, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Variant not found")
		}

		var body UpdateVariantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.MinimumStockLevel != nil {
			variant.MinimumStockLevel = *body.MinimumStockLevel
		}
		if body.SKU != nil {
			variant.SKU = *body.SKU
		}
		if body.Weight != nil {
			variant.Weight = body.Weight
		}

		actor, err := stock.ResolveActor(c)
		if err != nil {
			return err
		}
		variant.UpdatedByID = &actor.ID

		if err := saveVariantMetadata(database.DB, &variant); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update variant")
		}

		database.DB.Preload("Product").Preload("Size").Preload("Color").First(&variant, variant.ID)
		return c.JSON(toVariantResponse(variant))
	}
}

// DELETE /api/apparel/variants/:id
func DeleteVariantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var variant models.ApparelVariant
		if err := database.DB.First(&variant, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Variant not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.
				Where("entity_type = ? AND entity_id = ?", models.StockEntityApparelVariant, variant.ID).
				Delete(&models.StockTransaction{}).Error; err != nil {
				return err
			}
			return tx.Delete(&variant).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete variant")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
