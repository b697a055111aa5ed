package gifts

import (
	"strings"

	"merchstock-backend/internal/database"
	"merchstock-backend/internal/models"
	"merchstock-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateGiftRequest struct {
	ProductName       string  `json:"product_name"`
	CategoryID        uint    `json:"category_id"`
	QtyStock          int     `json:"qty_stock"`
	MinimumStockLevel *int    `json:"minimum_stock_level"`
	Description       string  `json:"description"`
	Material          string  `json:"material"`
	UnitPrice         float64 `json:"unit_price"`
	HSCode            string  `json:"hs_code"`
	CountryOfOrigin   string  `json:"country_of_origin"`
	SupplierName      string  `json:"supplier_name"`
	SupplierEmail     string  `json:"supplier_email"`
	SupplierAddress   string  `json:"supplier_address"`
	Notes             string  `json:"notes"`
}

// UpdateGiftRequest: metadata only. Stock is deliberately absent, the counter
// is only reachable through the adjustment endpoint so every change lands in
// the ledger.
type UpdateGiftRequest struct {
	ProductName       *string  `json:"product_name"`
	CategoryID        *uint    `json:"category_id"`
	MinimumStockLevel *int     `json:"minimum_stock_level"`
	Description       *string  `json:"description"`
	Material          *string  `json:"material"`
	UnitPrice         *float64 `json:"unit_price"`
	HSCode            *string  `json:"hs_code"`
	CountryOfOrigin   *string  `json:"country_of_origin"`
	SupplierName      *string  `json:"supplier_name"`
	SupplierEmail     *string  `json:"supplier_email"`
	SupplierAddress   *string  `json:"supplier_address"`
	Notes             *string  `json:"notes"`
}

type GiftResponse struct {
	ID                uint    `json:"id"`
	ProductName       string  `json:"product_name"`
	CategoryID        uint    `json:"category_id"`
	CategoryName      string  `json:"category_name"`
	QtyStock          int     `json:"qty_stock"`
	MinimumStockLevel int     `json:"minimum_stock_level"`
	Description       string  `json:"description"`
	Material          string  `json:"material"`
	UnitPrice         float64 `json:"unit_price"`
	HSCode            string  `json:"hs_code"`
	CountryOfOrigin   string  `json:"country_of_origin"`
	SupplierName      string  `json:"supplier_name"`
	SupplierEmail     string  `json:"supplier_email"`
	SupplierAddress   string  `json:"supplier_address"`
	Notes             string  `json:"notes"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// giftMetadataColumns: every column a metadata edit may write. qty_stock is
// deliberately absent, so an adjustment committing between the handler's read
// and its write can never be reverted by the stale in-memory value.
var giftMetadataColumns = []string{
	"product_name", "category_id", "minimum_stock_level", "description",
	"material", "unit_price", "hs_code", "country_of_origin",
	"supplier_name", "supplier_email", "supplier_address", "notes",
	"updated_by_id",
}

func saveGiftMetadata(db *gorm.DB, gift *models.Gift) error {
	return db.Model(gift).Select(giftMetadataColumns).Updates(gift).Error
}

func toResponse(g models.Gift) GiftResponse {
	return GiftResponse{
		ID:                g.ID,
		ProductName:       g.ProductName,
		CategoryID:        g.CategoryID,
		CategoryName:      g.Category.Name,
		QtyStock:          g.QtyStock,
		MinimumStockLevel: g.MinimumStockLevel,
		Description:       g.Description,
		Material:          g.Material,
		UnitPrice:         g.UnitPrice,
		HSCode:            g.HSCode,
		CountryOfOrigin:   g.CountryOfOrigin,
		SupplierName:      g.SupplierName,
		SupplierEmail:     g.SupplierEmail,
		SupplierAddress:   g.SupplierAddress,
		Notes:             g.Notes,
		CreatedAt:         g.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         g.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/gifts
func ListGiftsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var giftList []models.Gift
		if err := database.DB.
			Preload("Category").
			Order("product_name asc").
			Find(&giftList).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list gifts")
		}

		resp := make([]GiftResponse, 0, len(giftList))
		for _, g := range giftList {
			resp = append(resp, toResponse(g))
		}
		return c.JSON(resp)
	}
}

// GET /api/gifts/:id
func GetGiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var gift models.Gift
		if err := database.DB.Preload("Category").First(&gift, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gift not found")
		}
		return c.JSON(toResponse(gift))
	}
}

// POST /api/gifts
func CreateGiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateGiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.ProductName = strings.TrimSpace(body.ProductName)
		if body.ProductName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
		}
		if body.QtyStock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stock quantity cannot be negative")
		}

		var category models.GiftCategory
		if err := database.DB.First(&category, "id = ?", body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Category not found")
		}

		actor, err := stock.ResolveActor(c)
		if err != nil {
			return err
		}

		gift := models.Gift{
			ProductName:       body.ProductName,
			CategoryID:        category.ID,
			QtyStock:          body.QtyStock,
			MinimumStockLevel: 10,
			Description:       body.Description,
			Material:          body.Material,
			UnitPrice:         body.UnitPrice,
			HSCode:            body.HSCode,
			CountryOfOrigin:   body.CountryOfOrigin,
			SupplierName:      body.SupplierName,
			SupplierEmail:     body.SupplierEmail,
			SupplierAddress:   body.SupplierAddress,
			Notes:             body.Notes,
			CreatedByID:       &actor.ID,
			UpdatedByID:       &actor.ID,
		}
		if body.MinimumStockLevel != nil {
			gift.MinimumStockLevel = *body.MinimumStockLevel
		}

		if err := database.DB.Create(&gift).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create gift")
		}

		gift.Category = category
		return c.Status(fiber.StatusCreated).JSON(toResponse(gift))
	}
}

// PATCH /api/gifts/:id
func UpdateGiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var gift models.Gift
		if err := database.DB.First(&gift, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gift not found")
		}

		var body UpdateGiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ProductName != nil {
			name := strings.TrimSpace(*body.ProductName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Product name cannot be empty")
			}
			gift.ProductName = name
		}
		if body.CategoryID != nil {
			var category models.GiftCategory
			if err := database.DB.First(&category, "id = ?", *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Category not found")
			}
			gift.CategoryID = category.ID
		}
		if body.MinimumStockLevel != nil {
			gift.MinimumStockLevel = *body.MinimumStockLevel
		}
		if body.Description != nil {
			gift.Description = *body.Description
		}
		if body.Material != nil {
			gift.Material = *body.Material
		}
		if body.UnitPrice != nil {
			gift.UnitPrice = *body.UnitPrice
		}
		if body.HSCode != nil {
			gift.HSCode = *body.HSCode
		}
		if body.CountryOfOrigin != nil {
			gift.CountryOfOrigin = *body.CountryOfOrigin
		}
		if body.SupplierName != nil {
			gift.SupplierName = *body.SupplierName
		}
		if body.SupplierEmail != nil {
			gift.SupplierEmail = *body.SupplierEmail
		}
		if body.SupplierAddress != nil {
			gift.SupplierAddress = *body.SupplierAddress
		}
		if body.Notes != nil {
			gift.Notes = *body.Notes
		}

		actor, err := stock.ResolveActor(c)
		if err != nil {
			return err
		}
		gift.UpdatedByID = &actor.ID

		if err := saveGiftMetadata(database.DB, &gift); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update gift")
		}

		database.DB.Preload("Category").First(&gift, gift.ID)
		return c.JSON(toResponse(gift))
	}
}

// DELETE /api/gifts/:id
// Deleting a gift removes its ledger rows with it. This breaks historical
// audit continuity for that entity and is an accepted trade-off.
func DeleteGiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var gift models.Gift
		if err := database.DB.First(&gift, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gift not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.
				Where("entity_type = ? AND entity_id = ?", models.StockEntityGift, gift.ID).
				Delete(&models.StockTransaction{}).Error; err != nil {
				return err
			}
			return tx.Delete(&gift).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete gift")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
