package refdata

import (
	"strings"

	"merchstock-backend/internal/database"
	"merchstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type categoryRequest struct {
	Name string `json:"name"`
}

// GET /api/gift-categories
func ListGiftCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.GiftCategory
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list categories")
		}
		return c.JSON(categories)
	}
}

// POST /api/admin/gift-categories
func CreateGiftCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body categoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Category name is required")
		}

		category := models.GiftCategory{Name: body.Name}
		if err := database.DB.Create(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "A category with this name already exists")
		}
		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// PUT /api/admin/gift-categories/:id
func UpdateGiftCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var category models.GiftCategory
		if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		var body categoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Category name is required")
		}

		category.Name = body.Name
		if err := database.DB.Save(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "A category with this name already exists")
		}
		return c.JSON(category)
	}
}

// DELETE /api/admin/gift-categories/:id
func DeleteGiftCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var category models.GiftCategory
		if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		var inUse int64
		database.DB.Model(&models.Gift{}).Where("category_id = ?", category.ID).Count(&inUse)
		if inUse > 0 {
			return fiber.NewError(fiber.StatusConflict, "Category is in use by existing gifts")
		}

		if err := database.DB.Delete(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete category")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/apparel-categories
func ListApparelCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.ApparelCategory
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list categories")
		}
		return c.JSON(categories)
	}
}

// POST /api/admin/apparel-categories
func CreateApparelCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body categoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Category name is required")
		}

		category := models.ApparelCategory{Name: body.Name}
		if err := database.DB.Create(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "A category with this name already exists")
		}
		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// PUT /api/admin/apparel-categories/:id
func UpdateApparelCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var category models.ApparelCategory
		if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		var body categoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Category name is required")
		}

		category.Name = body.Name
		if err := database.DB.Save(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "A category with this name already exists")
		}
		return c.JSON(category)
	}
}

// DELETE /api/admin/apparel-categories/:id
func DeleteApparelCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var category models.ApparelCategory
		if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		var inUse int64
		database.DB.Model(&models.ApparelProduct{}).Where("category_id = ?", category.ID).Count(&inUse)
		if inUse > 0 {
			return fiber.NewError(fiber.StatusConflict, "Category is in use by existing products")
		}

		if err := database.DB.Delete(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete category")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
