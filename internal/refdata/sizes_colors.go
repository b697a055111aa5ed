package refdata

import (
	"strings"

	"merchstock-backend/internal/database"
	"merchstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type sizeRequest struct {
	SizeValue    string `json:"size_value"`
	SizeType     string `json:"size_type"`
	DisplayOrder int    `json:"display_order"`
}

type colorRequest struct {
	ColorName string `json:"color_name"`
	HexCode   string `json:"hex_code"`
}

func parseSizeType(raw string) (models.SizeType, bool) {
	switch models.SizeType(raw) {
	case models.SizeTypeClothing, models.SizeTypeFootwear, models.SizeTypeAccessory:
		return models.SizeType(raw), true
	}
	return "", false
}

// GET /api/sizes?size_type=
func ListSizesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Order("size_type asc, display_order asc")
		if raw := c.Query("size_type"); raw != "" {
			sizeType, ok := parseSizeType(raw)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid size type")
			}
			query = query.Where("size_type = ?", sizeType)
		}

		var sizes []models.ApparelSize
		if err := query.Find(&sizes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list sizes")
		}
		return c.JSON(sizes)
	}
}

// POST /api/admin/sizes
func CreateSizeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body sizeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.SizeValue = strings.TrimSpace(body.SizeValue)
		if body.SizeValue == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Size value is required")
		}
		sizeType, ok := parseSizeType(body.SizeType)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid size type")
		}

		size := models.ApparelSize{
			SizeValue:    body.SizeValue,
			SizeType:     sizeType,
			DisplayOrder: body.DisplayOrder,
		}
		if err := database.DB.Create(&size).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "This size already exists for the given type")
		}
		return c.Status(fiber.StatusCreated).JSON(size)
	}
}

// DELETE /api/admin/sizes/:id
func DeleteSizeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var size models.ApparelSize
		if err := database.DB.First(&size, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Size not found")
		}

		var inUse int64
		database.DB.Model(&models.ApparelVariant{}).Where("size_id = ?", size.ID).Count(&inUse)
		if inUse > 0 {
			return fiber.NewError(fiber.StatusConflict, "Size is in use by existing variants")
		}

		if err := database.DB.Delete(&size).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete size")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/colors
func ListColorsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var colors []models.ApparelColor
		if err := database.DB.Order("color_name asc").Find(&colors).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list colors")
		}
		return c.JSON(colors)
	}
}

// POST /api/admin/colors
func CreateColorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body colorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.ColorName = strings.TrimSpace(body.ColorName)
		if body.ColorName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Color name is required")
		}

		color := models.ApparelColor{ColorName: body.ColorName, HexCode: body.HexCode}
		if err := database.DB.Create(&color).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "A color with this name already exists")
		}
		return c.Status(fiber.StatusCreated).JSON(color)
	}
}

// DELETE /api/admin/colors/:id
func DeleteColorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var color models.ApparelColor
		if err := database.DB.First(&color, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Color not found")
		}

		var inUse int64
		database.DB.Model(&models.ApparelVariant{}).Where("color_id = ?", color.ID).Count(&inUse)
		if inUse > 0 {
			return fiber.NewError(fiber.StatusConflict, "Color is in use by existing variants")
		}

		if err := database.DB.Delete(&color).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete color")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
