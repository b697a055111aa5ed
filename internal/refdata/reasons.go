package refdata

import (
	"strings"

	"merchstock-backend/internal/database"
	"merchstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type reasonRequest struct {
	ReasonName string `json:"reason_name"`
	AppliesTo  string `json:"applies_to"`
}

func parseReasonScope(raw string) (models.ReasonScope, bool) {
	switch models.ReasonScope(raw) {
	case models.ReasonScopeGifts, models.ReasonScopeApparel, models.ReasonScopeBoth:
		return models.ReasonScope(raw), true
	}
	return "", false
}

// GET /api/take-reasons?applies_to=
// Filtering by scope also returns the shared "both" reasons, those are valid
// for either catalog.
func ListReasonsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Order("reason_name asc")
		if raw := c.Query("applies_to"); raw != "" {
			scope, ok := parseReasonScope(raw)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid reason scope")
			}
			if scope != models.ReasonScopeBoth {
				query = query.Where("applies_to IN ?", []models.ReasonScope{scope, models.ReasonScopeBoth})
			}
		}

		var reasons []models.TakeReason
		if err := query.Find(&reasons).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list reasons")
		}
		return c.JSON(reasons)
	}
}

// POST /api/admin/take-reasons
func CreateReasonHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body reasonRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.ReasonName = strings.TrimSpace(body.ReasonName)
		if body.ReasonName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Reason name is required")
		}

		scope := models.ReasonScopeBoth
		if body.AppliesTo != "" {
			s, ok := parseReasonScope(body.AppliesTo)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid reason scope")
			}
			scope = s
		}

		reason := models.TakeReason{ReasonName: body.ReasonName, AppliesTo: scope}
		if err := database.DB.Create(&reason).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "A reason with this name already exists")
		}
		return c.Status(fiber.StatusCreated).JSON(reason)
	}
}

// PUT /api/admin/take-reasons/:id
func UpdateReasonHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var reason models.TakeReason
		if err := database.DB.First(&reason, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reason not found")
		}

		var body reasonRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if name := strings.TrimSpace(body.ReasonName); name != "" {
			reason.ReasonName = name
		}
		if body.AppliesTo != "" {
			scope, ok := parseReasonScope(body.AppliesTo)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid reason scope")
			}
			reason.AppliesTo = scope
		}

		if err := database.DB.Save(&reason).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "A reason with this name already exists")
		}
		return c.JSON(reason)
	}
}

// DELETE /api/admin/take-reasons/:id
// Historical ledger rows keep their reason reference, so a reason that has
// ever been used cannot be removed.
func DeleteReasonHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var reason models.TakeReason
		if err := database.DB.First(&reason, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reason not found")
		}

		var inUse int64
		database.DB.Model(&models.StockTransaction{}).Where("reason_id = ?", reason.ID).Count(&inUse)
		if inUse > 0 {
			return fiber.NewError(fiber.StatusConflict, "Reason is referenced by existing transactions")
		}

		if err := database.DB.Delete(&reason).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete reason")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
