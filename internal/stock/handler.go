package stock

import (
	"errors"

	"merchstock-backend/internal/auth"
	"merchstock-backend/internal/database"
	"merchstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AdjustStockRequest struct {
	Direction string `json:"direction"`
	Quantity  int    `json:"quantity"`
	ReasonID  *uint  `json:"reason_id"`
	Note      string `json:"note"`
}

type AdjustStockResponse struct {
	NewQuantity int `json:"new_quantity"`
}

// AdjustStockHandler serves PATCH .../:id/stock for the given entity kind.
// Both catalogs share the same engine; only the kind differs per route.
func AdjustStockHandler(kind models.StockEntityKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityID, err := c.ParamsInt("id")
		if err != nil || entityID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid entity id")
		}

		var body AdjustStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		actor, err := ResolveActor(c)
		if err != nil {
			return err
		}

		in := Input{
			Direction: models.TransactionDirection(body.Direction),
			Quantity:  body.Quantity,
			ReasonID:  body.ReasonID,
			Note:      body.Note,
		}

		result, err := Adjust(database.DB, kind, uint(entityID), in, actor)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(AdjustStockResponse{NewQuantity: result.NewQuantity})
	}
}

// ResolveActor turns the authenticated principal from the request context
// into the explicit actor the engine requires.
func ResolveActor(c *fiber.Ctx) (Actor, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return Actor{}, fiber.NewError(fiber.StatusForbidden, "Could not resolve user")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return Actor{}, fiber.NewError(fiber.StatusInternalServerError, "User not found")
	}

	return Actor{ID: user.ID, Name: user.Name}, nil
}

func httpError(err error) error {
	var insufficient *InsufficientStockError
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &insufficient):
		return fiber.NewError(fiber.StatusConflict, insufficient.Error())
	case errors.Is(err, ErrAdjustmentAborted):
		return fiber.NewError(fiber.StatusServiceUnavailable, "Stock adjustment failed, please retry")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Could not adjust stock")
	}
}
