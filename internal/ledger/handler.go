package ledger

import (
	"errors"
	"fmt"
	"time"

	"merchstock-backend/internal/database"
	"merchstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ReasonResponse struct {
	ID         uint   `json:"id"`
	ReasonName string `json:"reason_name"`
}

type TransactionResponse struct {
	ID            uint            `json:"id"`
	EntityType    string          `json:"entity_type"`
	EntityID      uint            `json:"entity_id"`
	ProductID     *uint           `json:"product_id"`
	Direction     string          `json:"direction"`
	Quantity      int             `json:"quantity"`
	Reason        *ReasonResponse `json:"reason"`
	Note          string          `json:"note"`
	CreatedByID   uint            `json:"created_by_id"`
	CreatedByName string          `json:"created_by_name"`
	CreatedAt     string          `json:"created_at"`
	StockBefore   int             `json:"stock_before"`
	StockAfter    int             `json:"stock_after"`
}

func toResponse(r models.StockTransaction) TransactionResponse {
	resp := TransactionResponse{
		ID:            r.ID,
		EntityType:    string(r.EntityType),
		EntityID:      r.EntityID,
		ProductID:     r.ProductID,
		Direction:     string(r.Direction),
		Quantity:      r.Quantity,
		Note:          r.Note,
		CreatedByID:   r.CreatedByID,
		CreatedByName: r.CreatedByName,
		CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
		StockBefore:   r.StockBefore,
		StockAfter:    r.StockAfter,
	}
	if r.Reason != nil {
		resp.Reason = &ReasonResponse{ID: r.Reason.ID, ReasonName: r.Reason.ReasonName}
	}
	return resp
}

// filterFromQuery reads the shared query parameters of the list and export
// endpoints: entity_type, entity_id, product_id, direction, from, to.
func filterFromQuery(c *fiber.Ctx) (Filter, error) {
	var f Filter

	if v := c.Query("entity_type"); v != "" {
		kind := models.StockEntityKind(v)
		if kind != models.StockEntityGift && kind != models.StockEntityApparelVariant {
			return f, fiber.NewError(fiber.StatusBadRequest, "entity_type must be 'gift' or 'apparel_variant'")
		}
		f.EntityType = kind
	}
	if v := c.Query("entity_id"); v != "" {
		var id uint
		if _, err := fmt.Sscan(v, &id); err != nil || id == 0 {
			return f, fiber.NewError(fiber.StatusBadRequest, "entity_id is invalid")
		}
		f.EntityID = id
	}
	if v := c.Query("product_id"); v != "" {
		var id uint
		if _, err := fmt.Sscan(v, &id); err != nil || id == 0 {
			return f, fiber.NewError(fiber.StatusBadRequest, "product_id is invalid")
		}
		f.ProductID = id
	}
	if v := c.Query("direction"); v != "" {
		dir := models.TransactionDirection(v)
		if dir != models.DirectionTake && dir != models.DirectionReturn {
			return f, fiber.NewError(fiber.StatusBadRequest, "direction must be 'take' or 'return'")
		}
		f.Direction = dir
	}
	if v := c.Query("from"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "from must be 'YYYY-MM-DD'")
		}
		f.From = &d
	}
	if v := c.Query("to"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "to must be 'YYYY-MM-DD'")
		}
		// inclusive end of day
		end := d.AddDate(0, 0, 1).Add(-time.Second)
		f.To = &end
	}

	return f, nil
}

// GET /api/transactions
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
		if err != nil {
			return err
		}

		records, err := List(database.DB, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list transactions")
		}

		resp := make([]TransactionResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, toResponse(r))
		}
		return c.JSON(resp)
	}
}

// GET /api/transactions/reconcile?entity_type=gift&entity_id=1
func ReconcileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
		if err != nil {
			return err
		}
		if f.EntityType == "" || f.EntityID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "entity_type and entity_id are required")
		}

		result, err := Reconcile(database.DB, f.EntityType, f.EntityID)
		if err != nil {
			if errors.Is(err, ErrEntityNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not reconcile ledger")
		}

		return c.JSON(result)
	}
}

// GET /api/transactions/export
// Same filters as the list endpoint, result as an .xlsx workbook.
func ExportTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
		if err != nil {
			return err
		}

		records, err := List(database.DB, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list transactions")
		}

		buf, err := exportWorkbook(records)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build export file")
		}

		filename := fmt.Sprintf("stock-transactions-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(buf.Bytes())
	}
}
