package gifts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"merchstock-backend/internal/auth"
	"merchstock-backend/internal/database"
	"merchstock-backend/internal/models"
	"merchstock-backend/internal/stock"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(10000)&_txlock=immediate", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.GiftCategory{},
		&models.Gift{},
		&models.TakeReason{},
		&models.StockTransaction{},
	))
	return db
}

func createTestGift(t *testing.T, db *gorm.DB, qty int) *models.Gift {
	t.Helper()

	category := models.GiftCategory{Name: "Drinkware"}
	require.NoError(t, db.FirstOrCreate(&category, models.GiftCategory{Name: category.Name}).Error)

	gift := models.Gift{ProductName: "Branded Mug", CategoryID: category.ID, QtyStock: qty}
	require.NoError(t, db.Create(&gift).Error)
	return &gift
}

var testActor = stock.Actor{ID: 1, Name: "Test Staff"}

// A metadata save holding a quantity read before a concurrent adjustment
// committed must not roll the counter back: qty_stock is not among the
// columns a metadata edit writes.
func TestMetadataSavePreservesAdjustedCounter(t *testing.T) {
	db := newTestDB(t)
	gift := createTestGift(t, db, 10)

	// Stale copy read before the adjustment.
	var stale models.Gift
	require.NoError(t, db.First(&stale, gift.ID).Error)
	require.Equal(t, 10, stale.QtyStock)

	res, err := stock.Adjust(db, models.StockEntityGift, gift.ID, stock.Input{
		Direction: models.DirectionTake,
		Quantity:  3,
	}, testActor)
	require.NoError(t, err)
	require.Equal(t, 7, res.NewQuantity)

	stale.Notes = "updated after the fact"
	require.NoError(t, saveGiftMetadata(db, &stale))

	var reloaded models.Gift
	require.NoError(t, db.First(&reloaded, gift.ID).Error)
	assert.Equal(t, 7, reloaded.QtyStock)
	assert.Equal(t, "updated after the fact", reloaded.Notes)

	// The ledger still explains the counter exactly.
	var rows []models.StockTransaction
	require.NoError(t, db.
		Where("entity_type = ? AND entity_id = ?", models.StockEntityGift, gift.ID).
		Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, reloaded.QtyStock, rows[0].StockAfter)
}

func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	database.DB = db

	user := models.User{Name: "Test Staff", Email: "staff@example.com", PasswordHash: "x", Role: models.RoleStaff}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Unexpected server error"})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, user.ID)
		c.Locals(auth.CtxUserRoleKey, user.Role)
		return c.Next()
	})
	app.Patch("/api/gifts/:id", UpdateGiftHandler())
	return app
}

func TestUpdateGiftIgnoresStockField(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)
	gift := createTestGift(t, db, 10)

	// qty_stock in the body is not an editable field and must be ignored.
	payload := []byte(`{"notes":"new note","qty_stock":999}`)
	url := fmt.Sprintf("/api/gifts/%d", gift.ID)
	req := httptest.NewRequest(http.MethodPatch, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body GiftResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "new note", body.Notes)
	assert.Equal(t, 10, body.QtyStock)

	var reloaded models.Gift
	require.NoError(t, db.First(&reloaded, gift.ID).Error)
	assert.Equal(t, 10, reloaded.QtyStock)
}
