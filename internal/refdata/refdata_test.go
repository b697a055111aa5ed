package refdata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"merchstock-backend/internal/database"
	"merchstock-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.GiftCategory{},
		&models.Gift{},
		&models.ApparelCategory{},
		&models.ApparelSize{},
		&models.ApparelColor{},
		&models.ApparelProduct{},
		&models.ApparelVariant{},
		&models.TakeReason{},
		&models.StockTransaction{},
	))
	require.NoError(t, database.SeedReferenceData(db))
	database.DB = db

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Unexpected server error"})
		},
	})
	app.Get("/api/sizes", ListSizesHandler())
	app.Get("/api/take-reasons", ListReasonsHandler())
	return app
}

func getJSON(t *testing.T, app *fiber.App, url string, out interface{}) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestListSizesOrdering(t *testing.T) {
	app := newTestApp(t)

	var sizes []models.ApparelSize
	getJSON(t, app, "/api/sizes?size_type=clothing", &sizes)

	require.Len(t, sizes, 9)
	assert.Equal(t, "XS", sizes[0].SizeValue)
	assert.Equal(t, "5XL", sizes[8].SizeValue)
	for i := 1; i < len(sizes); i++ {
		assert.Greater(t, sizes[i].DisplayOrder, sizes[i-1].DisplayOrder)
	}
}

func TestListSizesRejectsUnknownType(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sizes?size_type=hats", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListReasonsScopeIncludesShared(t *testing.T) {
	app := newTestApp(t)

	giftOnly := models.TakeReason{ReasonName: "Gift Restock Correction", AppliesTo: models.ReasonScopeGifts}
	require.NoError(t, database.DB.Create(&giftOnly).Error)
	apparelOnly := models.TakeReason{ReasonName: "Uniform Issue", AppliesTo: models.ReasonScopeApparel}
	require.NoError(t, database.DB.Create(&apparelOnly).Error)

	var reasons []models.TakeReason
	getJSON(t, app, "/api/take-reasons?applies_to=gifts", &reasons)

	names := make([]string, 0, len(reasons))
	for _, r := range reasons {
		assert.NotEqual(t, models.ReasonScopeApparel, r.AppliesTo)
		names = append(names, r.ReasonName)
	}
	assert.Contains(t, names, "Gift Restock Correction")
	assert.Contains(t, names, "Other") // seeded shared reason
	assert.NotContains(t, names, "Uniform Issue")

	// alphabetical
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1], names[i])
	}
}
