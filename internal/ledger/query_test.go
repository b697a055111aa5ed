package ledger

import (
	"fmt"
	"strings"
	"testing"

	"merchstock-backend/internal/models"
	"merchstock-backend/internal/stock"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
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
		&models.ApparelCategory{},
		&models.ApparelSize{},
		&models.ApparelColor{},
		&models.ApparelProduct{},
		&models.ApparelVariant{},
		&models.TakeReason{},
		&models.StockTransaction{},
	))
	return db
}

var testActor = stock.Actor{ID: 1, Name: "Test Staff"}

// seedHistory creates one gift and one apparel variant and runs a few
// adjustments against each, returning both entities.
func seedHistory(t *testing.T, db *gorm.DB) (*models.Gift, *models.ApparelVariant) {
	t.Helper()

	giftCategory := models.GiftCategory{Name: "Drinkware"}
	require.NoError(t, db.Create(&giftCategory).Error)
	gift := models.Gift{ProductName: "Branded Mug", CategoryID: giftCategory.ID, QtyStock: 30}
	require.NoError(t, db.Create(&gift).Error)

	apparelCategory := models.ApparelCategory{Name: "T-Shirts"}
	require.NoError(t, db.Create(&apparelCategory).Error)
	size := models.ApparelSize{SizeValue: "L", SizeType: models.SizeTypeClothing, DisplayOrder: 4}
	require.NoError(t, db.Create(&size).Error)
	color := models.ApparelColor{ColorName: "Black"}
	require.NoError(t, db.Create(&color).Error)
	product := models.ApparelProduct{ProductName: "Crew Tee", CategoryID: apparelCategory.ID, Gender: models.GenderUnisex}
	require.NoError(t, db.Create(&product).Error)
	variant := models.ApparelVariant{ProductID: product.ID, SizeID: size.ID, ColorID: color.ID, QtyStock: 12}
	require.NoError(t, db.Create(&variant).Error)

	adjust := func(kind models.StockEntityKind, id uint, in stock.Input) {
		_, err := stock.Adjust(db, kind, id, in, testActor)
		require.NoError(t, err)
	}

	adjust(models.StockEntityGift, gift.ID, stock.Input{Direction: models.DirectionTake, Quantity: 5})
	adjust(models.StockEntityGift, gift.ID, stock.Input{Direction: models.DirectionReturn, Quantity: 2})
	adjust(models.StockEntityApparelVariant, variant.ID, stock.Input{Direction: models.DirectionTake, Quantity: 4})

	return &gift, &variant
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	seedHistory(t, db)

	records, err := List(db, Filter{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i := 1; i < len(records); i++ {
		assert.Greater(t, records[i-1].ID, records[i].ID)
	}
}

func TestListFilterByEntity(t *testing.T) {
	db := newTestDB(t)
	gift, variant := seedHistory(t, db)

	records, err := List(db, Filter{EntityType: models.StockEntityGift, EntityID: gift.ID})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, models.StockEntityGift, r.EntityType)
		assert.Equal(t, gift.ID, r.EntityID)
	}

	records, err = List(db, Filter{EntityType: models.StockEntityApparelVariant, EntityID: variant.ID})
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestListFilterByDirection(t *testing.T) {
	db := newTestDB(t)
	seedHistory(t, db)

	records, err := List(db, Filter{Direction: models.DirectionReturn})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.DirectionReturn, records[0].Direction)
}

func TestListFilterByParentProduct(t *testing.T) {
	db := newTestDB(t)
	_, variant := seedHistory(t, db)

	records, err := List(db, Filter{ProductID: variant.ProductID})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, variant.ID, records[0].EntityID)
}

func TestReconcileConsistent(t *testing.T) {
	db := newTestDB(t)
	gift, _ := seedHistory(t, db)

	result, err := Reconcile(db, models.StockEntityGift, gift.ID)
	require.NoError(t, err)
	assert.True(t, result.Consistent)
	assert.Equal(t, 2, result.Transactions)
	assert.Equal(t, 27, result.QuantityOnHand)
	assert.Equal(t, result.QuantityOnHand, result.ReplayedStock)
}

func TestReconcileDetectsDrift(t *testing.T) {
	db := newTestDB(t)
	gift, _ := seedHistory(t, db)

	// Corrupt the counter behind the engine's back.
	require.NoError(t, db.Model(&models.Gift{}).
		Where("id = ?", gift.ID).
		Update("qty_stock", 99).Error)

	result, err := Reconcile(db, models.StockEntityGift, gift.ID)
	require.NoError(t, err)
	assert.False(t, result.Consistent)
	assert.Equal(t, 99, result.QuantityOnHand)
	assert.Equal(t, 27, result.ReplayedStock)
}

func TestReconcileWithNoHistory(t *testing.T) {
	db := newTestDB(t)

	category := models.GiftCategory{Name: "Stationery"}
	require.NoError(t, db.Create(&category).Error)
	gift := models.Gift{ProductName: "Pen Set", CategoryID: category.ID, QtyStock: 7}
	require.NoError(t, db.Create(&gift).Error)

	result, err := Reconcile(db, models.StockEntityGift, gift.ID)
	require.NoError(t, err)
	assert.True(t, result.Consistent)
	assert.Equal(t, 0, result.Transactions)
	assert.Equal(t, 7, result.QuantityOnHand)
}

func TestReconcileUnknownEntity(t *testing.T) {
	db := newTestDB(t)

	_, err := Reconcile(db, models.StockEntityGift, 12345)
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestExportWorkbook(t *testing.T) {
	db := newTestDB(t)
	seedHistory(t, db)

	records, err := List(db, Filter{})
	require.NoError(t, err)

	buf, err := exportWorkbook(records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)
	assert.Equal(t, exportHeader, rows[0])
}
