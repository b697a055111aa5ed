package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

// Migrating the full production model set must succeed; a bad relation tag
// surfaces here instead of at server boot.
func TestAutoMigrateAllModels(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&GiftCategory{},
		&ApparelCategory{},
		&ApparelSize{},
		&ApparelColor{},
		&TakeReason{},
		&Gift{},
		&ApparelProduct{},
		&ApparelVariant{},
		&StockTransaction{},
	))
}

func TestProductVariantsRelation(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(
		&ApparelCategory{}, &ApparelSize{}, &ApparelColor{},
		&ApparelProduct{}, &ApparelVariant{},
	))

	category := ApparelCategory{Name: "T-Shirts"}
	require.NoError(t, db.Create(&category).Error)
	sizeS := ApparelSize{SizeValue: "S", SizeType: SizeTypeClothing, DisplayOrder: 2}
	sizeM := ApparelSize{SizeValue: "M", SizeType: SizeTypeClothing, DisplayOrder: 3}
	require.NoError(t, db.Create(&sizeS).Error)
	require.NoError(t, db.Create(&sizeM).Error)
	color := ApparelColor{ColorName: "White"}
	require.NoError(t, db.Create(&color).Error)

	product := ApparelProduct{ProductName: "Crew Tee", CategoryID: category.ID, Gender: GenderUnisex}
	require.NoError(t, db.Create(&product).Error)
	for _, sizeID := range []uint{sizeS.ID, sizeM.ID} {
		v := ApparelVariant{ProductID: product.ID, SizeID: sizeID, ColorID: color.ID, QtyStock: 1}
		require.NoError(t, db.Create(&v).Error)
	}

	var loaded ApparelProduct
	require.NoError(t, db.Preload("Variants").First(&loaded, product.ID).Error)
	require.Len(t, loaded.Variants, 2)
	for _, v := range loaded.Variants {
		assert.Equal(t, product.ID, v.ProductID)
	}
}
