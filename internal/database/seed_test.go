package database

import (
	"fmt"
	"strings"
	"testing"

	"merchstock-backend/internal/models"

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

	require.NoError(t, db.AutoMigrate(
		&models.ApparelCategory{},
		&models.ApparelSize{},
		&models.ApparelColor{},
		&models.TakeReason{},
	))
	return db
}

func countAll(t *testing.T, db *gorm.DB) (sizes, colors, categories, reasons int64) {
	t.Helper()
	require.NoError(t, db.Model(&models.ApparelSize{}).Count(&sizes).Error)
	require.NoError(t, db.Model(&models.ApparelColor{}).Count(&colors).Error)
	require.NoError(t, db.Model(&models.ApparelCategory{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.TakeReason{}).Count(&reasons).Error)
	return
}

func TestSeedReferenceData(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, SeedReferenceData(db))

	sizes, colors, categories, reasons := countAll(t, db)
	assert.EqualValues(t, 25, sizes) // 9 clothing + 15 footwear + one size
	assert.EqualValues(t, 8, colors)
	assert.EqualValues(t, 15, categories)
	assert.EqualValues(t, 7, reasons)

	var footwear []models.ApparelSize
	require.NoError(t, db.
		Where("size_type = ?", models.SizeTypeFootwear).
		Order("display_order asc").
		Find(&footwear).Error)
	require.Len(t, footwear, 15)
	assert.Equal(t, "36", footwear[0].SizeValue)
	assert.Equal(t, "50", footwear[14].SizeValue)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, SeedReferenceData(db))

	// An admin edit must survive a reseed.
	var reason models.TakeReason
	require.NoError(t, db.First(&reason, "reason_name = ?", "Sample").Error)
	require.NoError(t, db.Model(&reason).Update("applies_to", models.ReasonScopeApparel).Error)

	before := [4]int64{}
	before[0], before[1], before[2], before[3] = countAll(t, db)

	require.NoError(t, SeedReferenceData(db))

	after := [4]int64{}
	after[0], after[1], after[2], after[3] = countAll(t, db)
	assert.Equal(t, before, after)

	require.NoError(t, db.First(&reason, reason.ID).Error)
	assert.Equal(t, models.ReasonScopeApparel, reason.AppliesTo)
}
