package database

import (
	"merchstock-backend/internal/models"

	"gorm.io/gorm"
)

// SeedReferenceData populates the standard sizes, colors, categories and take
// reasons on first run. Idempotent: existing rows are left untouched so admin
// edits survive restarts.
func SeedReferenceData(db *gorm.DB) error {
	type sizeSeed struct {
		value string
		typ   models.SizeType
		order int
	}

	sizes := []sizeSeed{
		{"XS", models.SizeTypeClothing, 1},
		{"S", models.SizeTypeClothing, 2},
		{"M", models.SizeTypeClothing, 3},
		{"L", models.SizeTypeClothing, 4},
		{"XL", models.SizeTypeClothing, 5},
		{"2XL", models.SizeTypeClothing, 6},
		{"3XL", models.SizeTypeClothing, 7},
		{"4XL", models.SizeTypeClothing, 8},
		{"5XL", models.SizeTypeClothing, 9},
	}
	for i, v := range []string{"36", "37", "38", "39", "40", "41", "42", "43", "44", "45", "46", "47", "48", "49", "50"} {
		sizes = append(sizes, sizeSeed{v, models.SizeTypeFootwear, i + 1})
	}
	sizes = append(sizes, sizeSeed{"One Size", models.SizeTypeAccessory, 1})

	for _, s := range sizes {
		size := models.ApparelSize{SizeValue: s.value, SizeType: s.typ}
		if err := db.Where(&size).Attrs(models.ApparelSize{DisplayOrder: s.order}).FirstOrCreate(&size).Error; err != nil {
			return err
		}
	}

	colors := map[string]string{
		"Black":      "#000000",
		"White":      "#FFFFFF",
		"Dark Blue":  "#081930",
		"Blue":       "#027bb8",
		"Light Blue": "#92b7d6",
		"Green":      "#46b79f",
		"Beige":      "#D2B48C",
		"Grey":       "#AAAAAA",
	}
	for name, hex := range colors {
		color := models.ApparelColor{ColorName: name}
		if err := db.Where(&color).Attrs(models.ApparelColor{HexCode: hex}).FirstOrCreate(&color).Error; err != nil {
			return err
		}
	}

	categories := []string{
		"Staff", "Polo Shirt", "T-Shirt", "Hoodie", "Short Down Jacket",
		"Windbreaker", "Blazer", "Shorts", "Pants", "Shoes", "Socks",
		"Backpack", "Belt", "Bucket Hat", "Cap",
	}
	for _, name := range categories {
		cat := models.ApparelCategory{Name: name}
		if err := db.Where(&cat).FirstOrCreate(&cat).Error; err != nil {
			return err
		}
	}

	reasons := []string{
		"Event",
		"Office Use",
		"External Gift (Visitors/Meetings)",
		"New Employee Welcome",
		"Damaged/Defective",
		"Sample",
		"Other",
	}
	for _, name := range reasons {
		reason := models.TakeReason{ReasonName: name}
		if err := db.Where(&reason).Attrs(models.TakeReason{AppliesTo: models.ReasonScopeBoth}).FirstOrCreate(&reason).Error; err != nil {
			return err
		}
	}

	return nil
}
