package models

import "time"

type ApparelCategory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SizeType string

const (
	SizeTypeClothing  SizeType = "clothing"
	SizeTypeFootwear  SizeType = "footwear"
	SizeTypeAccessory SizeType = "accessory"
)

// ApparelSize: standardized size reference. DisplayOrder drives dropdown
// ordering within a size type (smaller first).
type ApparelSize struct {
	ID           uint     `gorm:"primaryKey"`
	SizeValue    string   `gorm:"size:10;not null;uniqueIndex:idx_size_value_type"`
	SizeType     SizeType `gorm:"size:20;not null;uniqueIndex:idx_size_value_type"`
	DisplayOrder int      `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ApparelColor struct {
	ID        uint   `gorm:"primaryKey"`
	ColorName string `gorm:"size:50;not null;unique"`
	HexCode   string `gorm:"size:7"` // optional, e.g. "#001f3f"
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Gender string

const (
	GenderMen    Gender = "M"
	GenderWomen  Gender = "W"
	GenderUnisex Gender = "U"
	GenderYouth  Gender = "Y"
)

// ApparelProduct: the product concept before size/color variation. Shared
// metadata lives here; countable stock lives on the variants.
type ApparelProduct struct {
	ID          uint   `gorm:"primaryKey"`
	ProductName string `gorm:"size:200;not null"`
	CategoryID  uint   `gorm:"index;not null"`
	Category    ApparelCategory

	ItemID          string  `gorm:"size:50"` // supplier product code
	Gender          Gender  `gorm:"size:1;not null;default:U"`
	Material        string  `gorm:"size:200"`
	Description     string  `gorm:"type:text"`
	HSCode          string  `gorm:"size:20"`
	UnitPrice       float64 `gorm:"type:decimal(10,2);not null;default:0"`
	CountryOfOrigin string  `gorm:"size:100"`
	Notes           string  `gorm:"type:text"`

	Variants []ApparelVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt   time.Time
	CreatedByID *uint `gorm:"constraint:OnDelete:SET NULL"`
	UpdatedAt   time.Time
	UpdatedByID *uint `gorm:"constraint:OnDelete:SET NULL"`
}

// ApparelVariant: one size/color combination of a product, the countable
// stock entity on the apparel side. No two variants of a product may share
// a size/color pair.
type ApparelVariant struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_variant_product_size_color"`
	Product   ApparelProduct
	SizeID    uint `gorm:"not null;uniqueIndex:idx_variant_product_size_color"`
	Size      ApparelSize
	ColorID   uint `gorm:"not null;uniqueIndex:idx_variant_product_size_color"`
	Color     ApparelColor

	QtyStock          int `gorm:"not null;default:0"`
	MinimumStockLevel int `gorm:"not null;default:5"`

	SKU    string   `gorm:"size:100"`
	Weight *float64 `gorm:"type:decimal(6,2)"` // grams, optional

	CreatedAt   time.Time
	CreatedByID *uint `gorm:"constraint:OnDelete:SET NULL"`
	UpdatedAt   time.Time
	UpdatedByID *uint `gorm:"constraint:OnDelete:SET NULL"`
}

func (v *ApparelVariant) StockKind() StockEntityKind { return StockEntityApparelVariant }
func (v *ApparelVariant) StockEntityID() uint        { return v.ID }
func (v *ApparelVariant) QuantityOnHand() int        { return v.QtyStock }
func (v *ApparelVariant) ParentProductID() *uint     { id := v.ProductID; return &id }
