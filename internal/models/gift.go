package models

import "time"

type GiftCategory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Gift: a countable inventory line in the gift catalog. QtyStock is only
// mutated through the stock adjustment engine; metadata edits never touch it.
type Gift struct {
	ID          uint   `gorm:"primaryKey"`
	ProductName string `gorm:"size:200;not null"`
	CategoryID  uint   `gorm:"index;not null"`
	Category    GiftCategory

	QtyStock          int `gorm:"not null"`
	MinimumStockLevel int `gorm:"not null;default:10"` // advisory threshold, nothing enforces it

	Description     string  `gorm:"type:text"`
	Material        string  `gorm:"size:200"`
	UnitPrice       float64 `gorm:"type:decimal(10,2);not null;default:0"`
	HSCode          string  `gorm:"size:20"`
	CountryOfOrigin string  `gorm:"size:100"`

	SupplierName    string `gorm:"size:200"`
	SupplierEmail   string `gorm:"size:200"`
	SupplierAddress string `gorm:"type:text"`

	Notes string `gorm:"type:text"`

	CreatedAt   time.Time
	CreatedByID *uint `gorm:"constraint:OnDelete:SET NULL"`
	UpdatedAt   time.Time
	UpdatedByID *uint `gorm:"constraint:OnDelete:SET NULL"`
}

func (g *Gift) StockKind() StockEntityKind { return StockEntityGift }
func (g *Gift) StockEntityID() uint        { return g.ID }
func (g *Gift) QuantityOnHand() int        { return g.QtyStock }
func (g *Gift) ParentProductID() *uint     { return nil }
