package models

import "time"

type StockEntityKind string

const (
	StockEntityGift           StockEntityKind = "gift"
	StockEntityApparelVariant StockEntityKind = "apparel_variant"
)

type TransactionDirection string

const (
	DirectionTake   TransactionDirection = "take"
	DirectionReturn TransactionDirection = "return"
)

// StockTransaction: one immutable ledger row per committed stock mutation.
// EntityType/EntityID reference the stock entity without owning it; rows are
// removed only when the entity itself is deleted.
// Replaying a given entity's rows oldest to newest must reproduce its
// current QtyStock.
type StockTransaction struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	EntityType StockEntityKind `gorm:"size:20;not null;index:idx_stock_tx_entity"`
	EntityID   uint            `gorm:"not null;index:idx_stock_tx_entity"`

	// Parent product for apparel variants, so the ledger can be filtered by
	// "any variant of this product". Null for gifts.
	ProductID *uint `gorm:"index"`

	Direction TransactionDirection `gorm:"size:10;not null"`
	Quantity  int                  `gorm:"not null"`

	ReasonID *uint `gorm:"index"`
	Reason   *TakeReason
	Note     string `gorm:"type:text"`

	CreatedByID   uint   `gorm:"index"`
	CreatedByName string `gorm:"size:100"` // denormalized, survives user deletion

	StockBefore int `gorm:"not null"`
	StockAfter  int `gorm:"not null"`
}
