package ledger

import (
	"errors"
	"fmt"
	"time"

	"merchstock-backend/internal/models"

	"gorm.io/gorm"
)

var ErrEntityNotFound = errors.New("stock entity not found")

// Filter narrows the transaction history. Zero-valued fields are ignored.
type Filter struct {
	EntityType models.StockEntityKind
	EntityID   uint
	ProductID  uint // matches any variant of an apparel product
	Direction  models.TransactionDirection
	From       *time.Time
	To         *time.Time
}

// List returns matching ledger rows newest first. Read-only: the ledger is
// never mutated outside the adjustment engine.
func List(db *gorm.DB, f Filter) ([]models.StockTransaction, error) {
	q := db.Model(&models.StockTransaction{}).Preload("Reason")

	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != 0 {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.ProductID != 0 {
		q = q.Where("product_id = ?", f.ProductID)
	}
	if f.Direction != "" {
		q = q.Where("direction = ?", f.Direction)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var records []models.StockTransaction
	if err := q.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

type ReconcileResult struct {
	EntityType     models.StockEntityKind `json:"entity_type"`
	EntityID       uint                   `json:"entity_id"`
	Transactions   int                    `json:"transactions"`
	ReplayedStock  int                    `json:"replayed_stock"`
	QuantityOnHand int                    `json:"quantity_on_hand"`
	Consistent     bool                   `json:"consistent"`
}

// Reconcile replays an entity's ledger oldest to newest and compares the
// outcome with the live counter. A healthy ledger always reproduces the
// counter exactly; a mismatch means history and state have diverged.
func Reconcile(db *gorm.DB, kind models.StockEntityKind, entityID uint) (*ReconcileResult, error) {
	onHand, err := currentQuantity(db, kind, entityID)
	if err != nil {
		return nil, err
	}

	var records []models.StockTransaction
	if err := db.
		Where("entity_type = ? AND entity_id = ?", kind, entityID).
		Order("created_at ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	result := &ReconcileResult{
		EntityType:   kind,
		EntityID:     entityID,
		Transactions: len(records),
	}

	if len(records) == 0 {
		// Nothing ever moved: the counter stands on its own.
		result.ReplayedStock = onHand
		result.QuantityOnHand = onHand
		result.Consistent = true
		return result, nil
	}

	replayed := records[0].StockBefore
	for _, r := range records {
		switch r.Direction {
		case models.DirectionTake:
			replayed -= r.Quantity
		case models.DirectionReturn:
			replayed += r.Quantity
		}
	}

	result.ReplayedStock = replayed
	result.QuantityOnHand = onHand
	result.Consistent = replayed == onHand
	return result, nil
}

func currentQuantity(db *gorm.DB, kind models.StockEntityKind, entityID uint) (int, error) {
	switch kind {
	case models.StockEntityGift:
		var gift models.Gift
		if err := db.First(&gift, "id = ?", entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%w: gift %d", ErrEntityNotFound, entityID)
			}
			return 0, err
		}
		return gift.QtyStock, nil

	case models.StockEntityApparelVariant:
		var variant models.ApparelVariant
		if err := db.First(&variant, "id = ?", entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%w: apparel variant %d", ErrEntityNotFound, entityID)
			}
			return 0, err
		}
		return variant.QtyStock, nil

	default:
		return 0, fmt.Errorf("unknown stock entity kind %q", kind)
	}
}
