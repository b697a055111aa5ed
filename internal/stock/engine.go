package stock

import (
	"errors"
	"fmt"

	"merchstock-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("stock entity not found")
	ErrInvalidInput      = errors.New("invalid adjustment input")
	ErrAdjustmentAborted = errors.New("stock adjustment aborted after repeated write conflicts")
)

// InsufficientStockError: a take asked for more than is on hand. Carries the
// available quantity so callers can report it.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock, only %d available", e.Available)
}

// errStaleCounter signals a lost compare-and-swap race; the whole unit of
// work is retried with a fresh read.
var errStaleCounter = errors.New("stale stock counter")

// Reads of the counter and the compare-and-swap write run in the same
// transaction, so a conflict means another committed adjustment got in
// between; a couple of retries is plenty.
const maxRetries = 3

// Entity: the capability a stock-holding row must expose to the engine.
// Implemented by models.Gift and models.ApparelVariant, so one engine serves
// both catalogs.
type Entity interface {
	StockKind() models.StockEntityKind
	StockEntityID() uint
	QuantityOnHand() int
	ParentProductID() *uint
}

type Input struct {
	Direction models.TransactionDirection
	Quantity  int
	ReasonID  *uint
	Note      string
}

// Actor: who performed the adjustment. Always passed explicitly, the engine
// never reads ambient request state.
type Actor struct {
	ID   uint
	Name string
}

type Result struct {
	NewQuantity int
	Transaction models.StockTransaction
}

// Adjust mutates a stock entity's counter and appends the matching ledger row
// as one atomic unit. Validation failures never touch the store; a committed
// call leaves exactly one StockTransaction whose before/after bracket the
// counter change.
func Adjust(db *gorm.DB, kind models.StockEntityKind, entityID uint, in Input, actor Actor) (*Result, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidInput)
	}
	if in.Direction != models.DirectionTake && in.Direction != models.DirectionReturn {
		return nil, fmt.Errorf("%w: direction must be 'take' or 'return'", ErrInvalidInput)
	}

	// Reasons belong to takes; a reason id sent with a return is ignored and
	// the row is stored reason-less, same as the ledger has always been
	// written.
	var reasonID *uint
	if in.Direction == models.DirectionTake {
		var err error
		reasonID, err = resolveReason(db, in.ReasonID)
		if err != nil {
			return nil, err
		}
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		res, err := adjustOnce(db, kind, entityID, in, reasonID, actor)
		if errors.Is(err, errStaleCounter) {
			continue
		}
		return res, err
	}
	return nil, ErrAdjustmentAborted
}

func adjustOnce(db *gorm.DB, kind models.StockEntityKind, entityID uint, in Input, reasonID *uint, actor Actor) (*Result, error) {
	var result *Result

	err := db.Transaction(func(tx *gorm.DB) error {
		entity, err := loadEntity(tx, kind, entityID)
		if err != nil {
			return err
		}

		before := entity.QuantityOnHand()
		var after int
		switch in.Direction {
		case models.DirectionTake:
			if in.Quantity > before {
				return &InsufficientStockError{Available: before}
			}
			after = before - in.Quantity
		case models.DirectionReturn:
			// No upper bound on returns: over-returning is how prior
			// under-counts get corrected.
			after = before + in.Quantity
		}

		// Compare-and-swap on the counter. A concurrent adjustment that
		// committed since our read makes RowsAffected zero, which aborts the
		// transaction and triggers a retry.
		res := tx.Model(entity).
			Where("qty_stock = ?", before).
			Updates(map[string]interface{}{
				"qty_stock":     after,
				"updated_by_id": actor.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStaleCounter
		}

		record := models.StockTransaction{
			EntityType:    kind,
			EntityID:      entityID,
			ProductID:     entity.ParentProductID(),
			Direction:     in.Direction,
			Quantity:      in.Quantity,
			ReasonID:      reasonID,
			Note:          in.Note,
			CreatedByID:   actor.ID,
			CreatedByName: actor.Name,
			StockBefore:   before,
			StockAfter:    after,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		result = &Result{NewQuantity: after, Transaction: record}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveReason looks the reason up and silently drops ids that resolve to
// nothing: the record is stored with no reason. Long-standing behavior the
// frontend depends on, kept for compatibility even though it means callers
// cannot tell "no reason given" from "bad reason id".
func resolveReason(db *gorm.DB, reasonID *uint) (*uint, error) {
	if reasonID == nil {
		return nil, nil
	}

	var reason models.TakeReason
	err := db.First(&reason, "id = ?", *reasonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reason.ID, nil
}

func loadEntity(tx *gorm.DB, kind models.StockEntityKind, entityID uint) (Entity, error) {
	switch kind {
	case models.StockEntityGift:
		var gift models.Gift
		if err := tx.First(&gift, "id = ?", entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: gift %d", ErrNotFound, entityID)
			}
			return nil, err
		}
		return &gift, nil

	case models.StockEntityApparelVariant:
		var variant models.ApparelVariant
		if err := tx.First(&variant, "id = ?", entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: apparel variant %d", ErrNotFound, entityID)
			}
			return nil, err
		}
		return &variant, nil

	default:
		return nil, fmt.Errorf("%w: unknown stock entity kind %q", ErrInvalidInput, kind)
	}
}
