package models

import "time"

type ReasonScope string

const (
	ReasonScopeGifts   ReasonScope = "gifts"
	ReasonScopeApparel ReasonScope = "apparel"
	ReasonScopeBoth    ReasonScope = "both"
)

// TakeReason: controlled-vocabulary justification for stock movements,
// shared between the gift and apparel catalogs.
type TakeReason struct {
	ID         uint        `gorm:"primaryKey"`
	ReasonName string      `gorm:"size:100;not null;unique"`
	AppliesTo  ReasonScope `gorm:"size:20;not null;default:both"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
