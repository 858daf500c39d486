package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetType is the top-level category of a tradable asset. It constrains
// both a portfolio and every transaction recorded against it.
type AssetType string

const (
	AssetTypeCrypto AssetType = "crypto"
	AssetTypeStocks AssetType = "stocks"
	AssetTypeOthers AssetType = "others"
)

func (a AssetType) IsValid() bool {
	return a == AssetTypeCrypto || a == AssetTypeStocks || a == AssetTypeOthers
}

type Portfolio struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	AssetType   AssetType `db:"asset_type"`
	UserID      uuid.UUID `db:"user_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
