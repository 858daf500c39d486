package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeBuy         TransactionType = "buy"
	TransactionTypeSell        TransactionType = "sell"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeBuy, TransactionTypeSell, TransactionTypeTransferIn, TransactionTypeTransferOut:
		return true
	}
	return false
}

// IsAcquisition reports whether the transaction adds units to a holding.
func (t TransactionType) IsAcquisition() bool {
	return t == TransactionTypeBuy || t == TransactionTypeTransferIn
}

type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	PortfolioID     uuid.UUID       `db:"portfolio_id"`
	UserID          uuid.UUID       `db:"user_id"`
	TransactionType TransactionType `db:"transaction_type"`
	AssetType       AssetType       `db:"asset_type"`
	TickerSymbol    string          `db:"ticker_symbol"`
	AssetName       string          `db:"asset_name"`
	Amount          float64         `db:"amount"`
	Currency        string          `db:"currency"`
	UnitPrice       float64         `db:"unit_price"`
	TransactionFee  float64         `db:"transaction_fee"`
	Note            string          `db:"note"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
	DeletedAt       *time.Time      `db:"deleted_at"`
}
