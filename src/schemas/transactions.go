package schemas

import (
	"time"

	"tracker/src/models"
	"tracker/src/utils"

	"github.com/google/uuid"
)

type TransactionCreateRequest struct {
	PortfolioID     uuid.UUID              `json:"portfolio_id"`
	TransactionType models.TransactionType `json:"transaction_type"`
	AssetType       models.AssetType       `json:"asset_type"`
	TickerSymbol    string                 `json:"ticker_symbol"`
	AssetName       string                 `json:"asset_name"`
	Amount          float64                `json:"amount"`
	Currency        string                 `json:"currency"`
	UnitPrice       float64                `json:"unit_price"`
	TransactionFee  float64                `json:"transaction_fee"`
	Note            string                 `json:"note"`
}

func (r *TransactionCreateRequest) Validate() error {
	if r.PortfolioID == uuid.Nil {
		return utils.UnprocessableEntity("portfolio_id is required")
	}
	if !r.TransactionType.IsValid() {
		return utils.UnprocessableEntity("invalid transaction type")
	}
	if !r.AssetType.IsValid() {
		return utils.UnprocessableEntity("invalid asset type")
	}
	if r.TickerSymbol == "" || r.AssetName == "" {
		return utils.UnprocessableEntity("ticker_symbol and asset_name are required")
	}
	if r.Amount <= 0 {
		return utils.UnprocessableEntity("amount must be greater than zero")
	}
	if len(r.Currency) != 3 {
		return utils.UnprocessableEntity("currency must be a 3-letter code")
	}
	if r.UnitPrice <= 0 {
		return utils.UnprocessableEntity("unit_price must be greater than zero")
	}
	if r.TransactionFee < 0 {
		return utils.UnprocessableEntity("transaction_fee must not be negative")
	}
	return nil
}

// TransactionUpdateRequest is a partial patch: only non-nil fields overwrite.
type TransactionUpdateRequest struct {
	TransactionType *models.TransactionType `json:"transaction_type"`
	TickerSymbol    *string                 `json:"ticker_symbol"`
	AssetName       *string                 `json:"asset_name"`
	Amount          *float64                `json:"amount"`
	Currency        *string                 `json:"currency"`
	UnitPrice       *float64                `json:"unit_price"`
	TransactionFee  *float64                `json:"transaction_fee"`
	Note            *string                 `json:"note"`
}

func (r *TransactionUpdateRequest) Validate() error {
	if r.TransactionType != nil && !r.TransactionType.IsValid() {
		return utils.UnprocessableEntity("invalid transaction type")
	}
	if r.Amount != nil && *r.Amount <= 0 {
		return utils.UnprocessableEntity("amount must be greater than zero")
	}
	if r.Currency != nil && len(*r.Currency) != 3 {
		return utils.UnprocessableEntity("currency must be a 3-letter code")
	}
	if r.UnitPrice != nil && *r.UnitPrice <= 0 {
		return utils.UnprocessableEntity("unit_price must be greater than zero")
	}
	if r.TransactionFee != nil && *r.TransactionFee < 0 {
		return utils.UnprocessableEntity("transaction_fee must not be negative")
	}
	return nil
}

type TransactionOut struct {
	ID              uuid.UUID              `json:"id"`
	PortfolioID     uuid.UUID              `json:"portfolio_id"`
	UserID          uuid.UUID              `json:"user_id"`
	TransactionType models.TransactionType `json:"transaction_type"`
	AssetType       models.AssetType       `json:"asset_type"`
	TickerSymbol    string                 `json:"ticker_symbol"`
	AssetName       string                 `json:"asset_name"`
	Amount          float64                `json:"amount"`
	Currency        string                 `json:"currency"`
	UnitPrice       float64                `json:"unit_price"`
	TransactionFee  float64                `json:"transaction_fee"`
	Note            string                 `json:"note"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	DeletedAt       *time.Time             `json:"deleted_at,omitempty"`
}

func NewTransactionOut(t *models.Transaction) *TransactionOut {
	return &TransactionOut{
		ID:              t.ID,
		PortfolioID:     t.PortfolioID,
		UserID:          t.UserID,
		TransactionType: t.TransactionType,
		AssetType:       t.AssetType,
		TickerSymbol:    t.TickerSymbol,
		AssetName:       t.AssetName,
		Amount:          t.Amount,
		Currency:        t.Currency,
		UnitPrice:       t.UnitPrice,
		TransactionFee:  t.TransactionFee,
		Note:            t.Note,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		DeletedAt:       t.DeletedAt,
	}
}
