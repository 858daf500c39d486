package schemas

import (
	"time"

	"tracker/src/models"
	"tracker/src/utils"

	"github.com/google/uuid"
)

type PortfolioCreateRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	AssetType   models.AssetType `json:"asset_type"`
}

func (r *PortfolioCreateRequest) Validate() error {
	if len(r.Name) < 3 || len(r.Name) > 50 {
		return utils.UnprocessableEntity("name must be between 3 and 50 characters")
	}
	if len(r.Description) > 254 {
		return utils.UnprocessableEntity("description must be at most 254 characters")
	}
	if !r.AssetType.IsValid() {
		return utils.UnprocessableEntity("invalid asset type")
	}
	return nil
}

// PortfolioUpdateRequest is a partial patch: only non-nil fields overwrite.
// The asset type of a portfolio is immutable once created.
type PortfolioUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r *PortfolioUpdateRequest) Validate() error {
	if r.Name != nil && (len(*r.Name) < 3 || len(*r.Name) > 50) {
		return utils.UnprocessableEntity("name must be between 3 and 50 characters")
	}
	if r.Description != nil && len(*r.Description) > 254 {
		return utils.UnprocessableEntity("description must be at most 254 characters")
	}
	return nil
}

// AssetHolding is the net position of one asset within a portfolio, derived
// from its transaction history at read time.
type AssetHolding struct {
	TickerSymbol string  `json:"ticker_symbol"`
	AssetName    string  `json:"asset_name"`
	Quantity     float64 `json:"quantity"`
	AveragePrice float64 `json:"average_price"`
	TotalValue   float64 `json:"total_value"`
}

type PortfolioOut struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	AssetType    models.AssetType `json:"asset_type"`
	UserID       uuid.UUID        `json:"user_id"`
	CurrentValue float64          `json:"current_value"`
	Assets       []AssetHolding   `json:"assets,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func NewPortfolioOut(p *models.Portfolio) *PortfolioOut {
	return &PortfolioOut{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		AssetType:   p.AssetType,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
