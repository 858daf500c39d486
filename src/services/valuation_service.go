package services

import (
	"context"

	"tracker/src/models"
	"tracker/src/repositories"
	"tracker/src/schemas"
	"tracker/src/utils"

	"github.com/google/uuid"
)

// ValuationServiceI derives the current worth of a portfolio from its
// transaction ledger and live market prices. Nothing here is stored: every
// call recomputes from the full visible transaction set.
type ValuationServiceI interface {
	ComputeValue(ctx context.Context, portfolioID uuid.UUID) (float64, error)
	ComputeHoldings(ctx context.Context, portfolioID uuid.UUID) ([]schemas.AssetHolding, error)
}

type ValuationService struct {
	transactions repositories.TransactionRepository
	prices       PriceServiceI
}

func NewValuationService(transactions repositories.TransactionRepository, prices PriceServiceI) *ValuationService {
	return &ValuationService{transactions: transactions, prices: prices}
}

// priceKey identifies one distinct market lookup within a single
// computation. Prices are fetched once per key; a valuation stays a single
// consistent snapshot and latency scales with distinct assets, not rows.
type priceKey struct {
	assetName string
	assetType models.AssetType
	currency  string
}

type priceMemo map[priceKey]float64

func (s *ValuationService) unitPrice(ctx context.Context, memo priceMemo, t *models.Transaction) (float64, error) {
	key := priceKey{assetName: t.AssetName, assetType: t.AssetType, currency: t.Currency}
	if price, ok := memo[key]; ok {
		return price, nil
	}
	price, err := s.prices.GetUnitPrice(ctx, t.AssetName, t.AssetType, t.Currency)
	if err != nil {
		// No partial valuation: a failed lookup aborts the whole call
		return 0, err
	}
	memo[key] = price
	return price, nil
}

// ComputeValue returns the current market value of the portfolio: the sum
// over every visible transaction of +/- amount * current unit price, signed
// by transaction type. The result may be negative when recorded sells
// exceed buys; the anomaly is surfaced, not clamped.
func (s *ValuationService) ComputeValue(ctx context.Context, portfolioID uuid.UUID) (float64, error) {
	transactions, err := s.transactions.GetAllByPortfolioID(ctx, portfolioID)
	if err != nil {
		return 0, utils.BadRequest("failed to retrieve transactions")
	}
	if len(transactions) == 0 {
		return 0, nil
	}

	memo := priceMemo{}
	total := 0.0
	for i := range transactions {
		t := &transactions[i]
		price, err := s.unitPrice(ctx, memo, t)
		if err != nil {
			return 0, err
		}
		switch {
		case t.TransactionType.IsAcquisition():
			total += t.Amount * price
		case t.TransactionType.IsValid():
			total -= t.Amount * price
		default:
			return 0, utils.BadRequest("invalid transaction type")
		}
	}
	return total, nil
}

type holdingKey struct {
	ticker string
	name   string
}

type holdingAccumulator struct {
	transaction  *models.Transaction
	quantity     float64
	acquiredQty  float64
	acquiredCost float64
}

// ComputeHoldings returns the net position per distinct asset in the
// portfolio. Quantity uses the same sign convention as ComputeValue;
// averagePrice is the quantity-weighted average unit price over acquiring
// transactions (buys and transfers in). Order of the result is undefined.
func (s *ValuationService) ComputeHoldings(ctx context.Context, portfolioID uuid.UUID) ([]schemas.AssetHolding, error) {
	transactions, err := s.transactions.GetAllByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve transactions")
	}

	groups := map[holdingKey]*holdingAccumulator{}
	for i := range transactions {
		t := &transactions[i]
		key := holdingKey{ticker: t.TickerSymbol, name: t.AssetName}
		acc, ok := groups[key]
		if !ok {
			acc = &holdingAccumulator{}
			groups[key] = acc
		}
		acc.transaction = t

		switch {
		case t.TransactionType.IsAcquisition():
			acc.quantity += t.Amount
			acc.acquiredQty += t.Amount
			acc.acquiredCost += t.Amount * t.UnitPrice
		case t.TransactionType.IsValid():
			acc.quantity -= t.Amount
		default:
			return nil, utils.BadRequest("invalid transaction type")
		}
	}

	memo := priceMemo{}
	holdings := make([]schemas.AssetHolding, 0, len(groups))
	for key, acc := range groups {
		price, err := s.unitPrice(ctx, memo, acc.transaction)
		if err != nil {
			return nil, err
		}

		averagePrice := 0.0
		if acc.acquiredQty > 0 {
			averagePrice = acc.acquiredCost / acc.acquiredQty
		}

		holdings = append(holdings, schemas.AssetHolding{
			TickerSymbol: key.ticker,
			AssetName:    key.name,
			Quantity:     acc.quantity,
			AveragePrice: averagePrice,
			TotalValue:   acc.quantity * price,
		})
	}
	return holdings, nil
}
