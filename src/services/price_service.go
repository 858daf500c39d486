package services

import (
	"context"
	"fmt"
	"strings"

	"tracker/src/clients/coingecko"
	"tracker/src/models"
	"tracker/src/utils"
)

// PriceServiceI resolves the current unit price of an asset in a quote
// currency. One strategy per asset type; every call is a network round-trip
// to the configured source, with no retry and no caching.
type PriceServiceI interface {
	GetUnitPrice(ctx context.Context, assetName string, assetType models.AssetType, currency string) (float64, error)
}

type PriceService struct {
	coinGecko coingecko.CoinGeckoServiceClientI
}

func NewPriceService(coinGecko coingecko.CoinGeckoServiceClientI) *PriceService {
	return &PriceService{coinGecko: coinGecko}
}

func (s *PriceService) GetUnitPrice(ctx context.Context, assetName string, assetType models.AssetType, currency string) (float64, error) {
	switch assetType {
	case models.AssetTypeCrypto:
		return s.getCryptoPrice(ctx, assetName, currency)
	case models.AssetTypeStocks:
		return 0, utils.NotImplemented("stocks pricing is not supported yet")
	case models.AssetTypeOthers:
		return 0, utils.NotImplemented(fmt.Sprintf("%s pricing is not supported yet", assetType))
	default:
		return 0, utils.BadRequest("invalid asset type")
	}
}

func (s *PriceService) getCryptoPrice(ctx context.Context, assetName, currency string) (float64, error) {
	id := strings.ToLower(assetName)
	cur := strings.ToLower(currency)

	utils.LoggerFromContext(ctx).WithField("asset", id).WithField("currency", cur).Debug("fetching unit price")

	prices, err := s.coinGecko.GetSimplePrice(ctx, id, cur)
	if err != nil {
		return 0, err
	}

	byCurrency, ok := prices[id]
	if !ok {
		return 0, utils.NotFound("price not found for the given asset and currency")
	}
	price, ok := byCurrency[cur]
	if !ok {
		return 0, utils.NotFound("price not found for the given asset and currency")
	}
	return price, nil
}
