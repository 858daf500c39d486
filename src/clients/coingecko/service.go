package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"tracker/src/config"
	"tracker/src/utils"
	"tracker/src/utils/requests"
)

type CoinGeckoServiceClientI interface {
	GetSimplePrice(ctx context.Context, ids string, vsCurrencies string) (SimplePriceResponse, error)
}

type CoinGeckoServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of CoinGeckoServiceClient
func NewClient(cfg *config.Config) *CoinGeckoServiceClient {
	api := requests.NewExternalAPIService()
	return &CoinGeckoServiceClient{
		API:     api,
		BaseURL: cfg.ExternalClients.CoinGecko.BaseURL,
	}
}

// GetSimplePrice fetches current unit prices for the given asset ids in the
// given quote currencies. Both parameters are comma-separated lists as the
// upstream API defines them.
func (c *CoinGeckoServiceClient) GetSimplePrice(ctx context.Context, ids string, vsCurrencies string) (SimplePriceResponse, error) {
	endpoint := fmt.Sprintf("%s/simple/price", c.BaseURL)

	params := url.Values{}
	params.Add("ids", ids)
	params.Add("vs_currencies", vsCurrencies)

	resp, err := c.API.Get(ctx, endpoint, "", params)
	if err != nil {
		return nil, utils.BadGateway(fmt.Sprintf("failed to reach price source: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.BadGateway(fmt.Sprintf("price source returned status %d", resp.StatusCode))
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, utils.BadGateway(fmt.Sprintf("failed to read price source response: %v", err))
	}

	var priceResponse SimplePriceResponse
	err = json.Unmarshal(responseBody, &priceResponse)
	if err != nil {
		return nil, utils.BadGateway(fmt.Sprintf("failed to parse price source response: %v", err))
	}

	return priceResponse, nil
}
