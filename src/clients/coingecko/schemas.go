package coingecko

// SimplePriceResponse mirrors the /simple/price payload: a map of asset id
// to a map of currency code to unit price, e.g. {"bitcoin": {"usd": 50000}}.
type SimplePriceResponse map[string]map[string]float64
