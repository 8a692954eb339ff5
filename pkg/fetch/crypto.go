package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

var cryptoColumns = []string{"name", "symbol", "current_price", "market_cap", "price_change_24h", "high_24h", "low_24h", "timestamp"}

// cryptoFetchLimit bounds concurrent CoinGecko calls; the public API rate
// limits aggressively.
const cryptoFetchLimit = 2

// 💰 CryptoClient fetches coin prices from CoinGecko.
type CryptoClient struct {
	HTTPClient *http.Client
	BaseURL    string // override for tests
}

const coinGeckoBaseURL = "https://api.coingecko.com/api/v3"

func (c *CryptoClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return defaultHTTPClient
}

func (c *CryptoClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return coinGeckoBaseURL
}

// coinResponse mirrors the fields of the CoinGecko payload we use.
type coinResponse struct {
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	MarketData struct {
		CurrentPrice struct {
			USD float64 `json:"usd"`
		} `json:"current_price"`
		MarketCap struct {
			USD float64 `json:"usd"`
		} `json:"market_cap"`
		PriceChange24h float64 `json:"price_change_percentage_24h"`
		High24h        struct {
			USD float64 `json:"usd"`
		} `json:"high_24h"`
		Low24h struct {
			USD float64 `json:"usd"`
		} `json:"low_24h"`
	} `json:"market_data"`
}

// 📈 Prices fetches current prices for the given coin ids (e.g. "bitcoin").
// Coins are fetched with bounded parallelism and per-coin failures are
// isolated: a coin that cannot be fetched is logged and left out of the
// dataset rather than failing the batch. Row order follows the input order.
func (c *CryptoClient) Prices(ctx context.Context, coins []string) (*Dataset, error) {
	logger := zerolog.Ctx(ctx)

	if len(coins) == 0 {
		return nil, errors.New("at least one coin is required")
	}

	now := time.Now().UTC()
	rows := make([]map[string]string, len(coins))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cryptoFetchLimit)

	for i, coin := range coins {
		i, coin := i, coin
		g.Go(func() error {
			row, err := c.fetchCoin(gctx, coin, now)
			if err != nil {
				logger.Warn().Err(err).Str("coin", coin).Msg("skipping coin")
				return nil
			}
			rows[i] = row
			return nil
		})
	}

	// Goroutines never return errors, Wait only joins them.
	_ = g.Wait()

	ds := NewDataset(cryptoColumns...)
	for _, row := range rows {
		if row != nil {
			ds.Append(row)
		}
	}

	if ds.Empty() {
		return nil, errors.Errorf("none of %d coin(s) could be fetched", len(coins))
	}

	return ds, nil
}

func (c *CryptoClient) fetchCoin(ctx context.Context, coin string, now time.Time) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"/coins/"+coin, nil)
	if err != nil {
		return nil, errors.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, errors.Errorf("fetching coin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("coin API returned %s", resp.Status)
	}

	var payload coinResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Errorf("decoding coin response: %w", err)
	}

	return map[string]string{
		"name":             payload.Name,
		"symbol":           strings.ToUpper(payload.Symbol),
		"current_price":    fmt.Sprintf("%.2f", payload.MarketData.CurrentPrice.USD),
		"market_cap":       fmt.Sprintf("%.0f", payload.MarketData.MarketCap.USD),
		"price_change_24h": fmt.Sprintf("%.2f", payload.MarketData.PriceChange24h),
		"high_24h":         fmt.Sprintf("%.2f", payload.MarketData.High24h.USD),
		"low_24h":          fmt.Sprintf("%.2f", payload.MarketData.Low24h.USD),
		"timestamp":        now.Format(time.RFC3339),
	}, nil
}
