package rates

import (
	"consolidator/src/config"
	"consolidator/src/utils/requests"
	"context"
	"fmt"
	"strings"
	"time"
)

type RatesServiceClientI interface {
	GetLatest(ctx context.Context, base string) (*GetLatestResponse, error)
}

type RatesServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of RatesServiceClient
func NewClient(cfg *config.Config) *RatesServiceClient {
	timeout := time.Duration(cfg.Currency.TimeoutSeconds) * time.Second
	return &RatesServiceClient{
		API:     requests.NewExternalAPIService(timeout),
		BaseURL: strings.TrimRight(cfg.Currency.BaseURL, "/"),
	}
}

// GetLatest fetches the latest rates quoted against base
func (c *RatesServiceClient) GetLatest(ctx context.Context, base string) (*GetLatestResponse, error) {
	endpoint := fmt.Sprintf("%s/%s", c.BaseURL, strings.ToUpper(base))

	var response GetLatestResponse
	if err := c.API.GetJSON(ctx, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch rates for %s: %w", base, err)
	}
	if len(response.Rates) == 0 {
		return nil, fmt.Errorf("empty rates payload for %s", base)
	}
	return &response, nil
}
