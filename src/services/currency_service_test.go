package services_test

import (
	"consolidator/src/clients/rates"
	"consolidator/src/config"
	"consolidator/src/services"
	"consolidator/src/utils"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RatesClientMock struct {
	rates.RatesServiceClientI
	GetLatestFunc func(ctx context.Context, base string) (*rates.GetLatestResponse, error)
	calls         int
}

func (m *RatesClientMock) GetLatest(ctx context.Context, base string) (*rates.GetLatestResponse, error) {
	m.calls++
	return m.GetLatestFunc(ctx, base)
}

func fixedClock(at time.Time) utils.Clock {
	return func() time.Time { return at }
}

func TestCurrencyService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	quoting := func(rate float64) *RatesClientMock {
		return &RatesClientMock{GetLatestFunc: func(_ context.Context, base string) (*rates.GetLatestResponse, error) {
			return &rates.GetLatestResponse{Base: base, Rates: map[string]float64{"INR": rate}}, nil
		}}
	}

	t.Run("same currency is always 1", func(t *testing.T) {
		client := quoting(83)
		cache := utils.NewFileCache[float64](filepath.Join(t.TempDir(), "rates.json"), 24*time.Hour, fixedClock(now))
		service := services.NewCurrencyService(client, cache, config.CurrencyConfig{})

		assert.Equal(t, 1.0, service.GetRate(ctx, "INR", "inr", ""))
		assert.Zero(t, client.calls)
	})

	t.Run("fetched rate is cached and persisted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rates.json")
		client := quoting(83.0)
		cache := utils.NewFileCache[float64](path, 24*time.Hour, fixedClock(now))
		service := services.NewCurrencyService(client, cache, config.CurrencyConfig{})

		assert.Equal(t, 83.0, service.GetRate(ctx, "USD", "INR", "AUGUST - 2025"))
		assert.Equal(t, 83.0, service.GetRate(ctx, "USD", "INR", "AUGUST - 2025"))
		assert.Equal(t, 1, client.calls)

		reloaded := utils.NewFileCache[float64](path, 24*time.Hour, fixedClock(now.Add(time.Hour)))
		require.NoError(t, reloaded.Load())
		rate, ok := reloaded.Get("USD_INR")
		require.True(t, ok)
		assert.Equal(t, 83.0, rate)
	})

	t.Run("expired cache entry triggers a new lookup", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rates.json")
		stale := utils.NewFileCache[float64](path, 24*time.Hour, fixedClock(now.Add(-25*time.Hour)))
		stale.Set("USD_INR", 80.0, "test")
		require.NoError(t, stale.Save())

		cache := utils.NewFileCache[float64](path, 24*time.Hour, fixedClock(now))
		require.NoError(t, cache.Load())
		client := quoting(84.0)
		service := services.NewCurrencyService(client, cache, config.CurrencyConfig{})

		assert.Equal(t, 84.0, service.GetRate(ctx, "USD", "INR", ""))
		assert.Equal(t, 1, client.calls)
	})

	t.Run("API failure falls back to static rates", func(t *testing.T) {
		client := &RatesClientMock{GetLatestFunc: func(context.Context, string) (*rates.GetLatestResponse, error) {
			return nil, errors.New("timeout")
		}}
		cache := utils.NewFileCache[float64](filepath.Join(t.TempDir(), "rates.json"), 24*time.Hour, fixedClock(now))
		service := services.NewCurrencyService(client, cache, config.CurrencyConfig{
			FallbackRates: map[string]float64{"gbp_inr": 106.0},
		})

		assert.Equal(t, 83.25, service.GetRate(ctx, "USD", "INR", ""))
		assert.Equal(t, 90.50, service.GetRate(ctx, "EUR", "INR", ""))
		assert.Equal(t, 106.0, service.GetRate(ctx, "GBP", "INR", ""))
		assert.Equal(t, 1.0, service.GetRate(ctx, "JPY", "INR", ""))
		_, cached := cache.Get("USD_INR")
		assert.False(t, cached)
	})

	t.Run("missing quote falls back", func(t *testing.T) {
		client := &RatesClientMock{GetLatestFunc: func(_ context.Context, base string) (*rates.GetLatestResponse, error) {
			return &rates.GetLatestResponse{Base: base, Rates: map[string]float64{"EUR": 0.9}}, nil
		}}
		cache := utils.NewFileCache[float64](filepath.Join(t.TempDir(), "rates.json"), 24*time.Hour, fixedClock(now))
		service := services.NewCurrencyService(client, cache, config.CurrencyConfig{})

		assert.Equal(t, 83.25, service.GetRate(ctx, "USD", "INR", ""))
	})

	t.Run("ConvertAmount multiplies by the rate", func(t *testing.T) {
		cache := utils.NewFileCache[float64](filepath.Join(t.TempDir(), "rates.json"), 24*time.Hour, fixedClock(now))
		service := services.NewCurrencyService(quoting(83.0), cache, config.CurrencyConfig{})

		assert.Equal(t, 83000.0, service.ConvertAmount(ctx, 1000, "USD", "INR", "AUGUST - 2025"))
	})
}
