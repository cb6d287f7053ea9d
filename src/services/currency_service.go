package services

import (
	"consolidator/src/clients/rates"
	"consolidator/src/config"
	"consolidator/src/utils"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultFallbackRates are approximate rates used whenever the rate API
// cannot be reached.
var DefaultFallbackRates = map[string]float64{
	"USD_INR": 83.25,
	"EUR_INR": 90.50,
	"GBP_INR": 105.75,
}

type CurrencyServiceI interface {
	GetRate(ctx context.Context, from, to, period string) float64
	ConvertAmount(ctx context.Context, amount float64, from, to, period string) float64
}

type CurrencyService struct {
	client    rates.RatesServiceClientI
	cache     *utils.FileCache[float64]
	fallbacks map[string]float64
}

// NewCurrencyService wires the rate client to a file cache. Fallback rates
// from settings override the defaults per pair.
func NewCurrencyService(client rates.RatesServiceClientI, cache *utils.FileCache[float64], cfg config.CurrencyConfig) *CurrencyService {
	fallbacks := make(map[string]float64, len(DefaultFallbackRates))
	for pair, rate := range DefaultFallbackRates {
		fallbacks[pair] = rate
	}
	for pair, rate := range cfg.FallbackRates {
		fallbacks[strings.ToUpper(pair)] = rate
	}
	return &CurrencyService{client: client, cache: cache, fallbacks: fallbacks}
}

// NewCurrencyServiceFromConfig builds the client and cache from settings and
// loads the cache file.
func NewCurrencyServiceFromConfig(ctx context.Context, cfg *config.Config) *CurrencyService {
	validity := time.Duration(cfg.Currency.CacheHours) * time.Hour
	cache := utils.NewFileCache[float64](cfg.Currency.CacheFile, validity, time.Now)
	if err := cache.Load(); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("Ignoring unreadable exchange rate cache")
	}
	return NewCurrencyService(rates.NewClient(cfg), cache, cfg.Currency)
}

func pairKey(from, to string) string {
	return fmt.Sprintf("%s_%s", from, to)
}

// GetRate returns how many units of to one unit of from buys. It never fails:
// cache misses go to the rate API and any API failure falls back to a static
// rate, or 1.0 for pairs without one. period is only recorded for tracing;
// the API serves latest rates.
func (s *CurrencyService) GetRate(ctx context.Context, from, to, period string) float64 {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return 1.0
	}
	logger := utils.LoggerFromContext(ctx).WithFields(logrus.Fields{"pair": pairKey(from, to), "period": period})

	key := pairKey(from, to)
	if rate, ok := s.cache.Get(key); ok {
		logger.WithField("rate", rate).Debug("Using cached exchange rate")
		return rate
	}

	rate, err := s.fetchRate(ctx, from, to)
	if err != nil {
		fallback := s.fallbackRate(key)
		logger.WithError(err).WithField("rate", fallback).Warn("Exchange rate lookup failed, using fallback rate")
		return fallback
	}

	s.cache.Set(key, rate, "exchangerate-api")
	if err := s.cache.Save(); err != nil {
		logger.WithError(err).Warn("Failed to persist exchange rate cache")
	}
	logger.WithField("rate", rate).Info("Fetched exchange rate")
	return rate
}

func (s *CurrencyService) fetchRate(ctx context.Context, from, to string) (float64, error) {
	response, err := s.client.GetLatest(ctx, from)
	if err != nil {
		return 0, err
	}
	rate, ok := response.Rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("no %s rate quoted against %s", to, from)
	}
	return rate, nil
}

func (s *CurrencyService) fallbackRate(key string) float64 {
	if rate, ok := s.fallbacks[key]; ok {
		return rate
	}
	return 1.0
}

// ConvertAmount multiplies amount by the from->to rate for period.
func (s *CurrencyService) ConvertAmount(ctx context.Context, amount float64, from, to, period string) float64 {
	return amount * s.GetRate(ctx, from, to, period)
}
