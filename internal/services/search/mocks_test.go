package search

import (
	"context"
	"sync/atomic"

	"github.com/bobmcallan/stocksage/internal/models"
)

// --- mockClient ---

type mockClient struct {
	priceFn      func(ctx context.Context, ticker string) ([]models.PricePoint, error)
	predictionFn func(ctx context.Context, ticker string) (*models.Prediction, error)

	priceCalls      atomic.Int32
	predictionCalls atomic.Int32
}

func (m *mockClient) GetPriceData(ctx context.Context, ticker string) ([]models.PricePoint, error) {
	m.priceCalls.Add(1)
	if m.priceFn != nil {
		return m.priceFn(ctx, ticker)
	}
	return []models.PricePoint{}, nil
}

func (m *mockClient) GetPrediction(ctx context.Context, ticker string) (*models.Prediction, error) {
	m.predictionCalls.Add(1)
	if m.predictionFn != nil {
		return m.predictionFn(ctx, ticker)
	}
	return nil, nil
}

func (m *mockClient) calls() int {
	return int(m.priceCalls.Load() + m.predictionCalls.Load())
}

// --- mockFetcher ---

type mockFetcher struct {
	fetchFn func(ctx context.Context, ticker string) models.FetchResult
	calls   atomic.Int32
}

func (m *mockFetcher) FetchBoth(ctx context.Context, ticker string) models.FetchResult {
	m.calls.Add(1)
	if m.fetchFn != nil {
		return m.fetchFn(ctx, ticker)
	}
	return models.FetchResult{PriceSeries: []models.PricePoint{}}
}

func points(n int) []models.PricePoint {
	out := make([]models.PricePoint, n)
	for i := range out {
		out[i] = models.PricePoint{Date: "2024-01-01", Close: models.Float(float64(i))}
	}
	return out
}
