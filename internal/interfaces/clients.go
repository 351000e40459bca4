// Package interfaces defines service contracts for StockSage
package interfaces

import (
	"context"

	"github.com/bobmcallan/stocksage/internal/models"
)

// StockSageClient provides access to the prediction service
type StockSageClient interface {
	// GetPriceData retrieves the historical price series for a ticker
	GetPriceData(ctx context.Context, ticker string) ([]models.PricePoint, error)

	// GetPrediction retrieves the prediction and news sentiment bundle for a ticker
	GetPrediction(ctx context.Context, ticker string) (*models.Prediction, error)
}
