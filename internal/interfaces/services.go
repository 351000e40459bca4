package interfaces

import (
	"context"

	"github.com/bobmcallan/stocksage/internal/models"
)

// DataFetcher runs one fetch round for a ticker. Implementations must wait for
// every remote call to settle and return either both payloads or a failure.
type DataFetcher interface {
	FetchBoth(ctx context.Context, ticker string) models.FetchResult
}
