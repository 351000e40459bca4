// Package search owns the ticker search session: fetch orchestration and state transitions
package search

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/stocksage/internal/common"
	"github.com/bobmcallan/stocksage/internal/interfaces"
	"github.com/bobmcallan/stocksage/internal/models"
	"github.com/bobmcallan/stocksage/internal/trace"
)

// FallbackErrorMessage is shown when a failed call carries no description
const FallbackErrorMessage = "Error fetching data"

// Fetcher implements DataFetcher over a StockSageClient
type Fetcher struct {
	client interfaces.StockSageClient
	logger *common.Logger
}

var _ interfaces.DataFetcher = (*Fetcher)(nil)

// NewFetcher creates a fetcher. A nil logger is replaced with a silent one.
func NewFetcher(client interfaces.StockSageClient, logger *common.Logger) *Fetcher {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Fetcher{client: client, logger: logger}
}

// FetchBoth issues the price-data and prediction calls concurrently and waits
// for both to settle. Any failure discards both payloads; the reported message
// is that of the first call to fail.
func (f *Fetcher) FetchBoth(ctx context.Context, ticker string) models.FetchResult {
	ctx, span := trace.StartSpan(ctx, "fetcher.FetchBoth", ticker)
	defer span.End()

	round := uuid.NewString()
	start := time.Now()
	f.logger.Debug().Str("round", round).Str("ticker", ticker).Msg("Fetch round started")

	var (
		prices     []models.PricePoint
		prediction *models.Prediction
	)

	// A plain group: a failing call must not cancel its sibling
	var g errgroup.Group
	g.Go(func() error {
		p, err := f.client.GetPriceData(ctx, ticker)
		if err != nil {
			return err
		}
		prices = p
		return nil
	})
	g.Go(func() error {
		p, err := f.client.GetPrediction(ctx, ticker)
		if err != nil {
			return err
		}
		prediction = p
		return nil
	})

	if err := g.Wait(); err != nil {
		trace.RecordError(span, err)
		msg := err.Error()
		if msg == "" {
			msg = FallbackErrorMessage
		}
		f.logger.Warn().
			Str("round", round).
			Str("ticker", ticker).
			Err(err).
			Dur("elapsed", time.Since(start)).
			Msg("Fetch round failed")
		return models.FetchResult{Err: msg}
	}

	if prices == nil {
		prices = []models.PricePoint{}
	}

	f.logger.Info().
		Str("round", round).
		Str("ticker", ticker).
		Int("points", len(prices)).
		Bool("prediction", prediction != nil).
		Dur("elapsed", time.Since(start)).
		Msg("Fetch round settled")

	return models.FetchResult{PriceSeries: prices, Prediction: prediction}
}
