package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/stocksage/internal/common"
	"github.com/bobmcallan/stocksage/internal/models"
	"github.com/bobmcallan/stocksage/internal/services/search"
	"github.com/bobmcallan/stocksage/internal/services/view"
)

// App is the terminal front end: every input line is a ticker edit followed by Enter.
type App struct {
	controller *search.Controller
	cache      *ImageCache // nil disables chart rendering
	chartOpts  view.ChartOptions
	logger     *common.Logger
	now        func() time.Time // injectable clock for testing

	mu  sync.Mutex // serialises writes to out
	out io.Writer
}

// NewApp wires an App to a controller and subscribes to its state changes.
func NewApp(controller *search.Controller, cache *ImageCache, chartOpts view.ChartOptions, out io.Writer, logger *common.Logger) *App {
	a := &App{
		controller: controller,
		cache:      cache,
		chartOpts:  chartOpts,
		logger:     logger,
		now:        time.Now,
		out:        out,
	}
	controller.OnChange(a.onChange)
	return a
}

// onChange shows the loading view as soon as a round starts. Settled states
// are rendered by HandleLine once Submit returns.
func (a *App) onChange(s models.SearchState) {
	if s.Loading {
		a.render(view.Gate(s))
	}
}

// Run reads lines from in until EOF, ":q" or ":quit", or ctx is cancelled.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	a.render(view.Gate(a.controller.Snapshot()))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == ":q" || line == ":quit" {
			return nil
		}
		a.HandleLine(ctx, line)
	}
	return scanner.Err()
}

// HandleLine applies one line of input and renders the resulting view.
func (a *App) HandleLine(ctx context.Context, line string) {
	a.controller.SetTicker(line)
	a.controller.OnKeyDown(ctx, search.KeyEnter)
	a.render(view.Gate(a.controller.Snapshot()))
}

func (a *App) render(vs view.ViewState) {
	chartPath := ""
	if vs.Kind == view.KindResults && vs.Projection.Chart != nil {
		chartPath = a.renderChart(vs.Ticker, *vs.Projection.Chart)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprint(a.out, formatView(vs, chartPath))
}

// renderChart writes the chart PNG to the cache and returns its path, or "" on failure.
func (a *App) renderChart(ticker string, series view.ChartSeries) string {
	if a.cache == nil {
		return ""
	}

	png, err := view.RenderPriceChart(ticker, series, a.chartOpts)
	if err != nil {
		a.logger.Warn().Err(err).Str("ticker", ticker).Msg("Chart not rendered")
		return ""
	}

	path, err := a.cache.Put(ImageName(ticker, a.now()), png)
	if err != nil {
		a.logger.Warn().Err(err).Str("ticker", ticker).Msg("Failed to cache chart image")
		return ""
	}
	return path
}
