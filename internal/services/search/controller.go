package search

import (
	"context"
	"strings"
	"sync"

	"github.com/bobmcallan/stocksage/internal/common"
	"github.com/bobmcallan/stocksage/internal/interfaces"
	"github.com/bobmcallan/stocksage/internal/models"
)

// KeyEnter is the only key that triggers a search
const KeyEnter = "Enter"

// Controller owns one SearchState. All mutation goes through its methods;
// readers get copies via Snapshot or OnChange listeners.
type Controller struct {
	fetcher interfaces.DataFetcher
	logger  *common.Logger

	mu        sync.Mutex
	state     models.SearchState
	listeners []func(models.SearchState)
}

// NewController creates a controller in the initial empty state
func NewController(fetcher interfaces.DataFetcher, logger *common.Logger) *Controller {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Controller{fetcher: fetcher, logger: logger}
}

// OnChange registers fn to receive a snapshot after every state change.
// Listeners run on the goroutine that caused the change, outside the lock.
func (c *Controller) OnChange(fn func(models.SearchState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() models.SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// SetTicker stores the upper-cased input. Nothing else changes.
func (c *Controller) SetTicker(raw string) {
	c.mu.Lock()
	c.state.Ticker = strings.ToUpper(raw)
	snap, listeners := c.state.Clone(), c.listeners
	c.mu.Unlock()

	notify(listeners, snap)
}

// OnKeyDown submits on Enter when a ticker is present. It reports whether a
// fetch round ran.
func (c *Controller) OnKeyDown(ctx context.Context, key string) bool {
	if key != KeyEnter {
		return false
	}
	c.mu.Lock()
	empty := c.state.Ticker == ""
	c.mu.Unlock()
	if empty {
		return false
	}
	return c.Submit(ctx)
}

// Submit runs one fetch round for the current ticker and blocks until it
// settles. It is a no-op returning false when the ticker is empty or a round
// is already in flight.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if c.state.Ticker == "" || c.state.Loading {
		c.mu.Unlock()
		return false
	}
	c.state.Loading = true
	c.state.Error = ""
	ticker := c.state.Ticker
	snap, listeners := c.state.Clone(), c.listeners
	c.mu.Unlock()

	notify(listeners, snap)

	result := c.fetcher.FetchBoth(ctx, ticker)

	c.mu.Lock()
	if result.Failed() {
		// Prior data is left in place
		c.state.Error = result.Err
	} else {
		c.state.PriceSeries = result.PriceSeries
		c.state.Prediction = result.Prediction
		c.state.Error = ""
	}
	c.state.Loading = false
	snap, listeners = c.state.Clone(), c.listeners
	c.mu.Unlock()

	if result.Failed() {
		c.logger.Debug().Str("ticker", ticker).Str("error", result.Err).Msg("Search failed")
	} else {
		c.logger.Debug().Str("ticker", ticker).Msg("Search completed")
	}

	notify(listeners, snap)
	return true
}

func notify(listeners []func(models.SearchState), snap models.SearchState) {
	for _, fn := range listeners {
		fn(snap.Clone())
	}
}
