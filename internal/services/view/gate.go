package view

import (
	"fmt"

	"github.com/bobmcallan/stocksage/internal/models"
)

// Kind identifies which mutually exclusive view is visible
type Kind string

const (
	KindPrompt  Kind = "prompt"
	KindLoading Kind = "loading"
	KindError   Kind = "error"
	KindEmpty   Kind = "empty"
	KindResults Kind = "results"
)

// User-facing copy for the non-results views
const (
	PromptMessage  = "Please enter a ticker to search."
	LoadingMessage = "Loading..."
)

// ViewState is the tagged result of Gate. Message is set for every kind but
// Results; Projection only for Results.
type ViewState struct {
	Kind       Kind       `json:"kind"`
	Ticker     string     `json:"ticker,omitempty"`
	Message    string     `json:"message,omitempty"`
	Projection Projection `json:"projection"`
}

// Gate selects the visible view. First match wins:
// Prompt (no ticker), Loading, Error, Empty (searched, no price data),
// then Results.
func Gate(s models.SearchState) ViewState {
	switch {
	case s.Ticker == "":
		return ViewState{Kind: KindPrompt, Message: PromptMessage}
	case s.Loading:
		return ViewState{Kind: KindLoading, Ticker: s.Ticker, Message: LoadingMessage}
	case s.HasError():
		return ViewState{Kind: KindError, Ticker: s.Ticker, Message: s.Error}
	case len(s.PriceSeries) == 0 && s.Prediction != nil:
		// A nil prediction means no round has completed yet
		return ViewState{Kind: KindEmpty, Ticker: s.Ticker, Message: EmptyMessage(s.Ticker)}
	default:
		return ViewState{
			Kind:       KindResults,
			Ticker:     s.Ticker,
			Projection: Project(s.PriceSeries, s.Prediction),
		}
	}
}

// EmptyMessage is shown when a search returned no price data
func EmptyMessage(ticker string) string {
	return fmt.Sprintf("No data found for ticker: %s", ticker)
}
