// Package models defines data structures for StockSage
package models

// PricePoint is one row of the price-data payload. Only Date and Close are
// consumed; the service sends the full OHLCV row.
type PricePoint struct {
	Date  string   `json:"Date"`            // ISO-8601, empty when absent
	Close *float64 `json:"Close,omitempty"` // nil when absent
}

// NewsItem is a scored news article from the prediction payload
type NewsItem struct {
	Title   string  `json:"title"`
	URL     string  `json:"url,omitempty"`
	Summary string  `json:"summary,omitempty"`
	Score   float64 `json:"score"`
}

// Prediction is the derived bundle returned by /predict. Every field is
// independently optional; empty strings, nil pointers and nil slices mean absent.
type Prediction struct {
	Ticker       string     `json:"ticker,omitempty"`
	Sentiment    string     `json:"sentiment,omitempty"`  // positive, negative or neutral
	Prediction   string     `json:"prediction,omitempty"` // up or down
	ShortMA      *float64   `json:"short_ma,omitempty"`
	LongMA       *float64   `json:"long_ma,omitempty"`
	LastPrice    *float64   `json:"last_price,omitempty"`
	AvgNewsScore *float64   `json:"avg_news_score,omitempty"`
	NewsScores   []NewsItem `json:"news_scores,omitempty"`
	PriceText    string     `json:"price_text,omitempty"`
	Error        string     `json:"error,omitempty"` // service-side note, never surfaced as a client error
}

// Clone returns a deep copy of the prediction
func (p *Prediction) Clone() *Prediction {
	if p == nil {
		return nil
	}
	c := *p
	c.ShortMA = cloneFloat(p.ShortMA)
	c.LongMA = cloneFloat(p.LongMA)
	c.LastPrice = cloneFloat(p.LastPrice)
	c.AvgNewsScore = cloneFloat(p.AvgNewsScore)
	if p.NewsScores != nil {
		c.NewsScores = append([]NewsItem(nil), p.NewsScores...)
	}
	return &c
}

// Float returns a pointer to v, for building optional fields
func Float(v float64) *float64 {
	return &v
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
