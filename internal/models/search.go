package models

// SearchState is the state of one search session. It is owned by a single
// controller and handed out only as copies.
type SearchState struct {
	Ticker      string       `json:"ticker"`
	PriceSeries []PricePoint `json:"price_series"`
	Prediction  *Prediction  `json:"prediction,omitempty"`
	Loading     bool         `json:"loading"`
	Error       string       `json:"error,omitempty"`
}

// HasError reports whether the last fetch round failed
func (s SearchState) HasError() bool {
	return s.Error != ""
}

// Clone returns a deep copy safe to hand to another goroutine
func (s SearchState) Clone() SearchState {
	c := s
	c.PriceSeries = clonePoints(s.PriceSeries)
	c.Prediction = s.Prediction.Clone()
	return c
}

// FetchResult is the joined outcome of one fetch round: either both payloads
// or a failure message, never a mix.
type FetchResult struct {
	PriceSeries []PricePoint
	Prediction  *Prediction
	Err         string
}

// Failed reports whether the round failed
func (r FetchResult) Failed() bool {
	return r.Err != ""
}

func clonePoints(points []PricePoint) []PricePoint {
	if points == nil {
		return nil
	}
	out := make([]PricePoint, len(points))
	for i, p := range points {
		out[i] = PricePoint{Date: p.Date, Close: cloneFloat(p.Close)}
	}
	return out
}
