// Package view derives display-ready projections from search state and
// selects which view the presentation layer shows. Everything here is pure.
package view

import (
	"strconv"

	"github.com/bobmcallan/stocksage/internal/models"
)

// ChartWindow is the number of most recent price points charted
const ChartWindow = 30

// Tone classifies a value for presentation emphasis
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// ChartSeries holds parallel label and value sequences for the price chart
type ChartSeries struct {
	Labels []string   `json:"labels"`
	Values []*float64 `json:"values"` // nil entries are passed through as-is
}

// Len returns the number of points in the series
func (s ChartSeries) Len() int {
	return len(s.Labels)
}

// NewChartSeries takes the last ChartWindow points in their original order.
// Labels are the first 10 characters of the date (YYYY-MM-DD).
func NewChartSeries(points []models.PricePoint) ChartSeries {
	start := 0
	if len(points) > ChartWindow {
		start = len(points) - ChartWindow
	}
	window := points[start:]

	series := ChartSeries{
		Labels: make([]string, len(window)),
		Values: make([]*float64, len(window)),
	}
	for i, p := range window {
		series.Labels[i] = dateLabel(p.Date)
		series.Values[i] = p.Close
	}
	return series
}

func dateLabel(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

// FormatMetric formats a number to exactly two decimals. Absent stays absent.
func FormatMetric(x *float64) *string {
	if x == nil {
		return nil
	}
	s := strconv.FormatFloat(*x, 'f', 2, 64)
	return &s
}

// NewsSeverity buckets a news score; both thresholds are strict
func NewsSeverity(score float64) Tone {
	switch {
	case score > 1:
		return TonePositive
	case score < -1:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// SentimentTone maps a sentiment label onto a tone
func SentimentTone(sentiment string) Tone {
	switch sentiment {
	case "positive":
		return TonePositive
	case "negative":
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// DirectionTone maps a predicted direction onto a tone. Anything but "up" reads as negative.
func DirectionTone(prediction string) Tone {
	if prediction == "up" {
		return TonePositive
	}
	return ToneNegative
}

// SentimentCard is shown when the prediction carries a sentiment
type SentimentCard struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// PredictionCard is shown whenever a prediction payload is present
type PredictionCard struct {
	Direction string  `json:"direction,omitempty"`
	Tone      Tone    `json:"tone"`
	ShortMA   *string `json:"short_ma,omitempty"`
	LongMA    *string `json:"long_ma,omitempty"`
	LastPrice *string `json:"last_price,omitempty"`
}

// NewsEntry is one row of the news list
type NewsEntry struct {
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Score    string `json:"score"`
	Severity Tone   `json:"severity"`
}

// Projection is the Results view model. Each block is nil/empty when its
// backing data is absent.
type Projection struct {
	Chart        *ChartSeries    `json:"chart,omitempty"`
	Sentiment    *SentimentCard  `json:"sentiment,omitempty"`
	Prediction   *PredictionCard `json:"prediction,omitempty"`
	AvgNewsScore *string         `json:"avg_news_score,omitempty"`
	News         []NewsEntry     `json:"news,omitempty"`
}

// IsEmpty reports whether no block would render
func (p Projection) IsEmpty() bool {
	return p.Chart == nil && p.Sentiment == nil && p.Prediction == nil && p.AvgNewsScore == nil && len(p.News) == 0
}

// Project builds the Results projection from raw state
func Project(priceSeries []models.PricePoint, prediction *models.Prediction) Projection {
	var proj Projection

	if len(priceSeries) > 0 {
		series := NewChartSeries(priceSeries)
		proj.Chart = &series
	}

	if prediction == nil {
		return proj
	}

	if prediction.Sentiment != "" {
		proj.Sentiment = &SentimentCard{
			Label: prediction.Sentiment,
			Tone:  SentimentTone(prediction.Sentiment),
		}
	}

	proj.Prediction = &PredictionCard{
		Direction: prediction.Prediction,
		Tone:      DirectionTone(prediction.Prediction),
		ShortMA:   FormatMetric(prediction.ShortMA),
		LongMA:    FormatMetric(prediction.LongMA),
		LastPrice: FormatMetric(prediction.LastPrice),
	}

	proj.AvgNewsScore = FormatMetric(prediction.AvgNewsScore)

	for _, n := range prediction.NewsScores {
		proj.News = append(proj.News, NewsEntry{
			Title:    n.Title,
			URL:      n.URL,
			Summary:  n.Summary,
			Score:    strconv.FormatFloat(n.Score, 'f', -1, 64),
			Severity: NewsSeverity(n.Score),
		})
	}

	return proj
}
