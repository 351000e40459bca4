package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stocksage/internal/models"
)

func series(n int) []models.PricePoint {
	out := make([]models.PricePoint, n)
	for i := range out {
		out[i] = models.PricePoint{
			Date:  fmt.Sprintf("2024-01-%02dT00:00:00-05:00", i+1),
			Close: models.Float(float64(100 + i)),
		}
	}
	return out
}

func TestNewChartSeries_TakesLast30InOrder(t *testing.T) {
	s := NewChartSeries(series(45))

	require.Equal(t, 30, s.Len())
	require.Len(t, s.Values, 30)
	for i := 0; i < 30; i++ {
		assert.Equal(t, float64(100+15+i), *s.Values[i])
	}
	assert.Equal(t, "2024-01-16", s.Labels[0])
	assert.Equal(t, "2024-01-45", s.Labels[29])
}

func TestNewChartSeries_FewerThanWindow(t *testing.T) {
	s := NewChartSeries(series(10))
	require.Equal(t, 10, s.Len())
	assert.Equal(t, 100.0, *s.Values[0])
	assert.Equal(t, 109.0, *s.Values[9])
}

func TestNewChartSeries_Empty(t *testing.T) {
	s := NewChartSeries(nil)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Values)
}

func TestNewChartSeries_MissingFieldsPassThrough(t *testing.T) {
	s := NewChartSeries([]models.PricePoint{
		{Date: "", Close: models.Float(1)},
		{Date: "2024-03-01", Close: nil},
		{Date: "2024", Close: models.Float(2)},
	})
	assert.Equal(t, []string{"", "2024-03-01", "2024"}, s.Labels)
	assert.Nil(t, s.Values[1])
	assert.Equal(t, 2.0, *s.Values[2])
}

func TestFormatMetric(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{3, "3.00"},
		{12.345, "12.35"},
		{11.2, "11.20"},
		{0, "0.00"},
		{-1.005, "-1.00"},
		{1234567.891, "1234567.89"},
	}
	for _, tc := range cases {
		got := FormatMetric(models.Float(tc.in))
		require.NotNil(t, got)
		assert.Equal(t, tc.want, *got, "FormatMetric(%v)", tc.in)
	}

	assert.Nil(t, FormatMetric(nil), "absent must pass through, not become text")
}

func TestNewsSeverity(t *testing.T) {
	assert.Equal(t, TonePositive, NewsSeverity(1.5))
	assert.Equal(t, ToneNegative, NewsSeverity(-2))
	assert.Equal(t, ToneNeutral, NewsSeverity(0))
	assert.Equal(t, ToneNeutral, NewsSeverity(1))
	assert.Equal(t, ToneNeutral, NewsSeverity(-1))
	assert.Equal(t, TonePositive, NewsSeverity(10))
	assert.Equal(t, ToneNegative, NewsSeverity(-1.0001))
}

func TestSentimentTone(t *testing.T) {
	assert.Equal(t, TonePositive, SentimentTone("positive"))
	assert.Equal(t, ToneNegative, SentimentTone("negative"))
	assert.Equal(t, ToneNeutral, SentimentTone("neutral"))
	assert.Equal(t, ToneNeutral, SentimentTone("unknown"))
	assert.Equal(t, ToneNeutral, SentimentTone(""))
}

func TestDirectionTone(t *testing.T) {
	assert.Equal(t, TonePositive, DirectionTone("up"))
	assert.Equal(t, ToneNegative, DirectionTone("down"))
	assert.Equal(t, ToneNegative, DirectionTone(""))
}

func TestProject_FullPayload(t *testing.T) {
	pred := &models.Prediction{
		Sentiment:    "positive",
		Prediction:   "up",
		ShortMA:      models.Float(12.345),
		LongMA:       models.Float(11.2),
		LastPrice:    models.Float(12.5),
		AvgNewsScore: models.Float(1.2),
		NewsScores: []models.NewsItem{
			{Title: "X", Score: 2},
			{Title: "Y", URL: "https://example.com/y", Summary: "meh", Score: -0.5},
		},
	}

	p := Project(series(31), pred)

	require.NotNil(t, p.Chart)
	assert.Equal(t, 30, p.Chart.Len())

	require.NotNil(t, p.Sentiment)
	assert.Equal(t, "positive", p.Sentiment.Label)
	assert.Equal(t, TonePositive, p.Sentiment.Tone)

	require.NotNil(t, p.Prediction)
	assert.Equal(t, "up", p.Prediction.Direction)
	assert.Equal(t, TonePositive, p.Prediction.Tone)
	assert.Equal(t, "12.35", *p.Prediction.ShortMA)
	assert.Equal(t, "11.20", *p.Prediction.LongMA)
	assert.Equal(t, "12.50", *p.Prediction.LastPrice)

	require.NotNil(t, p.AvgNewsScore)
	assert.Equal(t, "1.20", *p.AvgNewsScore)

	require.Len(t, p.News, 2)
	assert.Equal(t, NewsEntry{Title: "X", Score: "2", Severity: TonePositive}, p.News[0])
	assert.Equal(t, "https://example.com/y", p.News[1].URL)
	assert.Equal(t, "meh", p.News[1].Summary)
	assert.Equal(t, "-0.5", p.News[1].Score)
	assert.Equal(t, ToneNeutral, p.News[1].Severity)
	assert.False(t, p.IsEmpty())
}

func TestProject_BlocksGatedIndependently(t *testing.T) {
	p := Project(nil, &models.Prediction{Prediction: "down"})

	assert.Nil(t, p.Chart)
	assert.Nil(t, p.Sentiment, "no sentiment field, no card")
	require.NotNil(t, p.Prediction, "prediction card follows the payload, not its fields")
	assert.Equal(t, ToneNegative, p.Prediction.Tone)
	assert.Nil(t, p.Prediction.ShortMA)
	assert.Nil(t, p.AvgNewsScore)
	assert.Empty(t, p.News)
}

func TestProject_NoPrediction(t *testing.T) {
	p := Project(series(2), nil)
	require.NotNil(t, p.Chart)
	assert.Nil(t, p.Prediction)
	assert.Nil(t, p.Sentiment)

	assert.True(t, Project(nil, nil).IsEmpty())
}
