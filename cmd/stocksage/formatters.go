package main

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/stocksage/internal/services/view"
)

// Moving-average help text, shown as footnotes under the prediction card
const (
	shortMAHelp = "Short-term Moving Average (5 days). A quick trend indicator. If above Long MA, trend is bullish."
	longMAHelp  = "Long-term Moving Average (20 days). A slower trend indicator. If above Short MA, trend is bearish."
)

// toneIcon returns the accent marker for a tone
func toneIcon(t view.Tone) string {
	switch t {
	case view.TonePositive:
		return "🟢"
	case view.ToneNegative:
		return "🔴"
	default:
		return "🟡"
	}
}

// formatView renders a view state as markdown. chartPath is the rendered
// chart image, empty when none was produced.
func formatView(vs view.ViewState, chartPath string) string {
	switch vs.Kind {
	case view.KindPrompt, view.KindLoading:
		return vs.Message + "\n"
	case view.KindError:
		return fmt.Sprintf("**Error:** %s\n", vs.Message)
	case view.KindEmpty:
		return vs.Message + "\n"
	}
	return formatResults(vs.Ticker, vs.Projection, chartPath)
}

// formatResults renders each block whose data is present
func formatResults(ticker string, p view.Projection, chartPath string) string {
	if p.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", ticker))

	if p.Chart != nil {
		sb.WriteString(formatChart(p.Chart, chartPath))
	}
	if p.Sentiment != nil {
		sb.WriteString("## Sentiment\n\n")
		sb.WriteString(fmt.Sprintf("%s **%s**\n\n", toneIcon(p.Sentiment.Tone), p.Sentiment.Label))
	}
	if p.Prediction != nil {
		sb.WriteString(formatPrediction(p.Prediction))
	}
	if p.AvgNewsScore != nil {
		sb.WriteString("## Average News Score\n\n")
		sb.WriteString(fmt.Sprintf("**%s**\n\n", *p.AvgNewsScore))
	}
	if len(p.News) > 0 {
		sb.WriteString(formatNews(p.News))
	}

	return sb.String()
}

func formatChart(c *view.ChartSeries, chartPath string) string {
	var sb strings.Builder
	sb.WriteString("## Price Chart\n\n")

	n := c.Len()
	sb.WriteString(fmt.Sprintf("Close Price, last %d sessions", n))
	if n > 0 && c.Labels[0] != "" && c.Labels[n-1] != "" {
		sb.WriteString(fmt.Sprintf(" (%s to %s)", c.Labels[0], c.Labels[n-1]))
	}
	sb.WriteString("\n")

	for i := n - 1; i >= 0; i-- {
		if v := c.Values[i]; v != nil {
			sb.WriteString(fmt.Sprintf("Latest close: $%.2f\n", *v))
			break
		}
	}
	if chartPath != "" {
		sb.WriteString(fmt.Sprintf("Chart: %s\n", chartPath))
	}
	sb.WriteString("\n")
	return sb.String()
}

func formatPrediction(card *view.PredictionCard) string {
	var sb strings.Builder
	sb.WriteString("## Prediction\n\n")
	if card.Direction != "" {
		sb.WriteString(fmt.Sprintf("%s **%s**\n\n", toneIcon(card.Tone), card.Direction))
	}
	sb.WriteString(metricLine("Short MA¹", card.ShortMA))
	sb.WriteString(metricLine("Long MA²", card.LongMA))
	sb.WriteString(metricLine("Last Price", card.LastPrice))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("¹ %s\n", shortMAHelp))
	sb.WriteString(fmt.Sprintf("² %s\n\n", longMAHelp))
	return sb.String()
}

// metricLine renders "- Label: value"; an absent value leaves the label bare
func metricLine(label string, value *string) string {
	if value == nil {
		return fmt.Sprintf("- %s:\n", label)
	}
	return fmt.Sprintf("- %s: %s\n", label, *value)
}

func formatNews(entries []view.NewsEntry) string {
	var sb strings.Builder
	sb.WriteString("## Latest News\n\n")
	for _, n := range entries {
		title := n.Title
		if n.URL != "" {
			title = fmt.Sprintf("[%s](%s)", n.Title, n.URL)
		}
		sb.WriteString(fmt.Sprintf("- %s %s\n", toneIcon(n.Severity), title))
		if n.Summary != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", n.Summary))
		}
		sb.WriteString(fmt.Sprintf("  Score: %s\n", n.Score))
	}
	sb.WriteString("\n")
	return sb.String()
}
