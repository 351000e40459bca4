package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to w.
func PrintBanner(w io.Writer, config *Config, logger *Logger) {
	version := GetVersion()
	build := GetBuild()
	commit := GetGitCommit()

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 62
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		`  ____  _             _     ____`,
		` / ___|| |_ ___   ___| | __/ ___|  __ _  __ _  ___`,
		` \___ \| __/ _ \ / __| |/ /\___ \ / _' |/ _' |/ _ \`,
		`  ___) | || (_) | (__|   <  ___) | (_| | (_| |  __/`,
		` |____/ \__\___/ \___|_|\_\|____/ \__,_|\__, |\___|`,
		`                                        |___/`,
	}

	fmt.Fprintf(w, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(w, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s  Price history, prediction and news sentiment%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "\n%s\n\n", hr)

	kvPad := 16
	kvLines := [][2]string{
		{"Version", version},
		{"Build", build},
		{"Commit", commit},
		{"Environment", config.Environment},
		{"API", config.API.BaseURL},
		{"Chart Dir", config.Chart.Dir},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(w, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s\n\n", hr)

	logger.Info().
		Str("version", version).
		Str("build", build).
		Str("commit", commit).
		Str("environment", config.Environment).
		Str("api_url", config.API.BaseURL).
		Msg("Application started")
}

// PrintShutdownBanner displays the application shutdown banner to w.
func PrintShutdownBanner(w io.Writer, logger *Logger) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	hr := lineColor + strings.Repeat("═", 42) + banner.ColorReset

	fmt.Fprintf(w, "\n%s\n", hr)
	fmt.Fprintf(w, "%s  STOCKSAGE: SHUTTING DOWN%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "%s\n\n", hr)

	logger.Info().Msg("Application shutting down")
}
