package notifier

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"BoomDoomRadar/internal/dashboard"
	"BoomDoomRadar/internal/format"
	"BoomDoomRadar/internal/model"
	"BoomDoomRadar/internal/strategy"
)

// FormatSummary renders the stats panel of v as Telegram HTML.
func FormatSummary(v dashboard.View) string {
	var b strings.Builder

	if !v.Selected {
		return "No coin selected. Use /coin &lt;symbol&gt;."
	}
	b.WriteString(fmt.Sprintf("%s <b>%s</b> (%s) | %s\n", v.Coin.Icon, html.EscapeString(v.Coin.Name),
		html.EscapeString(v.Coin.Symbol), v.TimeFrame))
	if v.Synthetic {
		b.WriteString("⚠️ <i>Synthetic data in use</i>")
		if v.LoadError != nil {
			b.WriteString(fmt.Sprintf(": %s", html.EscapeString(v.LoadError.Error())))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if !v.HasSummary {
		b.WriteString("No data points in this time frame.\n")
		return b.String()
	}
	s := v.Summary

	b.WriteString(fmt.Sprintf("Price: %s\n", format.Price(s.Latest.Price)))
	b.WriteString(fmt.Sprintf("24h High: %s | 24h Low: %s\n", format.Price(s.High24h), format.Price(s.Low24h)))
	b.WriteString(fmt.Sprintf("Market Cap: %s (%s)\n", format.Number(s.Latest.MarketCap), s.MarketCapChange))
	b.WriteString(fmt.Sprintf("Volume: %s (%s)\n", format.Number(s.Latest.Volume), s.VolumeChange))
	b.WriteString(fmt.Sprintf("RSI: %s (from prices: %s)\n", format.Fixed(s.Latest.RSI, 2), format.Fixed(s.PriceRSI, 2)))
	if s.PriceSMA > 0 {
		b.WriteString(fmt.Sprintf("SMA(24): %s\n", format.Price(s.PriceSMA)))
	}
	if s.Latest.HasForecast() {
		b.WriteString(fmt.Sprintf("Forecast: %s\n", format.Price(*s.Latest.ForecastPrice)))
	}
	b.WriteString(fmt.Sprintf("Whales (24h): %d, %s\n", s.WhaleCount, s.WhaleVerdict))
	b.WriteString(fmt.Sprintf("Lifecycle: %s\n\n", html.EscapeString(s.Lifecycle)))

	b.WriteString(fmt.Sprintf("🎯 <b>Boom or Doom: %d/%d</b> %s\n", s.Score.Value, strategy.MaxScore, s.ScoreVerdict))
	if s.Score.Insufficient {
		b.WriteString("  (fewer than 24 records, score held at 0)\n")
	} else {
		for _, f := range s.Score.Factors {
			b.WriteString(fmt.Sprintf("  %s(%s): %s\n", f.Name, html.EscapeString(f.Commentary), format.Fixed(f.Weighted, 3)))
		}
	}

	b.WriteString(fmt.Sprintf("\n%d of %d records", len(v.Series), v.Total))
	if !v.LoadedAt.IsZero() {
		b.WriteString(fmt.Sprintf(" | loaded %s", v.LoadedAt.UTC().Format("2006-01-02 15:04 UTC")))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatLoads renders recent load events, newest first.
func FormatLoads(events []model.LoadEvent) string {
	if len(events) == 0 {
		return "No loads recorded."
	}
	var b strings.Builder
	b.WriteString("🧾 <b>Recent loads</b>\n\n")
	for _, e := range events {
		line := fmt.Sprintf("%s %s %s rows=%d rejected=%d %s",
			e.At.UTC().Format("01-02 15:04:05"), html.EscapeString(e.Symbol), e.Outcome,
			e.Rows, e.Rejected, e.Duration.Round(time.Millisecond))
		if e.Synthetic {
			line += " [synthetic]"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// FormatCoins renders a coin list, one per line.
func FormatCoins(list []model.Coin) string {
	if len(list) == 0 {
		return "No matching coins."
	}
	var b strings.Builder
	for _, c := range list {
		b.WriteString(fmt.Sprintf("%s %s (%s)\n", c.Icon, html.EscapeString(c.Name), html.EscapeString(c.Symbol)))
	}
	return b.String()
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "Available commands:\n" +
		"• /coin &lt;symbol or name&gt;\n" +
		"• /tf &lt;1D|1W|1M|3M|1Y|ALL&gt;\n" +
		"• /stats\n" +
		"• /search &lt;text&gt;\n" +
		"• /refresh\n" +
		"• /loads"
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags turns Telegram HTML into plain text.
func StripTags(s string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(s, ""))
}
