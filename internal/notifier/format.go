package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

func directionEmoji(d model.Direction) string {
	switch d {
	case model.DirectionUp:
		return "🔼"
	case model.DirectionDown:
		return "🔽"
	default:
		return "⚖️"
	}
}

// FormatSpotPrice renders a spot price as a Markdown message.
func FormatSpotPrice(symbol string, spot *model.SpotPrice) string {
	ts := time.UnixMilli(spot.Timestamp).UTC().Format("15:04:05 MST")
	return fmt.Sprintf("*%s/USD:* $%.2f\n_source: %s, %s_", symbol, spot.Price, spot.Source, ts)
}

// FormatAnalysis renders a full analysis as a Markdown message.
func FormatAnalysis(symbol string, a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("*Analysis for %s/USD*\n", symbol))
	b.WriteString(fmt.Sprintf("*Current Price:* $%.2f\n\n", a.CurrentPrice))

	for _, p := range a.Predictions {
		b.WriteString(fmt.Sprintf("*%s* %s %s → $%.2f (%.1f%%)\n", p.Timeframe, directionEmoji(p.Direction), p.Direction, p.TargetPrice, p.Confidence))
		rr := "n/a"
		if p.RiskRewardDefined {
			rr = fmt.Sprintf("%.2f", p.RiskRewardRatio)
		}
		b.WriteString(fmt.Sprintf("SL: $%.2f | TP: $%.2f | R/R: %s\n", p.StopLoss, p.TakeProfit, rr))
		if len(p.Reasoning) > 0 {
			b.WriteString("Factors: " + strings.Join(p.Reasoning, ", ") + "\n")
		}
		b.WriteString("\n")
	}

	ind := a.Indicators
	b.WriteString("*Key Indicators:*\n")
	b.WriteString(fmt.Sprintf("RSI: %.2f | MACD: %.2f | ATR: %.2f\n", ind.RSI, ind.MACD, ind.ATR))
	b.WriteString(fmt.Sprintf("BB: %.2f / %.2f / %.2f\n", ind.Bollinger.Lower, ind.Bollinger.Middle, ind.Bollinger.Upper))
	b.WriteString(fmt.Sprintf("S/R: %.2f / %.2f | %.2f / %.2f\n",
		ind.SupportResistance.Support, ind.SupportResistance.Support2,
		ind.SupportResistance.Resistance2, ind.SupportResistance.Resistance))
	b.WriteString(fmt.Sprintf("Volume ratio: %.2f\n\n", ind.VolumeRatio))

	b.WriteString("*Sentiment:*\n")
	b.WriteString(fmt.Sprintf("Social: %.2f | News: %.2f | Fear/Greed: %.2f\n",
		a.Sentiment.Average(), a.NewsSentiment, a.Onchain.FearGreedIndex))
	b.WriteString(fmt.Sprintf("Mempool: %d (%s) | Whales: %d\n\n",
		a.Onchain.MempoolSize, a.Onchain.NetworkHealth, a.Onchain.WhaleTransactions))

	b.WriteString(fmt.Sprintf("*Regime:* %s %s (strength %.2f, volatility %s)\n",
		a.Regime.Type, a.Regime.Direction, a.Regime.Strength, a.Regime.Volatility))
	if a.Anomaly.Detected {
		b.WriteString("⚠️ " + strings.Join(a.Anomaly.Details, "; ") + "\n")
	}
	b.WriteString("*Sessions:* " + formatSessions(a.MarketHours))

	return b.String()
}

func formatSessions(s model.MarketSessionState) string {
	var open []string
	for _, r := range []struct {
		name   string
		status model.SessionStatus
	}{
		{"Asia", s.Asia},
		{"Europe", s.Europe},
		{"America", s.America},
	} {
		switch {
		case r.status.Peak:
			open = append(open, r.name+" (peak)")
		case r.status.Active:
			open = append(open, r.name)
		}
	}
	if len(open) == 0 {
		return "all closed"
	}
	return strings.Join(open, ", ")
}
