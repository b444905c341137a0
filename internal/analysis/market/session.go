package market

import (
	"time"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

// Session is a trading region's open window in UTC hours, [Open, Close).
type Session struct {
	Name      string
	Open      int
	Close     int
	PeakOpen  int
	PeakClose int
}

var (
	Asia    = Session{Name: "asia", Open: 0, Close: 9, PeakOpen: 1, PeakClose: 4}
	Europe  = Session{Name: "europe", Open: 7, Close: 16, PeakOpen: 8, PeakClose: 11}
	America = Session{Name: "america", Open: 13, Close: 22, PeakOpen: 14, PeakClose: 17}
)

// Status reports whether the session is open and in its busiest hours.
func (s Session) Status(hour int) model.SessionStatus {
	return model.SessionStatus{
		Active: inWindow(hour, s.Open, s.Close),
		Peak:   inWindow(hour, s.PeakOpen, s.PeakClose),
	}
}

// inWindow handles windows that wrap past midnight.
func inWindow(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

// SessionState derives regional session state purely from the UTC hour of t.
func SessionState(t time.Time) model.MarketSessionState {
	hour := t.UTC().Hour()
	return model.MarketSessionState{
		Asia:    Asia.Status(hour),
		Europe:  Europe.Status(hour),
		America: America.Status(hour),
	}
}
