package carbon

import (
	"fmt"
	"time"
)

// TimeLayout is the minute-precision UTC layout the carbon intensity API expects in paths.
const TimeLayout = "2006-01-02T15:04Z"

// WindowKind names one of the supported query windows. The values double as route suffixes.
type WindowKind string

const (
	WindowHistory7d   WindowKind = "history-7d"
	WindowCurrent30m  WindowKind = "current-30m"
	WindowForecast48h WindowKind = "forecast-48h"
)

// WindowKinds lists the supported windows in route order.
var WindowKinds = []WindowKind{WindowHistory7d, WindowCurrent30m, WindowForecast48h}

// ParseWindowKind validates a window name.
func ParseWindowKind(s string) (WindowKind, error) {
	for _, k := range WindowKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown window %q (want one of %v)", s, WindowKinds)
}

// Window is a closed UTC time range with From <= To.
type Window struct {
	From time.Time
	To   time.Time
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.To.Sub(w.From)
}

// HistoryWindow covers the seven days up to now.
func HistoryWindow(now time.Time) Window {
	now = now.UTC()
	return Window{From: now.AddDate(0, 0, -7), To: now}
}

// CurrentWindow covers the next thirty minutes.
func CurrentWindow(now time.Time) Window {
	now = now.UTC()
	return Window{From: now, To: now.Add(30 * time.Minute)}
}

// ForecastWindow covers the next forty-eight hours.
func ForecastWindow(now time.Time) Window {
	now = now.UTC()
	return Window{From: now, To: now.Add(48 * time.Hour)}
}

// WindowFor builds the window of the given kind anchored at now.
func WindowFor(kind WindowKind, now time.Time) (Window, error) {
	switch kind {
	case WindowHistory7d:
		return HistoryWindow(now), nil
	case WindowCurrent30m:
		return CurrentWindow(now), nil
	case WindowForecast48h:
		return ForecastWindow(now), nil
	default:
		return Window{}, fmt.Errorf("unknown window %q", kind)
	}
}

// FormatTime renders t in UTC at minute precision with a trailing "Z".
// Seconds and below are truncated, never rounded.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
