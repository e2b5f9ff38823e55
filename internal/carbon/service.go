package carbon

import (
	"context"

	"github.com/jonboulle/clockwork"
)

// Service resolves the fixed query windows against a Provider.
type Service struct {
	provider Provider
	clock    clockwork.Clock
}

// NewService creates a new Service. A nil clock means wall-clock time.
func NewService(provider Provider, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		provider: provider,
		clock:    clock,
	}
}

// SevenDayHistory returns intensity for the past seven days.
func (s *Service) SevenDayHistory(ctx context.Context, postcode string) (Intensity, error) {
	return s.Fetch(ctx, postcode, WindowHistory7d)
}

// CurrentForecast returns the forecast for the next thirty minutes.
func (s *Service) CurrentForecast(ctx context.Context, postcode string) (Intensity, error) {
	return s.Fetch(ctx, postcode, WindowCurrent30m)
}

// Forecast48h returns the forecast for the next forty-eight hours.
func (s *Service) Forecast48h(ctx context.Context, postcode string) (Intensity, error) {
	return s.Fetch(ctx, postcode, WindowForecast48h)
}

// Fetch anchors the window of the given kind at the current time and queries the provider.
func (s *Service) Fetch(ctx context.Context, postcode string, kind WindowKind) (Intensity, error) {
	w, err := WindowFor(kind, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return s.provider.RegionalIntensity(ctx, postcode, w.From, w.To)
}
