package carbon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	postcode string
	from, to time.Time
}

type recordingProvider struct {
	calls []call
	data  Intensity
	err   error
}

func (p *recordingProvider) RegionalIntensity(_ context.Context, postcode string, from, to time.Time) (Intensity, error) {
	p.calls = append(p.calls, call{postcode: postcode, from: from, to: to})
	return p.data, p.err
}

func TestServiceEntryPoints(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 34, 56, 0, time.UTC)

	tests := []struct {
		name string
		run  func(*Service) (Intensity, error)
		from time.Time
		to   time.Time
	}{
		{
			name: "seven day history",
			run:  func(s *Service) (Intensity, error) { return s.SevenDayHistory(context.Background(), "SW1A 1AA") },
			from: now.Add(-7 * 24 * time.Hour),
			to:   now,
		},
		{
			name: "current 30 minutes",
			run:  func(s *Service) (Intensity, error) { return s.CurrentForecast(context.Background(), "SW1A 1AA") },
			from: now,
			to:   now.Add(30 * time.Minute),
		},
		{
			name: "forecast 48 hours",
			run:  func(s *Service) (Intensity, error) { return s.Forecast48h(context.Background(), "SW1A 1AA") },
			from: now,
			to:   now.Add(48 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &recordingProvider{data: Intensity(`[]`)}
			svc := NewService(p, clockwork.NewFakeClockAt(now))

			data, err := tt.run(svc)
			require.NoError(t, err)
			assert.Equal(t, Intensity(`[]`), data)

			require.Len(t, p.calls, 1)
			assert.Equal(t, "SW1A 1AA", p.calls[0].postcode)
			assert.True(t, tt.from.Equal(p.calls[0].from))
			assert.True(t, tt.to.Equal(p.calls[0].to))
		})
	}
}

func TestServicePropagatesUpstreamError(t *testing.T) {
	upErr := &UpstreamError{Kind: KindStatus, Err: errors.New("status 503")}
	svc := NewService(&recordingProvider{err: upErr}, clockwork.NewFakeClock())

	_, err := svc.Forecast48h(context.Background(), "M1")

	var got *UpstreamError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, KindStatus, got.Kind)
}

func TestServiceUnknownWindow(t *testing.T) {
	p := &recordingProvider{}
	svc := NewService(p, nil)

	_, err := svc.Fetch(context.Background(), "M1", "history-1y")
	require.Error(t, err)
	assert.Empty(t, p.calls)
}
