package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"nodefit/pkg/logger"
	"nodefit/pkg/weather"
)

// Geolocation failure codes reported by the client.
const (
	GeoPermissionDenied    = 1
	GeoPositionUnavailable = 2
	GeoTimeout             = 3
)

// GeolocationMessage returns a user-readable message for a geolocation
// failure code.
func GeolocationMessage(code int) string {
	switch code {
	case GeoPermissionDenied:
		return "Location permission denied. Please enable location access."
	case GeoPositionUnavailable:
		return "Location information unavailable."
	case GeoTimeout:
		return "Location request timed out."
	default:
		return "An unknown error occurred getting location."
	}
}

// WeatherSource reads weather and air quality for a coordinate.
type WeatherSource interface {
	Current(ctx context.Context, lat, lon float64) (*weather.Conditions, error)
	AirQuality(ctx context.Context, lat, lon float64) (*weather.AirQuality, error)
}

// Location is where the client is, or why it could not tell.
type Location struct {
	Latitude  *float64
	Longitude *float64
	GeoError  int
}

// EnvironmentSnapshot is the weather and air quality at a location. Either
// half may be missing on its own.
type EnvironmentSnapshot struct {
	Available  bool                `json:"available"`
	Message    string              `json:"message,omitempty"`
	Weather    *weather.Conditions `json:"weather,omitempty"`
	AirQuality *weather.AirQuality `json:"air_quality,omitempty"`
}

// EnvironmentService combines weather and air quality.
type EnvironmentService struct {
	source WeatherSource
	logger *zap.Logger
}

// NewEnvironmentService creates a new EnvironmentService.
func NewEnvironmentService(source WeatherSource, log *zap.Logger) *EnvironmentService {
	return &EnvironmentService{source: source, logger: logger.OrNop(log)}
}

// Snapshot fetches weather and air quality concurrently. Failures never
// surface as errors; they only leave the matching half empty.
func (s *EnvironmentService) Snapshot(ctx context.Context, loc Location) EnvironmentSnapshot {
	if loc.GeoError != 0 {
		return EnvironmentSnapshot{Message: GeolocationMessage(loc.GeoError)}
	}
	if loc.Latitude == nil || loc.Longitude == nil {
		return EnvironmentSnapshot{Message: "Location is required for environmental data."}
	}
	if s.source == nil {
		return EnvironmentSnapshot{Message: "Environmental data is not configured."}
	}
	lat, lon := *loc.Latitude, *loc.Longitude

	var (
		snap EnvironmentSnapshot
		wg   sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		cond, err := s.source.Current(ctx, lat, lon)
		if err != nil {
			s.logger.Warn("weather fetch failed", zap.Error(err))
			return
		}
		snap.Weather = cond
	}()
	go func() {
		defer wg.Done()
		aq, err := s.source.AirQuality(ctx, lat, lon)
		if err != nil {
			s.logger.Warn("air quality fetch failed", zap.Error(err))
			return
		}
		snap.AirQuality = aq
	}()
	wg.Wait()

	snap.Available = snap.Weather != nil || snap.AirQuality != nil
	if !snap.Available {
		snap.Message = "Environmental data is currently unavailable."
	}
	return snap
}
