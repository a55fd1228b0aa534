package weather

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ayushkr5561/virtual-closet/internal/models"
)

// Provider fetches weather data for a location.
type Provider interface {
	Current(ctx context.Context, loc models.LocationSpec) (models.Snapshot, error)
	Forecast(ctx context.Context, loc models.LocationSpec) (models.ForecastSeries, error)
}

// Locator is a best-effort source of device coordinates. ok=false means "no
// location available" — a normal outcome, never an error — and callers fall
// back to a default city.
type Locator interface {
	Locate(ctx context.Context) (lat, lon float64, ok bool)
}

// StaticLocator reports fixed coordinates.
type StaticLocator struct {
	Lat, Lon float64
}

func (l StaticLocator) Locate(context.Context) (float64, float64, bool) {
	return l.Lat, l.Lon, true
}

// NoLocator reports that no location capability exists.
type NoLocator struct{}

func (NoLocator) Locate(context.Context) (float64, float64, bool) {
	return 0, 0, false
}

// Service is the weather gateway: it resolves a location, fetches current
// conditions and the forecast together, and keeps the most recent bundle.
type Service struct {
	provider    Provider
	locator     Locator
	defaultCity string
	cache       *bundleCache

	mu   sync.RWMutex
	last models.Bundle
	ok   bool
}

func NewService(provider Provider, locator Locator, defaultCity string, cacheTTL time.Duration) *Service {
	if locator == nil {
		locator = NoLocator{}
	}
	return &Service{
		provider:    provider,
		locator:     locator,
		defaultCity: defaultCity,
		cache:       newBundleCache(cacheTTL),
	}
}

// ResolveLocation applies the fallback chain: an explicit spec wins, then the
// saved user location, then locator coordinates, then the default city.
func (s *Service) ResolveLocation(ctx context.Context, explicit models.LocationSpec, savedCity string) models.LocationSpec {
	if explicit.HasCoords || explicit.City != "" {
		return explicit
	}
	if savedCity != "" {
		return models.LocationSpec{City: savedCity}
	}
	if lat, lon, ok := s.locator.Locate(ctx); ok {
		return models.LocationSpec{Lat: lat, Lon: lon, HasCoords: true}
	}
	return models.LocationSpec{City: s.defaultCity}
}

// Fetch refreshes weather for a location. Current conditions and the forecast
// are fetched concurrently and applied together: if either fails the previous
// bundle is left untouched and the error is returned. Overlapping fetches
// settle last-write-wins.
func (s *Service) Fetch(ctx context.Context, loc models.LocationSpec) (models.Bundle, error) {
	key := loc.Key()
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	var (
		current models.Snapshot
		series  models.ForecastSeries
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.provider.Current(gctx, loc)
		return err
	})
	g.Go(func() error {
		var err error
		series, err = s.provider.Forecast(gctx, loc)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Bundle{}, err
	}

	bundle := models.Bundle{Current: current, Forecast: series}
	s.cache.Set(key, bundle)

	s.mu.Lock()
	s.last = bundle
	s.ok = true
	s.mu.Unlock()

	return bundle, nil
}

// Last returns the most recently applied bundle, if any.
func (s *Service) Last() (models.Bundle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.ok
}
