package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ayushkr5561/virtual-closet/internal/closet"
	"github.com/ayushkr5561/virtual-closet/internal/models"
	"github.com/ayushkr5561/virtual-closet/internal/observability"
	"github.com/ayushkr5561/virtual-closet/internal/owm"
	"github.com/ayushkr5561/virtual-closet/internal/store"
	"github.com/ayushkr5561/virtual-closet/internal/weather"
	apperrors "github.com/ayushkr5561/virtual-closet/pkg/errors"
)

// locationFromQuery parses an explicit city or coordinate pair from query
// parameters. An empty spec means "use the fallback chain".
func locationFromQuery(r *http.Request) (models.LocationSpec, *apperrors.AppError) {
	q := r.URL.Query()
	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr != "" || lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			return models.LocationSpec{}, apperrors.BadRequest("invalid lat/lon parameters")
		}
		return models.LocationSpec{Lat: lat, Lon: lon, HasCoords: true}, nil
	}
	return models.LocationSpec{City: q.Get("city")}, nil
}

// fetchBundle resolves the location for the caller and fetches weather,
// translating gateway failures to user-facing recoverable errors.
func (s *Server) fetchBundle(r *http.Request, savedCity string) (models.Bundle, *apperrors.AppError) {
	explicit, appErr := locationFromQuery(r)
	if appErr != nil {
		return models.Bundle{}, appErr
	}
	loc := s.weather.ResolveLocation(r.Context(), explicit, savedCity)

	bundle, err := s.weather.Fetch(r.Context(), loc)
	if err != nil {
		var provErr *owm.ProviderError
		var netErr *owm.NetworkError
		switch {
		case errors.As(err, &provErr):
			observability.WeatherFetchCounter.WithLabelValues("provider_error").Inc()
			if provErr.StatusCode == http.StatusNotFound {
				return models.Bundle{}, apperrors.NotFound("city not found")
			}
			return models.Bundle{}, apperrors.BadGateway("weather provider rejected the request", err)
		case errors.As(err, &netErr):
			observability.WeatherFetchCounter.WithLabelValues("network_error").Inc()
			return models.Bundle{}, apperrors.BadGateway("weather provider unreachable", err)
		default:
			observability.WeatherFetchCounter.WithLabelValues("error").Inc()
			return models.Bundle{}, apperrors.InternalServerError("failed to fetch weather", err)
		}
	}
	observability.WeatherFetchCounter.WithLabelValues("ok").Inc()
	return bundle, nil
}

type weatherResponse struct {
	Current      models.Snapshot    `json:"current"`
	Condition    models.Condition   `json:"condition"`
	SuggestedTag models.SeasonalTag `json:"suggested_tag"`
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	bundle, appErr := s.fetchBundle(r, user.Location)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, weatherResponse{
		Current:      bundle.Current,
		Condition:    weather.ClassifyCondition(bundle.Current.ConditionID),
		SuggestedTag: weather.SuggestSeasonalTag(bundle.Current.TempC),
	})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	bundle, appErr := s.fetchBundle(r, user.Location)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, bundle.Forecast)
}

type slotResponse struct {
	Found        bool               `json:"found"`
	Snapshot     *models.Snapshot   `json:"snapshot,omitempty"`
	Condition    models.Condition   `json:"condition,omitempty"`
	SuggestedTag models.SeasonalTag `json:"suggested_tag,omitempty"`
}

func (s *Server) handleSlot(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	day := r.URL.Query().Get("day")
	timeOfDay := r.URL.Query().Get("time")
	if day == "" || timeOfDay == "" {
		apperrors.WriteError(w, apperrors.BadRequest("day and time parameters are required"))
		return
	}

	bundle, appErr := s.fetchBundle(r, user.Location)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	snapshot, ok := weather.ResolveSlot(bundle.Forecast, day, timeOfDay, s.now())
	if !ok {
		// A missing slot is a normal empty outcome, not an error.
		writeJSON(w, http.StatusOK, slotResponse{Found: false})
		return
	}
	writeJSON(w, http.StatusOK, slotResponse{
		Found:        true,
		Snapshot:     &snapshot,
		Condition:    weather.ClassifyCondition(snapshot.ConditionID),
		SuggestedTag: weather.SuggestSeasonalTag(snapshot.TempC),
	})
}

type recommendationResponse struct {
	Tag       models.SeasonalTag   `json:"tag"`
	Condition models.Condition     `json:"condition"`
	Tops      []store.ClothingItem `json:"tops"`
	Bottoms   []store.ClothingItem `json:"bottoms"`
}

// handleRecommendations joins the caller's wardrobe with the seasonal tag
// derived from the requested forecast slot, or from current conditions when
// no slot is requested.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	bundle, appErr := s.fetchBundle(r, user.Location)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	snapshot := bundle.Current
	day := r.URL.Query().Get("day")
	timeOfDay := r.URL.Query().Get("time")
	if day != "" && timeOfDay != "" {
		if slot, ok := weather.ResolveSlot(bundle.Forecast, day, timeOfDay, s.now()); ok {
			snapshot = slot
		}
	}

	wardrobe, err := s.store.ListClothingByUser(r.Context(), user.ID)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to load wardrobe", err))
		return
	}

	tag := weather.SuggestSeasonalTag(snapshot.TempC)
	tops, bottoms := closet.Recommend(wardrobe, tag)
	writeJSON(w, http.StatusOK, recommendationResponse{
		Tag:       tag,
		Condition: weather.ClassifyCondition(snapshot.ConditionID),
		Tops:      tops,
		Bottoms:   bottoms,
	})
}
