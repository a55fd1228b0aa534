package models

import "fmt"

// Condition is the coarse weather category derived from an OpenWeatherMap
// condition code.
type Condition string

const (
	ConditionClear   Condition = "clear"
	ConditionClouds  Condition = "clouds"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionExtreme Condition = "extreme"
	ConditionUnknown Condition = "unknown"
)

// SeasonalTag labels clothing (and current conditions) by season.
type SeasonalTag string

const (
	TagSummer    SeasonalTag = "summer"
	TagWinter    SeasonalTag = "winter"
	TagInbetween SeasonalTag = "inbetween"
)

// ValidSeasonalTag reports whether s is one of the three known tags.
func ValidSeasonalTag(s SeasonalTag) bool {
	return s == TagSummer || s == TagWinter || s == TagInbetween
}

// ClothingType partitions wardrobe items into tops and bottoms.
type ClothingType string

const (
	TypeTop    ClothingType = "top"
	TypeBottom ClothingType = "bottom"
)

// ValidClothingType reports whether t is a known clothing type.
func ValidClothingType(t ClothingType) bool {
	return t == TypeTop || t == TypeBottom
}

// Snapshot is one observed or forecast weather state. It is immutable once
// fetched and replaced wholesale on refresh.
type Snapshot struct {
	TempC       float64 `json:"temp_c"`
	FeelsLikeC  float64 `json:"feels_like_c"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	ConditionID int     `json:"condition_id"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Timestamp   int64   `json:"timestamp"`
}

// ForecastEntry is a Snapshot positioned in a forecast series by its literal
// timestamp text ("2006-01-02 15:04:05", UTC) as reported by the provider.
type ForecastEntry struct {
	Snapshot
	TimeText string `json:"time_text"`
}

// ForecastSeries is an ordered forecast time series, typically 3-hourly over
// five days (~40 entries).
type ForecastSeries []ForecastEntry

// Bundle pairs a current snapshot with its forecast series. The two are
// fetched together and applied together or not at all.
type Bundle struct {
	Current  Snapshot       `json:"current"`
	Forecast ForecastSeries `json:"forecast"`
}

// LocationSpec is either a free-text city name or a coordinate pair.
type LocationSpec struct {
	City      string
	Lat, Lon  float64
	HasCoords bool
}

// Key returns a stable cache key for the location. Two decimals is ~1km,
// plenty for cache identity.
func (l LocationSpec) Key() string {
	if l.HasCoords {
		return fmt.Sprintf("%.2f,%.2f", l.Lat, l.Lon)
	}
	return "city:" + l.City
}
