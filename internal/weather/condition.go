package weather

import "github.com/ayushkr5561/virtual-closet/internal/models"

// ClassifyCondition maps an OpenWeatherMap condition code to a coarse
// category. The ranges are contiguous and overlap-free, so every integer maps
// to exactly one category.
func ClassifyCondition(code int) models.Condition {
	switch {
	case code >= 200 && code < 600:
		return models.ConditionRain
	case code >= 600 && code < 700:
		return models.ConditionSnow
	case code == 800:
		return models.ConditionClear
	case code > 800 && code < 900:
		return models.ConditionClouds
	case code >= 900:
		return models.ConditionExtreme
	}
	return models.ConditionUnknown
}

// SuggestSeasonalTag buckets a temperature into a wardrobe season. Boundary
// values (exactly 25 or exactly 10) fall into inbetween.
func SuggestSeasonalTag(tempC float64) models.SeasonalTag {
	switch {
	case tempC > 25:
		return models.TagSummer
	case tempC < 10:
		return models.TagWinter
	}
	return models.TagInbetween
}
