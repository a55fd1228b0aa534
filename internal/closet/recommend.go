// Package closet holds the wardrobe-side recommendation logic.
package closet

import (
	"github.com/ayushkr5561/virtual-closet/internal/models"
	"github.com/ayushkr5561/virtual-closet/internal/store"
)

// Recommend partitions a wardrobe into recommended tops and bottoms for the
// given seasonal tag. Pure: wardrobe order is preserved and empty results are
// empty slices, not nil, so callers can render an empty state directly.
func Recommend(wardrobe []store.ClothingItem, tag models.SeasonalTag) (tops, bottoms []store.ClothingItem) {
	tops = []store.ClothingItem{}
	bottoms = []store.ClothingItem{}
	for _, item := range wardrobe {
		if item.Weather != tag {
			continue
		}
		switch item.Type {
		case models.TypeTop:
			tops = append(tops, item)
		case models.TypeBottom:
			bottoms = append(bottoms, item)
		}
	}
	return tops, bottoms
}
