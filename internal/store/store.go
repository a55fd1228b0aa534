package store

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ayushkr5561/virtual-closet/internal/models"
)

// ErrNotFound is re-exported so callers don't need to import gorm to detect
// missing records.
var ErrNotFound = gorm.ErrRecordNotFound

// Store is the wardrobe store: users, clothing items and outfits in an
// embedded sqlite database. Single-device, single-writer.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite database at path and migrates the
// schema. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&User{}, &ClothingItem{}, &Outfit{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// --- users ---

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

// --- clothing ---

func (s *Store) CreateClothing(ctx context.Context, item *ClothingItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.Favorite = false
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetClothing(ctx context.Context, id uuid.UUID) (*ClothingItem, error) {
	var item ClothingItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListClothingByUser(ctx context.Context, userID uuid.UUID) ([]ClothingItem, error) {
	var items []ClothingItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&items).Error
	return items, err
}

func (s *Store) ListClothingByType(ctx context.Context, userID uuid.UUID, t models.ClothingType) ([]ClothingItem, error) {
	var items []ClothingItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, t).
		Order("created_at").
		Find(&items).Error
	return items, err
}

func (s *Store) ListClothingByWeather(ctx context.Context, userID uuid.UUID, tag models.SeasonalTag) ([]ClothingItem, error) {
	var items []ClothingItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND weather = ?", userID, tag).
		Order("created_at").
		Find(&items).Error
	return items, err
}

func (s *Store) FavoriteClothing(ctx context.Context, userID uuid.UUID) ([]ClothingItem, error) {
	var items []ClothingItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND favorite = ?", userID, true).
		Order("created_at").
		Find(&items).Error
	return items, err
}

func (s *Store) UpdateClothing(ctx context.Context, item *ClothingItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

// ToggleClothingFavorite flips the favorite flag and returns the updated item.
// A double toggle restores the original state.
func (s *Store) ToggleClothingFavorite(ctx context.Context, id uuid.UUID) (*ClothingItem, error) {
	item, err := s.GetClothing(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Favorite = !item.Favorite
	if err := s.db.WithContext(ctx).Model(item).Update("favorite", item.Favorite).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteClothing removes the item and cascades to any outfit referencing it
// as top or bottom. The cascade is best-effort: a failure there is logged and
// does not block deleting the item itself.
func (s *Store) DeleteClothing(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).
		Where("top_id = ? OR bottom_id = ?", id, id).
		Delete(&Outfit{}).Error; err != nil {
		slog.Warn("outfit cascade delete failed", "clothing_id", id, "error", err)
	}
	return s.db.WithContext(ctx).Delete(&ClothingItem{}, "id = ?", id).Error
}

// --- outfits ---

func (s *Store) CreateOutfit(ctx context.Context, outfit *Outfit) error {
	if outfit.ID == uuid.Nil {
		outfit.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(outfit).Error
}

func (s *Store) GetOutfit(ctx context.Context, id uuid.UUID) (*Outfit, error) {
	var outfit Outfit
	if err := s.db.WithContext(ctx).First(&outfit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &outfit, nil
}

func (s *Store) ListOutfitsByUser(ctx context.Context, userID uuid.UUID) ([]Outfit, error) {
	var outfits []Outfit
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&outfits).Error
	return outfits, err
}

func (s *Store) FavoriteOutfits(ctx context.Context, userID uuid.UUID) ([]Outfit, error) {
	var outfits []Outfit
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND favorite = ?", userID, true).
		Order("created_at").
		Find(&outfits).Error
	return outfits, err
}

func (s *Store) UpdateOutfit(ctx context.Context, outfit *Outfit) error {
	return s.db.WithContext(ctx).Save(outfit).Error
}

func (s *Store) ToggleOutfitFavorite(ctx context.Context, id uuid.UUID) (*Outfit, error) {
	outfit, err := s.GetOutfit(ctx, id)
	if err != nil {
		return nil, err
	}
	outfit.Favorite = !outfit.Favorite
	if err := s.db.WithContext(ctx).Model(outfit).Update("favorite", outfit.Favorite).Error; err != nil {
		return nil, err
	}
	return outfit, nil
}

func (s *Store) DeleteOutfit(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&Outfit{}, "id = ?", id).Error
}
