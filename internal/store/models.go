package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ayushkr5561/virtual-closet/internal/models"
)

// StringSlice stores a set of free-form tags as a JSON-encoded text column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(s))
	case []byte:
		return json.Unmarshal(v, (*[]string)(s))
	}
	return errors.New("unsupported type for StringSlice")
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	Gender       string    `json:"gender,omitempty"`
	DarkMode     bool      `json:"dark_mode"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ClothingItem struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID           `gorm:"type:uuid;index;index:idx_clothing_user_favorite" json:"user_id"`
	Name      string              `json:"name,omitempty"`
	Image     string              `gorm:"type:text" json:"image"`
	Type      models.ClothingType `gorm:"type:varchar(8);index" json:"type"`
	Weather   models.SeasonalTag  `gorm:"type:varchar(12);index" json:"weather"`
	Color     string              `json:"color"`
	StyleTags StringSlice         `gorm:"type:text" json:"style_tags"`
	Brand     string              `json:"brand,omitempty"`
	Notes     string              `json:"notes,omitempty"`
	Favorite  bool                `gorm:"index:idx_clothing_user_favorite" json:"favorite"`
	CreatedAt time.Time           `json:"created_at"`
}

type Outfit struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID   `gorm:"type:uuid;index;index:idx_outfit_user_favorite" json:"user_id"`
	Name      string      `json:"name"`
	TopID     uuid.UUID   `gorm:"type:uuid;index" json:"top_id"`
	BottomID  uuid.UUID   `gorm:"type:uuid;index" json:"bottom_id"`
	Tags      StringSlice `gorm:"type:text" json:"tags"`
	Favorite  bool        `gorm:"index:idx_outfit_user_favorite" json:"favorite"`
	CreatedAt time.Time   `json:"created_at"`
}
