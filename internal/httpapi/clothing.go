package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayushkr5561/virtual-closet/internal/models"
	"github.com/ayushkr5561/virtual-closet/internal/store"
	apperrors "github.com/ayushkr5561/virtual-closet/pkg/errors"
)

type clothingMutationResponse struct {
	Item   *store.ClothingItem `json:"item,omitempty"`
	Closet closetSnapshot      `json:"closet"`
}

func (s *Server) handleClothingCreate(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	var req struct {
		Name      string   `json:"name"`
		Image     string   `json:"image"`
		Type      string   `json:"type"`
		Weather   string   `json:"weather"`
		Color     string   `json:"color"`
		StyleTags []string `json:"style_tags"`
		Brand     string   `json:"brand"`
		Notes     string   `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperrors.WriteError(w, apperrors.BadRequest(err.Error()))
		return
	}
	if err := validateRequired(map[string]string{
		"image": req.Image,
		"color": req.Color,
	}); err != nil {
		apperrors.WriteError(w, apperrors.BadRequest(err.Error()))
		return
	}
	if !models.ValidClothingType(models.ClothingType(req.Type)) {
		apperrors.WriteError(w, apperrors.BadRequest("type must be top or bottom"))
		return
	}
	if !models.ValidSeasonalTag(models.SeasonalTag(req.Weather)) {
		apperrors.WriteError(w, apperrors.BadRequest("weather must be summer, winter or inbetween"))
		return
	}
	tags, ok := nonEmptyTags(req.StyleTags)
	if !ok {
		apperrors.WriteError(w, apperrors.BadRequest("at least one style tag is required"))
		return
	}

	item := store.ClothingItem{
		UserID:    user.ID,
		Name:      req.Name,
		Image:     req.Image,
		Type:      models.ClothingType(req.Type),
		Weather:   models.SeasonalTag(req.Weather),
		Color:     req.Color,
		StyleTags: tags,
		Brand:     req.Brand,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateClothing(r.Context(), &item); err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to save clothing item", err))
		return
	}

	snapshot, err := s.snapshotCloset(r.Context(), user.ID)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to reload closet", err))
		return
	}
	writeJSON(w, http.StatusCreated, clothingMutationResponse{Item: &item, Closet: snapshot})
}

func (s *Server) handleClothingList(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	var (
		items []store.ClothingItem
		err   error
	)
	q := r.URL.Query()
	switch {
	case q.Get("favorite") == "true":
		items, err = s.store.FavoriteClothing(r.Context(), user.ID)
	case q.Get("type") != "":
		t := models.ClothingType(q.Get("type"))
		if !models.ValidClothingType(t) {
			apperrors.WriteError(w, apperrors.BadRequest("type must be top or bottom"))
			return
		}
		items, err = s.store.ListClothingByType(r.Context(), user.ID, t)
	case q.Get("weather") != "":
		tag := models.SeasonalTag(q.Get("weather"))
		if !models.ValidSeasonalTag(tag) {
			apperrors.WriteError(w, apperrors.BadRequest("weather must be summer, winter or inbetween"))
			return
		}
		items, err = s.store.ListClothingByWeather(r.Context(), user.ID, tag)
	default:
		items, err = s.store.ListClothingByUser(r.Context(), user.ID)
	}
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to list clothing", err))
		return
	}
	if items == nil {
		items = []store.ClothingItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// ownedClothing loads an item and checks it belongs to the caller. Foreign
// items surface as 404 rather than 403 to avoid leaking ids.
func (s *Server) ownedClothing(r *http.Request, userID uuid.UUID) (*store.ClothingItem, *apperrors.AppError) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, apperrors.BadRequest("invalid clothing id")
	}
	item, err := s.store.GetClothing(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("clothing item not found")
		}
		return nil, apperrors.InternalServerError("failed to load clothing item", err)
	}
	if item.UserID != userID {
		return nil, apperrors.NotFound("clothing item not found")
	}
	return item, nil
}

func (s *Server) handleClothingPatch(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	item, appErr := s.ownedClothing(r, user.ID)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	var req struct {
		Name      *string   `json:"name"`
		Image     *string   `json:"image"`
		Type      *string   `json:"type"`
		Weather   *string   `json:"weather"`
		Color     *string   `json:"color"`
		StyleTags *[]string `json:"style_tags"`
		Brand     *string   `json:"brand"`
		Notes     *string   `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperrors.WriteError(w, apperrors.BadRequest(err.Error()))
		return
	}

	if req.Type != nil {
		t := models.ClothingType(*req.Type)
		if !models.ValidClothingType(t) {
			apperrors.WriteError(w, apperrors.BadRequest("type must be top or bottom"))
			return
		}
		item.Type = t
	}
	if req.Weather != nil {
		tag := models.SeasonalTag(*req.Weather)
		if !models.ValidSeasonalTag(tag) {
			apperrors.WriteError(w, apperrors.BadRequest("weather must be summer, winter or inbetween"))
			return
		}
		item.Weather = tag
	}
	if req.StyleTags != nil {
		tags, ok := nonEmptyTags(*req.StyleTags)
		if !ok {
			apperrors.WriteError(w, apperrors.BadRequest("at least one style tag is required"))
			return
		}
		item.StyleTags = tags
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.Color != nil {
		item.Color = *req.Color
	}
	if req.Brand != nil {
		item.Brand = *req.Brand
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}

	if err := s.store.UpdateClothing(r.Context(), item); err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to update clothing item", err))
		return
	}
	snapshot, err := s.snapshotCloset(r.Context(), user.ID)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to reload closet", err))
		return
	}
	writeJSON(w, http.StatusOK, clothingMutationResponse{Item: item, Closet: snapshot})
}

func (s *Server) handleClothingFavorite(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	if _, appErr := s.ownedClothing(r, user.ID); appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	id, _ := uuid.Parse(chi.URLParam(r, "id"))
	item, err := s.store.ToggleClothingFavorite(r.Context(), id)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to toggle favorite", err))
		return
	}
	snapshot, err := s.snapshotCloset(r.Context(), user.ID)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to reload closet", err))
		return
	}
	writeJSON(w, http.StatusOK, clothingMutationResponse{Item: item, Closet: snapshot})
}

func (s *Server) handleClothingDelete(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	item, appErr := s.ownedClothing(r, user.ID)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	if err := s.store.DeleteClothing(r.Context(), item.ID); err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to delete clothing item", err))
		return
	}
	snapshot, err := s.snapshotCloset(r.Context(), user.ID)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to reload closet", err))
		return
	}
	writeJSON(w, http.StatusOK, clothingMutationResponse{Closet: snapshot})
}
