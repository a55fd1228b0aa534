package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayushkr5561/virtual-closet/internal/store"
	apperrors "github.com/ayushkr5561/virtual-closet/pkg/errors"
)

type outfitMutationResponse struct {
	Outfit *store.Outfit  `json:"outfit,omitempty"`
	Closet closetSnapshot `json:"closet"`
}

// Outfit creation trusts the caller on which item is a top and which is a
// bottom; referenced types are not validated at write time.
func (s *Server) handleOutfitCreate(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	var req struct {
		Name     string   `json:"name"`
		TopID    string   `json:"top_id"`
		BottomID string   `json:"bottom_id"`
		Tags     []string `json:"tags"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperrors.WriteError(w, apperrors.BadRequest(err.Error()))
		return
	}
	if err := validateRequired(map[string]string{
		"name":      req.Name,
		"top_id":    req.TopID,
		"bottom_id": req.BottomID,
	}); err != nil {
		apperrors.WriteError(w, apperrors.BadRequest(err.Error()))
		return
	}
	topID, err := uuid.Parse(req.TopID)
	if err != nil {
		apperrors.WriteError(w, apperrors.BadRequest("invalid top_id"))
		return
	}
	bottomID, err := uuid.Parse(req.BottomID)
	if err != nil {
		apperrors.WriteError(w, apperrors.BadRequest("invalid bottom_id"))
		return
	}
	tags, _ := nonEmptyTags(req.Tags)

	outfit := store.Outfit{
		UserID:    user.ID,
		Name:      req.Name,
		TopID:     topID,
		BottomID:  bottomID,
		Tags:      tags,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateOutfit(r.Context(), &outfit); err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to save outfit", err))
		return
	}

	snapshot, err := s.snapshotCloset(r.Context(), user.ID)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to reload closet", err))
		return
	}
	writeJSON(w, http.StatusCreated, outfitMutationResponse{Outfit: &outfit, Closet: snapshot})
}

func (s *Server) handleOutfitList(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	var (
		outfits []store.Outfit
		err     error
	)
	if r.URL.Query().Get("favorite") == "true" {
		outfits, err = s.store.FavoriteOutfits(r.Context(), user.ID)
	} else {
		outfits, err = s.store.ListOutfitsByUser(r.Context(), user.ID)
	}
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to list outfits", err))
		return
	}
	if outfits == nil {
		outfits = []store.Outfit{}
	}
	writeJSON(w, http.StatusOK, outfits)
}

func (s *Server) ownedOutfit(r *http.Request, userID uuid.UUID) (*store.Outfit, *apperrors.AppError) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, apperrors.BadRequest("invalid outfit id")
	}
	outfit, err := s.store.GetOutfit(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("outfit not found")
		}
		return nil, apperrors.InternalServerError("failed to load outfit", err)
	}
	if outfit.UserID != userID {
		return nil, apperrors.NotFound("outfit not found")
	}
	return outfit, nil
}

func (s *Server) handleOutfitPatch(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	outfit, appErr := s.ownedOutfit(r, user.ID)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	var req struct {
		Name     *string   `json:"name"`
		TopID    *string   `json:"top_id"`
		BottomID *string   `json:"bottom_id"`
		Tags     *[]string `json:"tags"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperrors.WriteError(w, apperrors.BadRequest(err.Error()))
		return
	}

	if req.Name != nil {
		outfit.Name = *req.Name
	}
	if req.TopID != nil {
		id, err := uuid.Parse(*req.TopID)
		if err != nil {
			apperrors.WriteError(w, apperrors.BadRequest("invalid top_id"))
			return
		}
		outfit.TopID = id
	}
	if req.BottomID != nil {
		id, err := uuid.Parse(*req.BottomID)
		if err != nil {
			apperrors.WriteError(w, apperrors.BadRequest("invalid bottom_id"))
			return
		}
		outfit.BottomID = id
	}
	if req.Tags != nil {
		tags, _ := nonEmptyTags(*req.Tags)
		outfit.Tags = tags
	}

	if err := s.store.UpdateOutfit(r.Context(), outfit); err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to update outfit", err))
		return
	}
	snapshot, err := s.snapshotCloset(r.Context(), user.ID)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to reload closet", err))
		return
	}
	writeJSON(w, http.StatusOK, outfitMutationResponse{Outfit: outfit, Closet: snapshot})
}

func (s *Server) handleOutfitFavorite(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	if _, appErr := s.ownedOutfit(r, user.ID); appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	id, _ := uuid.Parse(chi.URLParam(r, "id"))
	outfit, err := s.store.ToggleOutfitFavorite(r.Context(), id)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to toggle favorite", err))
		return
	}
	snapshot, err := s.snapshotCloset(r.Context(), user.ID)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to reload closet", err))
		return
	}
	writeJSON(w, http.StatusOK, outfitMutationResponse{Outfit: outfit, Closet: snapshot})
}

func (s *Server) handleOutfitDelete(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	outfit, appErr := s.ownedOutfit(r, user.ID)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}

	if err := s.store.DeleteOutfit(r.Context(), outfit.ID); err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to delete outfit", err))
		return
	}
	snapshot, err := s.snapshotCloset(r.Context(), user.ID)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to reload closet", err))
		return
	}
	writeJSON(w, http.StatusOK, outfitMutationResponse{Closet: snapshot})
}
