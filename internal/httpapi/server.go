package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayushkr5561/virtual-closet/internal/middleware"
	"github.com/ayushkr5561/virtual-closet/internal/store"
	"github.com/ayushkr5561/virtual-closet/internal/weather"
	apperrors "github.com/ayushkr5561/virtual-closet/pkg/errors"
)

type Server struct {
	store     *store.Store
	weather   *weather.Service
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewServer(st *store.Store, ws *weather.Service, jwtSecret string, tokenTTL time.Duration) *Server {
	return &Server{
		store:     st,
		weather:   ws,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(s.jwtSecret))

		r.Get("/auth/me", s.handleMe)
		r.Patch("/users/{id}", s.handleUserPatch)

		r.Route("/clothing", func(r chi.Router) {
			r.Post("/", s.handleClothingCreate)
			r.Get("/", s.handleClothingList)
			r.Patch("/{id}", s.handleClothingPatch)
			r.Post("/{id}/favorite", s.handleClothingFavorite)
			r.Delete("/{id}", s.handleClothingDelete)
		})

		r.Route("/outfits", func(r chi.Router) {
			r.Post("/", s.handleOutfitCreate)
			r.Get("/", s.handleOutfitList)
			r.Patch("/{id}", s.handleOutfitPatch)
			r.Post("/{id}/favorite", s.handleOutfitFavorite)
			r.Delete("/{id}", s.handleOutfitDelete)
		})

		r.Get("/weather", s.handleWeather)
		r.Get("/weather/forecast", s.handleForecast)
		r.Get("/weather/slot", s.handleSlot)
		r.Get("/recommendations", s.handleRecommendations)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// currentUser loads the authenticated user from the verified JWT claims.
func (s *Server) currentUser(r *http.Request) (*store.User, *apperrors.AppError) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		return nil, apperrors.Unauthorized("missing credentials")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token subject")
	}
	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		return nil, apperrors.Unauthorized("unknown user")
	}
	return user, nil
}

// closetSnapshot re-reads the user's full closet. Mutation handlers return
// this instead of patching lists incrementally: at wardrobe scale the
// re-query keeps the consistency story trivial.
type closetSnapshot struct {
	Clothing []store.ClothingItem `json:"clothing"`
	Outfits  []store.Outfit       `json:"outfits"`
}

func (s *Server) snapshotCloset(ctx context.Context, userID uuid.UUID) (closetSnapshot, error) {
	clothing, err := s.store.ListClothingByUser(ctx, userID)
	if err != nil {
		return closetSnapshot{}, err
	}
	outfits, err := s.store.ListOutfitsByUser(ctx, userID)
	if err != nil {
		return closetSnapshot{}, err
	}
	if clothing == nil {
		clothing = []store.ClothingItem{}
	}
	if outfits == nil {
		outfits = []store.Outfit{}
	}
	return closetSnapshot{Clothing: clothing, Outfits: outfits}, nil
}
