package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayushkr5561/virtual-closet/internal/middleware"
	"github.com/ayushkr5561/virtual-closet/internal/store"
	apperrors "github.com/ayushkr5561/virtual-closet/pkg/errors"
)

// Local stand-in authentication: bcrypt-hashed password in the embedded
// store, HS256 session token. Not a hardened security model.

type authResponse struct {
	Token string     `json:"token"`
	User  store.User `json:"user"`
}

func (s *Server) issueToken(user *store.User) (string, error) {
	claims := &middleware.Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperrors.WriteError(w, apperrors.BadRequest(err.Error()))
		return
	}
	if err := validateRequired(map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
	}); err != nil {
		apperrors.WriteError(w, apperrors.BadRequest(err.Error()))
		return
	}
	if !isValidEmail(req.Email) {
		apperrors.WriteError(w, apperrors.BadRequest("invalid email address"))
		return
	}
	if req.Password != req.ConfirmPassword {
		apperrors.WriteError(w, apperrors.BadRequest("passwords do not match"))
		return
	}
	if _, err := s.store.GetUserByEmail(r.Context(), req.Email); err == nil {
		apperrors.WriteError(w, apperrors.Conflict("user with this email already exists"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("password hash error", err))
		return
	}

	user := store.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(r.Context(), &user); err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to create user", err))
		return
	}

	token, err := s.issueToken(&user)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to issue token", err))
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperrors.WriteError(w, apperrors.BadRequest(err.Error()))
		return
	}
	if err := validateRequired(map[string]string{"email": req.Email, "password": req.Password}); err != nil {
		apperrors.WriteError(w, apperrors.BadRequest(err.Error()))
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		apperrors.WriteError(w, apperrors.Unauthorized("invalid email or password"))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		apperrors.WriteError(w, apperrors.Unauthorized("invalid email or password"))
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to issue token", err))
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: *user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserPatch(w http.ResponseWriter, r *http.Request) {
	user, appErr := s.currentUser(r)
	if appErr != nil {
		apperrors.WriteError(w, appErr)
		return
	}
	if chi.URLParam(r, "id") != user.ID.String() {
		apperrors.WriteError(w, apperrors.Forbidden("cannot modify another user"))
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Gender   *string `json:"gender"`
		DarkMode *bool   `json:"dark_mode"`
		Location *string `json:"location"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apperrors.WriteError(w, apperrors.BadRequest(err.Error()))
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.DarkMode != nil {
		user.DarkMode = *req.DarkMode
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	user.UpdatedAt = time.Now()

	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		apperrors.WriteError(w, apperrors.InternalServerError("failed to update user", err))
		return
	}
	writeJSON(w, http.StatusOK, user)
}
