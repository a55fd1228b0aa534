package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ayushkr5561/virtual-closet/internal/models"
	"github.com/ayushkr5561/virtual-closet/internal/store"
	"github.com/ayushkr5561/virtual-closet/internal/weather"
)

type stubProvider struct {
	current  models.Snapshot
	forecast models.ForecastSeries
}

func (p *stubProvider) Current(ctx context.Context, loc models.LocationSpec) (models.Snapshot, error) {
	return p.current, nil
}

func (p *stubProvider) Forecast(ctx context.Context, loc models.LocationSpec) (models.ForecastSeries, error) {
	return p.forecast, nil
}

func setupRouter(t *testing.T, provider weather.Provider) http.Handler {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if provider == nil {
		provider = &stubProvider{current: models.Snapshot{TempC: 20, ConditionID: 800}}
	}
	ws := weather.NewService(provider, nil, "New York", time.Minute)
	srv := NewServer(st, ws, "test-secret", time.Hour)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		srv.RegisterRoutes(r)
	})
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func signup(t *testing.T, h http.Handler) string {
	t.Helper()
	w := doJSON(t, h, "POST", "/api/auth/signup", "", map[string]string{
		"name":             "Ada",
		"email":            "ada@example.com",
		"password":         "Sup3rsecret",
		"confirm_password": "Sup3rsecret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", w.Code, w.Body.String())
	}
	var resp authResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" {
		t.Fatal("signup returned no token")
	}
	return resp.Token
}

func TestSignupValidation(t *testing.T) {
	h := setupRouter(t, nil)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{
			name: "missing fields",
			body: map[string]string{"email": "x@example.com"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad email",
			body: map[string]string{"name": "A", "email": "nope", "password": "pw123456", "confirm_password": "pw123456"},
			want: http.StatusBadRequest,
		},
		{
			name: "password mismatch",
			body: map[string]string{"name": "A", "email": "a@example.com", "password": "pw123456", "confirm_password": "different"},
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, h, "POST", "/api/auth/signup", "", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	h := setupRouter(t, nil)
	signup(t, h)

	w := doJSON(t, h, "POST", "/api/auth/signup", "", map[string]string{
		"name":             "Ada Again",
		"email":            "ada@example.com",
		"password":         "Sup3rsecret",
		"confirm_password": "Sup3rsecret",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestLogin(t *testing.T) {
	h := setupRouter(t, nil)
	signup(t, h)

	w := doJSON(t, h, "POST", "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "Sup3rsecret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, h, "POST", "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	h := setupRouter(t, nil)
	w := doJSON(t, h, "GET", "/api/clothing", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func validClothing() map[string]any {
	return map[string]any{
		"name":       "blue tee",
		"image":      "aW1hZ2U=",
		"type":       "top",
		"weather":    "summer",
		"color":      "blue",
		"style_tags": []string{"casual"},
	}
}

func TestClothingCreateValidation(t *testing.T) {
	h := setupRouter(t, nil)
	token := signup(t, h)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing image", func(m map[string]any) { m["image"] = "" }},
		{"no style tags", func(m map[string]any) { m["style_tags"] = []string{} }},
		{"blank style tags", func(m map[string]any) { m["style_tags"] = []string{"  "} }},
		{"bad type", func(m map[string]any) { m["type"] = "hat" }},
		{"bad weather", func(m map[string]any) { m["weather"] = "monsoon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validClothing()
			tt.mutate(body)
			w := doJSON(t, h, "POST", "/api/clothing", token, body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (%s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestClothingLifecycle(t *testing.T) {
	h := setupRouter(t, nil)
	token := signup(t, h)

	w := doJSON(t, h, "POST", "/api/clothing", token, validClothing())
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	var created clothingMutationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Item == nil || created.Item.Favorite {
		t.Fatalf("created item wrong: %+v", created.Item)
	}
	// Mutations respond with the re-read closet.
	if len(created.Closet.Clothing) != 1 {
		t.Fatalf("closet snapshot has %d items, want 1", len(created.Closet.Clothing))
	}

	id := created.Item.ID.String()

	// Toggle favorite twice: idempotent flip.
	w = doJSON(t, h, "POST", "/api/clothing/"+id+"/favorite", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("favorite status = %d", w.Code)
	}
	var toggled clothingMutationResponse
	json.Unmarshal(w.Body.Bytes(), &toggled)
	if !toggled.Item.Favorite {
		t.Error("first toggle should favorite the item")
	}
	w = doJSON(t, h, "POST", "/api/clothing/"+id+"/favorite", token, nil)
	json.Unmarshal(w.Body.Bytes(), &toggled)
	if toggled.Item.Favorite {
		t.Error("second toggle should restore the original state")
	}

	// Delete responds with an empty closet.
	w = doJSON(t, h, "DELETE", "/api/clothing/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	var afterDelete clothingMutationResponse
	json.Unmarshal(w.Body.Bytes(), &afterDelete)
	if len(afterDelete.Closet.Clothing) != 0 {
		t.Errorf("closet should be empty after delete, got %v", afterDelete.Closet.Clothing)
	}
}

func TestOutfitCascadeViaAPI(t *testing.T) {
	h := setupRouter(t, nil)
	token := signup(t, h)

	top := validClothing()
	bottom := validClothing()
	bottom["type"] = "bottom"

	var topResp, bottomResp clothingMutationResponse
	w := doJSON(t, h, "POST", "/api/clothing", token, top)
	json.Unmarshal(w.Body.Bytes(), &topResp)
	w = doJSON(t, h, "POST", "/api/clothing", token, bottom)
	json.Unmarshal(w.Body.Bytes(), &bottomResp)

	w = doJSON(t, h, "POST", "/api/outfits", token, map[string]any{
		"name":      "summer fit",
		"top_id":    topResp.Item.ID.String(),
		"bottom_id": bottomResp.Item.ID.String(),
		"tags":      []string{"weekend"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("outfit create status = %d, body %s", w.Code, w.Body.String())
	}

	// Deleting the top cascades to the outfit.
	w = doJSON(t, h, "DELETE", "/api/clothing/"+topResp.Item.ID.String(), token, nil)
	var afterDelete clothingMutationResponse
	json.Unmarshal(w.Body.Bytes(), &afterDelete)
	if len(afterDelete.Closet.Outfits) != 0 {
		t.Errorf("outfit should be cascade-deleted, got %v", afterDelete.Closet.Outfits)
	}
}

func TestRecommendations(t *testing.T) {
	provider := &stubProvider{current: models.Snapshot{TempC: 30, ConditionID: 800, City: "New York"}}
	h := setupRouter(t, provider)
	token := signup(t, h)

	summerTop := validClothing()
	winterBottom := validClothing()
	winterBottom["type"] = "bottom"
	winterBottom["weather"] = "winter"
	doJSON(t, h, "POST", "/api/clothing", token, summerTop)
	doJSON(t, h, "POST", "/api/clothing", token, winterBottom)

	w := doJSON(t, h, "GET", "/api/recommendations", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp recommendationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Tag != models.TagSummer {
		t.Errorf("tag = %q, want summer at 30 degrees", resp.Tag)
	}
	if resp.Condition != models.ConditionClear {
		t.Errorf("condition = %q, want clear for code 800", resp.Condition)
	}
	if len(resp.Tops) != 1 || len(resp.Bottoms) != 0 {
		t.Errorf("got %d tops / %d bottoms, want 1 / 0", len(resp.Tops), len(resp.Bottoms))
	}
}

func TestWeatherEndpointDerivesTag(t *testing.T) {
	provider := &stubProvider{current: models.Snapshot{TempC: 5, ConditionID: 600}}
	h := setupRouter(t, provider)
	token := signup(t, h)

	w := doJSON(t, h, "GET", "/api/weather?city=Oslo", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp weatherResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.SuggestedTag != models.TagWinter || resp.Condition != models.ConditionSnow {
		t.Errorf("got tag %q condition %q, want winter/snow", resp.SuggestedTag, resp.Condition)
	}
}

func TestSlotNotFoundIsEmptyResult(t *testing.T) {
	provider := &stubProvider{current: models.Snapshot{TempC: 20, ConditionID: 800}}
	h := setupRouter(t, provider)
	token := signup(t, h)

	w := doJSON(t, h, "GET", "/api/weather/slot?day=today&time=morning", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when no slot matches", w.Code)
	}
	var resp slotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Found {
		t.Error("found = true with an empty forecast")
	}
}

func TestSlotResolvesForecastEntry(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")
	provider := &stubProvider{
		current: models.Snapshot{TempC: 20, ConditionID: 800},
		forecast: models.ForecastSeries{
			{Snapshot: models.Snapshot{TempC: 28, ConditionID: 500}, TimeText: fmt.Sprintf("%s 09:00:00", today)},
		},
	}
	h := setupRouter(t, provider)
	token := signup(t, h)

	w := doJSON(t, h, "GET", "/api/weather/slot?day=today&time=morning", token, nil)
	var resp slotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Found || resp.Snapshot == nil {
		t.Fatalf("expected the 09:00 entry to resolve, got %+v", resp)
	}
	if resp.SuggestedTag != models.TagSummer || resp.Condition != models.ConditionRain {
		t.Errorf("derived tag/condition wrong: %+v", resp)
	}
}

func TestUserPatchOwnerOnly(t *testing.T) {
	h := setupRouter(t, nil)
	token := signup(t, h)

	// Fetch own id via /auth/me.
	w := doJSON(t, h, "GET", "/api/auth/me", token, nil)
	var me store.User
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, h, "PATCH", "/api/users/"+me.ID.String(), token, map[string]any{
		"location": "Berlin", "dark_mode": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", w.Code, w.Body.String())
	}
	var updated store.User
	json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Location != "Berlin" || !updated.DarkMode {
		t.Errorf("profile not updated: %+v", updated)
	}

	w = doJSON(t, h, "PATCH", "/api/users/00000000-0000-0000-0000-000000000001", token, map[string]any{"name": "Eve"})
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign patch status = %d, want 403", w.Code)
	}
}
