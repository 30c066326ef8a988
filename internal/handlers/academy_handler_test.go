package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/tida-sports/AcademyBotBack/internal/models"
	"github.com/tida-sports/AcademyBotBack/internal/services"
)

type stubDirectory struct {
	nearby       []models.AcademyWithDistance
	nearbyErr    error
	nearbyCalls  int
	lastLat      float64
	lastLng      float64
	lastRadius   float64
	lastLimit    int
	byName       *models.Academy
	byNameErr    error
	lastFragment string
	count        int
	countErr     error
}

func (s *stubDirectory) FindNearby(_ context.Context, lat, lng, radiusKM float64, limit int) ([]models.AcademyWithDistance, error) {
	s.nearbyCalls++
	s.lastLat = lat
	s.lastLng = lng
	s.lastRadius = radiusKM
	s.lastLimit = limit
	return s.nearby, s.nearbyErr
}

func (s *stubDirectory) FindByName(_ context.Context, fragment string) (*models.Academy, error) {
	s.lastFragment = fragment
	if s.byNameErr != nil {
		return nil, s.byNameErr
	}
	return s.byName, nil
}

func (s *stubDirectory) CountAcademies(_ context.Context) (int, error) {
	return s.count, s.countErr
}

func newAcademyApp(directory *stubDirectory) *fiber.App {
	handler := NewAcademyHandler(directory, 60)
	app := fiber.New()
	app.Get("/api/academies/nearby", handler.ListNearby)
	app.Get("/api/academies/search", handler.Search)
	app.Get("/api/academies/count", handler.Count)
	return app
}

func TestListNearbyReturnsAcademies(t *testing.T) {
	directory := &stubDirectory{
		nearby: []models.AcademyWithDistance{
			{Academy: models.Academy{Name: "YMCA", Address: "Sector 11"}, DistanceKM: 2.4},
		},
	}
	app := newAcademyApp(directory)

	req := httptest.NewRequest(http.MethodGet, "/api/academies/nearby?lat=30.75&lng=76.78", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if directory.lastLat != 30.75 || directory.lastLng != 76.78 {
		t.Fatalf("unexpected coordinates: %f %f", directory.lastLat, directory.lastLng)
	}
	if directory.lastRadius != 60 || directory.lastLimit != services.DefaultResultLimit {
		t.Fatalf("expected defaults radius=60 limit=%d, got %f %d",
			services.DefaultResultLimit, directory.lastRadius, directory.lastLimit)
	}

	var body struct {
		Academies []models.AcademyWithDistance `json:"academies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Academies) != 1 || body.Academies[0].Name != "YMCA" {
		t.Fatalf("unexpected response: %+v", body.Academies)
	}
}

func TestListNearbyForwardsRadiusAndLimit(t *testing.T) {
	directory := &stubDirectory{}
	app := newAcademyApp(directory)

	req := httptest.NewRequest(http.MethodGet, "/api/academies/nearby?lat=0&lng=0&radius=25&limit=3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if directory.lastRadius != 25 || directory.lastLimit != 3 {
		t.Fatalf("expected radius=25 limit=3, got %f %d", directory.lastRadius, directory.lastLimit)
	}
}

func TestListNearbyRequiresCoordinates(t *testing.T) {
	directory := &stubDirectory{}
	app := newAcademyApp(directory)

	req := httptest.NewRequest(http.MethodGet, "/api/academies/nearby?lng=76.78", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if directory.nearbyCalls != 0 {
		t.Fatal("service should not be called without coordinates")
	}
}

func TestListNearbyRejectsGarbageCoordinates(t *testing.T) {
	app := newAcademyApp(&stubDirectory{})

	req := httptest.NewRequest(http.MethodGet, "/api/academies/nearby?lat=abc&lng=76.78", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSearchReturnsAcademy(t *testing.T) {
	directory := &stubDirectory{byName: &models.Academy{Name: "YMCA", Address: "Sector 11"}}
	app := newAcademyApp(directory)

	req := httptest.NewRequest(http.MethodGet, "/api/academies/search?q=ymca", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if directory.lastFragment != "ymca" {
		t.Fatalf("unexpected fragment: %q", directory.lastFragment)
	}

	var body struct {
		Academy models.Academy `json:"academy"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Academy.Name != "YMCA" {
		t.Fatalf("unexpected academy: %+v", body.Academy)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	app := newAcademyApp(&stubDirectory{})

	req := httptest.NewRequest(http.MethodGet, "/api/academies/search", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSearchReturnsNotFound(t *testing.T) {
	app := newAcademyApp(&stubDirectory{byNameErr: services.ErrAcademyNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/academies/search?q=atlantis", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCountReturnsTotal(t *testing.T) {
	app := newAcademyApp(&stubDirectory{count: 21})

	req := httptest.NewRequest(http.MethodGet, "/api/academies/count", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Count != 21 {
		t.Fatalf("expected 21, got %d", body.Count)
	}
}
