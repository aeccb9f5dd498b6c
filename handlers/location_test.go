package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	locationRepo "stayhub/database/repository/location"
	"stayhub/models"

	"github.com/gin-gonic/gin"
)

type fakeLocationRepo struct {
	locations map[string]models.Location
}

func newFakeLocationRepo(locs ...models.Location) *fakeLocationRepo {
	f := &fakeLocationRepo{locations: make(map[string]models.Location)}
	for _, l := range locs {
		f.locations[l.ID] = l
	}
	return f
}

func (f *fakeLocationRepo) Create(ctx context.Context, loc *models.Location) error {
	f.locations[loc.ID] = *loc
	return nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string) (*models.Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return nil, locationRepo.ErrNotFound
	}
	return &l, nil
}

func (f *fakeLocationRepo) List(ctx context.Context) ([]models.Location, error) {
	var out []models.Location
	for _, l := range f.locations {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLocationRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Location, error) {
	var out []models.Location
	for _, l := range f.locations {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestGetLocationHandler(t *testing.T) {
	h := NewLocationHandler(newFakeLocationRepo(models.Location{
		ID: "loc-1", OwnerID: "host-1", Name: "Seaside flat", PricePerNight: 80,
	}), nil, nil)

	c, w := testContext(t)
	c.Params = gin.Params{{Key: "id", Value: "loc-1"}}
	h.GetLocationHandler(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var loc models.Location
	if err := json.Unmarshal(w.Body.Bytes(), &loc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if loc.ID != "loc-1" || loc.Name != "Seaside flat" {
		t.Errorf("location = %+v", loc)
	}
}

func TestGetLocationHandlerNotFound(t *testing.T) {
	h := NewLocationHandler(newFakeLocationRepo(), nil, nil)

	c, w := testContext(t)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}
	h.GetLocationHandler(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestMyLocationsHandler(t *testing.T) {
	h := NewLocationHandler(newFakeLocationRepo(
		models.Location{ID: "loc-1", OwnerID: "host-1", Name: "Seaside flat", PricePerNight: 80},
		models.Location{ID: "loc-2", OwnerID: "host-2", Name: "Cabin", PricePerNight: 50},
	), nil, nil)

	c, w := testContext(t)
	c.Set("actor", models.Actor{UserID: "host-1"})
	h.MyLocationsHandler(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var list []models.Location
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].ID != "loc-1" {
		t.Errorf("expected only the caller's rentals, got %+v", list)
	}
}

func TestMyLocationsHandlerUnauthenticated(t *testing.T) {
	h := NewLocationHandler(newFakeLocationRepo(), nil, nil)

	c, w := testContext(t)
	h.MyLocationsHandler(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
