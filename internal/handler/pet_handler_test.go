package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-pet/internal/application"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/platform/response"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	log := zap.NewNop()
	service := application.NewPetService(
		repository.NewMemoryPetStore(),
		petDomain.NewIDCodec(false, log),
		nil,
		log,
	)
	return handler.NewRouter(service, log)
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestPetLifecycle(t *testing.T) {
	r := newTestRouter(t)
	payload := map[string]interface{}{
		"name":   "Rex",
		"kind":   "dog",
		"status": "available",
		"breed":  "beagle",
	}

	w := doJSON(t, r, http.MethodPost, "/pets", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[application.PetDTO](t, w)
	assert.Len(t, created.ID, 24)
	assert.Equal(t, "Rex", created.Name)
	assert.Equal(t, created.CreatedAt, created.LastModified)

	w = doJSON(t, r, http.MethodGet, "/pets/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[application.PetDTO](t, w))

	time.Sleep(2 * time.Millisecond)
	payload["status"] = "adopted"
	w = doJSON(t, r, http.MethodPut, "/pets/"+created.ID, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[application.PetDTO](t, w)
	assert.Equal(t, "adopted", updated.Status)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Greater(t, updated.LastModified, updated.CreatedAt)

	w = doJSON(t, r, http.MethodPut, "/pets/"+created.ID, payload)
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, "/pets/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deleted count: 1", decode[application.DeleteResultDTO](t, w).Status)

	w = doJSON(t, r, http.MethodGet, "/pets/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode[response.Envelope](t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w = doJSON(t, r, http.MethodDelete, "/pets/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPetRoutes_RejectBadInput(t *testing.T) {
	r := newTestRouter(t)
	validBody := map[string]interface{}{"name": "Tom", "kind": "cat", "status": "available"}

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		code   string
	}{
		{"get malformed id", http.MethodGet, "/pets/not-an-id", nil, "INVALID_ID"},
		{"put malformed id", http.MethodPut, "/pets/123", validBody, "INVALID_ID"},
		{"delete malformed id", http.MethodDelete, "/pets/zzzzzzzzzzzzzzzzzzzzzzzz", nil, "INVALID_ID"},
		{"create missing name", http.MethodPost, "/pets", map[string]interface{}{"kind": "cat", "status": "available"}, "BAD_REQUEST"},
		{"create unknown kind", http.MethodPost, "/pets", map[string]interface{}{"name": "X", "kind": "dragon", "status": "available"}, "BAD_REQUEST"},
		{"create negative age", http.MethodPost, "/pets", map[string]interface{}{"name": "X", "kind": "cat", "status": "available", "age_months": -1}, "BAD_REQUEST"},
		{"list unknown kind", http.MethodGet, "/pets?kind=dragon", nil, "BAD_REQUEST"},
		{"list non-numeric limit", http.MethodGet, "/pets?limit=ten", nil, "BAD_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[response.Envelope](t, w).Error.Code)
		})
	}
}

func TestPetRoutes_MalformedJSON(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/pets", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPetRoutes_UpdateMissingPet(t *testing.T) {
	r := newTestRouter(t)
	body := map[string]interface{}{"name": "Ghost", "kind": "cat", "status": "available"}

	w := doJSON(t, r, http.MethodPut, "/pets/"+bson.NewObjectID().Hex(), body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The missing pet wins over an invalid payload.
	w = doJSON(t, r, http.MethodPut, "/pets/"+bson.NewObjectID().Hex(), map[string]interface{}{"kind": "dragon"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[response.Envelope](t, w).Error.Code)
}

func TestListPets_FiltersPagesAndCounts(t *testing.T) {
	r := newTestRouter(t)
	seed := []map[string]interface{}{
		{"name": "Tom", "kind": "cat", "status": "available"},
		{"name": "Rex", "kind": "dog", "status": "available"},
		{"name": "Luna", "kind": "cat", "status": "pending"},
		{"name": "Kiki", "kind": "bird", "status": "adopted"},
	}
	for _, body := range seed {
		w := doJSON(t, r, http.MethodPost, "/api/v1/pets", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		time.Sleep(time.Millisecond)
	}

	w := doJSON(t, r, http.MethodGet, "/pets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[application.PetListDTO](t, w)
	assert.Equal(t, int64(4), all.Count)
	require.Len(t, all.Pets, 4)
	assert.Equal(t, "Kiki", all.Pets[0].Name)

	w = doJSON(t, r, http.MethodGet, "/pets?kind=cat", nil)
	cats := decode[application.PetListDTO](t, w)
	assert.Equal(t, int64(2), cats.Count)
	assert.Equal(t, "Luna", cats.Pets[0].Name)

	w = doJSON(t, r, http.MethodGet, "/api/v1/pets/?status=available&limit=1&skip=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[application.PetListDTO](t, w)
	assert.Equal(t, int64(2), page.Count)
	require.Len(t, page.Pets, 1)
	assert.Equal(t, "Tom", page.Pets[0].Name)

	w = doJSON(t, r, http.MethodGet, "/pets?limit=0&skip=-5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[application.PetListDTO](t, w).Pets, 4)

	w = doJSON(t, r, http.MethodGet, "/pets?skip=1&limit=9223372036854775807", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode[application.PetListDTO](t, w).Pets, 3)

	w = doJSON(t, r, http.MethodGet, "/pets?skip=50", nil)
	empty := decode[application.PetListDTO](t, w)
	assert.Equal(t, int64(4), empty.Count)
	assert.NotNil(t, empty.Pets)
	assert.Empty(t, empty.Pets)
}

func TestAdminStats(t *testing.T) {
	r := newTestRouter(t)
	for _, status := range []string{"available", "available", "adopted"} {
		w := doJSON(t, r, http.MethodPost, "/pets", map[string]interface{}{"name": "P", "kind": "fish", "status": status})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/stats/pets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[application.PetStatsDTO](t, w)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, map[string]int64{"available": 2, "pending": 0, "adopted": 1}, stats.ByStatus)
}

func TestHealthRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])

	w = doJSON(t, r, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, handler.ServiceName, decode[map[string]string](t, w)["service"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

type failingPinger struct{}

func (failingPinger) Ping(_ context.Context) error { return errors.New("connection refused") }

func TestHealthReady_Unavailable(t *testing.T) {
	r := gin.New()
	handler.NewHealthHandler(failingPinger{}, handler.ServiceName).RegisterRoutes(r)

	w := doJSON(t, r, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode[map[string]string](t, w)["status"])
}

func TestSwaggerDoc(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/pets/{id}")
}
