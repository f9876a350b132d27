package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NomadCrew/nomad-itinerary/config"
	"github.com/NomadCrew/nomad-itinerary/handlers"
	"github.com/NomadCrew/nomad-itinerary/internal/service"
	"github.com/NomadCrew/nomad-itinerary/internal/store/mocks"
	"github.com/NomadCrew/nomad-itinerary/internal/trips"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

func newTestRouter(docs *mocks.TripDocumentRepository) *gin.Engine {
	cfg := &config.Config{Server: config.ServerConfig{Environment: config.EnvDevelopment}}
	return SetupRouter(Dependencies{
		Config:        cfg,
		TripHandler:   handlers.NewTripHandler(service.NewTripService(docs, trips.NewAssembler(), nil)),
		HealthHandler: handlers.NewHealthHandler(service.NewHealthService(nil, nil, "test")),
	})
}

func TestSetupRouter_SwaggerDocument(t *testing.T) {
	r := newTestRouter(new(mocks.TripDocumentRepository))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Nomad Itinerary API", doc.Info.Title)
	for _, path := range []string{"/health", "/v1/trips/{id}", "/v1/trips/{id}/costs", "/v1/owners/{ownerId}/trips"} {
		assert.Contains(t, doc.Paths, path)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter(t *testing.T) {
	docs := new(mocks.TripDocumentRepository)
	docs.On("GetTripDocument", mock.Anything, "missing").Return(nil, assert.AnError)

	r := newTestRouter(docs)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/health", http.StatusOK},
		{"/health/liveness", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/v1/trips/missing", http.StatusInternalServerError},
		{"/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}
