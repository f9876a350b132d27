package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/NomadCrew/nomad-itinerary/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	t.Run("up", func(t *testing.T) {
		h := NewHealthHandler(service.NewHealthService(nil, nil, "1.0.0"))
		r := gin.New()
		r.GET("/health", h.HealthCheck)

		w, body := serve(r, "/health")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "UP", body["status"])
		assert.Equal(t, "1.0.0", body["version"])
	})

	t.Run("database down", func(t *testing.T) {
		db, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer db.Close()
		db.ExpectPing().WillReturnError(errors.New("refused"))

		h := NewHealthHandler(service.NewHealthService(db, nil, "1.0.0"))
		r := gin.New()
		r.GET("/health", h.HealthCheck)

		w, body := serve(r, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "DOWN", body["status"])
	})

	t.Run("liveness", func(t *testing.T) {
		r := gin.New()
		r.GET("/live", NewHealthHandler(nil).LivenessCheck)

		w, _ := serve(r, "/live")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
