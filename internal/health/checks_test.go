package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/config"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHealthHandler(t *testing.T) {
	t.Run("Failure - Database unreachable", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		mock.ExpectPing().WillReturnError(assert.AnError)

		cfg := &config.Config{}
		cfg.OTel.ServiceName = "apparel-storefront"
		cfg.RedisConnect = config.RedisConnect{Host: "127.0.0.1", Port: "1"}

		h, err := health.NewHealthHandler(cfg, "test", &health.Endpoints{DB: db})
		require.NoError(t, err)

		rr := httptest.NewRecorder()

		// Act
		h.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		// Assert
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

		var body struct {
			Status    string            `json:"status"`
			Failures  map[string]string `json:"failures"`
			Component struct {
				Name string `json:"name"`
			} `json:"component"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Unavailable", body.Status)
		assert.Contains(t, body.Failures["database"], "database ping failed")
		assert.Equal(t, "apparel-storefront", body.Component.Name)
	})
}
