package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyAuth_MissingKey(t *testing.T) {
	logger := zerolog.Nop()
	handler := APIKeyAuth("secret-key", logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/compras", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyAuth_InvalidKey(t *testing.T) {
	logger := zerolog.Nop()
	handler := APIKeyAuth("secret-key", logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/compras", nil)
	req.Header.Set("X-API-Key", "wrong-key")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	logger := zerolog.Nop()
	handler := APIKeyAuth("secret-key", logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/compras", nil)
	req.Header.Set("X-API-Key", "secret-key")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyAuth_HealthBypass(t *testing.T) {
	logger := zerolog.Nop()
	handler := APIKeyAuth("secret-key", logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogging_SetsRequestID(t *testing.T) {
	logger := zerolog.Nop()
	handler := Logging(logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/compras", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestLogging_PreservesIncomingRequestID(t *testing.T) {
	logger := zerolog.Nop()
	handler := Logging(logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/compras", nil)
	req.Header.Set("X-Request-ID", "test-correlation-id")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "test-correlation-id", rec.Header().Get("X-Request-ID"))
}

func TestRecovery(t *testing.T) {
	logger := zerolog.Nop()
	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/compras", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message": "Internal server error", "statusCode": 500, "error": true, "data": null}`, rec.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/compras", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
