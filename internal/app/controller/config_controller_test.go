package controller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/repository"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/service"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfigControllerTest(t *testing.T) (*gin.Engine, service.ConfigService) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	configService := service.NewConfigService(repository.NewConfigRepository(testDB))
	configController := NewConfigController(configService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/config/whatsapp", configController.GetWhatsAppNumber)
	router.GET("/admin/config", configController.GetAll)
	router.PUT("/admin/config", configController.Update)
	router.PUT("/admin/config/whatsapp", configController.UpdateWhatsAppNumber)
	router.GET("/admin/config/:key", configController.GetByKey)

	return router, configService
}

func TestConfigController_GetWhatsAppNumber_Fallback(t *testing.T) {
	router, _ := setupConfigControllerTest(t)

	req := httptest.NewRequest("GET", "/config/whatsapp", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// With nothing configured the endpoint still answers with the default.
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"whatsapp_number":"5491112345678"`)
}

func TestConfigController_UpdateWhatsAppNumber(t *testing.T) {
	router, svc := setupConfigControllerTest(t)

	payload := bytes.NewBufferString(`{"number":"+54 9 11 4444-5555"}`)
	req := httptest.NewRequest("PUT", "/admin/config/whatsapp", payload)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// Stored raw; sanitized on the way out.
	assert.Equal(t, "5491144445555", svc.GetWhatsAppNumber())
}

func TestConfigController_Update(t *testing.T) {
	router, svc := setupConfigControllerTest(t)

	payload := bytes.NewBufferString(`{"key":"horario_atencion","value":"Lun a Vie 9-18"}`)
	req := httptest.NewRequest("PUT", "/admin/config", payload)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	value, err := svc.Get("horario_atencion")
	require.NoError(t, err)
	assert.Equal(t, "Lun a Vie 9-18", value)
}

func TestConfigController_Update_MissingValue(t *testing.T) {
	router, _ := setupConfigControllerTest(t)

	payload := bytes.NewBufferString(`{"key":"horario_atencion"}`)
	req := httptest.NewRequest("PUT", "/admin/config", payload)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}

func TestConfigController_GetByKey(t *testing.T) {
	router, svc := setupConfigControllerTest(t)
	require.NoError(t, svc.Set("horario_atencion", "Lun a Vie 9-18"))

	req := httptest.NewRequest("GET", "/admin/config/horario_atencion", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"value":"Lun a Vie 9-18"`)
}

func TestConfigController_GetByKey_NotFound(t *testing.T) {
	router, _ := setupConfigControllerTest(t)

	req := httptest.NewRequest("GET", "/admin/config/inexistente", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CONFIG_NOT_FOUND")
}

func TestConfigController_GetAll(t *testing.T) {
	router, svc := setupConfigControllerTest(t)
	require.NoError(t, svc.Set("clave", "valor"))

	req := httptest.NewRequest("GET", "/admin/config", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"clave"`)
	assert.Contains(t, w.Body.String(), `"valor"`)
}
