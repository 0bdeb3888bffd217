package controller

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvalidator struct {
	paths []string
}

func (f *fakeInvalidator) InvalidatePages(_ context.Context, paths []string) error {
	f.paths = append(f.paths, paths...)
	return nil
}

func setupRevalidateControllerTest(t *testing.T, token string) (*gin.Engine, *fakeInvalidator) {
	t.Helper()

	invalidator := &fakeInvalidator{}
	revalidateController := NewRevalidateController(invalidator, token)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/revalidate", revalidateController.Liveness)
	router.POST("/revalidate", revalidateController.Revalidate)

	return router, invalidator
}

func postRevalidate(router *gin.Engine, body, bearer string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBuffer(nil)
	} else {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest("POST", "/revalidate", reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRevalidateController_Slug(t *testing.T) {
	router, invalidator := setupRevalidateControllerTest(t, "")

	w := postRevalidate(router, `{"slug":"ecografo-4d"}`, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, invalidator.paths, "/productos/ecografo-4d")
	for _, path := range service.CatalogPaths {
		assert.Contains(t, invalidator.paths, path)
	}
}

func TestRevalidateController_Path(t *testing.T) {
	router, invalidator := setupRevalidateControllerTest(t, "")

	w := postRevalidate(router, `{"path":"/equipamiento-veterinario"}`, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"/equipamiento-veterinario"}, invalidator.paths)
}

func TestRevalidateController_PathMustBeAbsolute(t *testing.T) {
	router, invalidator := setupRevalidateControllerTest(t, "")

	w := postRevalidate(router, `{"path":"productos"}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, invalidator.paths)
}

func TestRevalidateController_DefaultsToCatalogPages(t *testing.T) {
	router, invalidator := setupRevalidateControllerTest(t, "")

	w := postRevalidate(router, "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.CatalogPaths, invalidator.paths)
}

func TestRevalidateController_TokenRequired(t *testing.T) {
	router, invalidator := setupRevalidateControllerTest(t, "token-secreto")

	w := postRevalidate(router, `{"slug":"ecografo-4d"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, invalidator.paths)

	w = postRevalidate(router, `{"slug":"ecografo-4d"}`, "token-incorrecto")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, invalidator.paths)

	w = postRevalidate(router, `{"slug":"ecografo-4d"}`, "token-secreto")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, invalidator.paths)
}

func TestRevalidateController_Liveness(t *testing.T) {
	router, _ := setupRevalidateControllerTest(t, "")

	req := httptest.NewRequest("GET", "/revalidate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), "/equipamientos-clinicos")
}
