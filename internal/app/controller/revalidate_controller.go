package controller

import (
	"net/http"
	"strings"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/service"
	appErrors "github.com/MPA-Digital-Solutions/TechMedis/internal/errors"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/middleware"
	"github.com/gin-gonic/gin"
)

type RevalidateController struct {
	invalidator service.PageInvalidator
	token       string
}

// NewRevalidateController wires the cache invalidation endpoint. token
// may be empty, in which case the bearer check is skipped entirely.
func NewRevalidateController(invalidator service.PageInvalidator, token string) *RevalidateController {
	return &RevalidateController{
		invalidator: invalidator,
		token:       token,
	}
}

type revalidateRequest struct {
	Path string `json:"path"`
	Slug string `json:"slug"`
}

// Revalidate drops cached pages. A slug invalidates that product's detail
// page plus the catalog list pages; an explicit path invalidates just
// that path; with neither, the catalog list pages are dropped.
// POST /api/v1/revalidate
func (ctrl *RevalidateController) Revalidate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if ctrl.token != "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "Bearer "+ctrl.token {
			appErrors.Unauthorized(c, "Token de revalidación inválido")
			return
		}
	}

	var req revalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Cuerpo de solicitud inválido")
		return
	}

	var paths []string
	switch {
	case req.Slug != "":
		paths = append(paths, service.CatalogPaths...)
		paths = append(paths, "/productos/"+req.Slug)
	case req.Path != "":
		if !strings.HasPrefix(req.Path, "/") {
			appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "El path debe comenzar con /")
			return
		}
		paths = []string{req.Path}
	default:
		paths = append(paths, service.CatalogPaths...)
	}

	if err := ctrl.invalidator.InvalidatePages(c.Request.Context(), paths); err != nil {
		log.Error("Failed to invalidate pages", err, map[string]interface{}{
			"paths": paths,
		})
		appErrors.InternalError(c, "No se pudo invalidar la caché")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"revalidated": paths,
	})
}

// Liveness lets external monitors confirm the endpoint is reachable.
// GET /api/v1/revalidate
func (ctrl *RevalidateController) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"paths":  service.CatalogPaths,
	})
}
