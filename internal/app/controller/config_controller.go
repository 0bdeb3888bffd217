package controller

import (
	"errors"
	"net/http"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/service"
	appErrors "github.com/MPA-Digital-Solutions/TechMedis/internal/errors"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ConfigController struct {
	configService service.ConfigService
}

func NewConfigController(configService service.ConfigService) *ConfigController {
	return &ConfigController{
		configService: configService,
	}
}

// GetWhatsAppNumber returns the public contact number. Always succeeds:
// the service falls back to a fixed default.
// GET /api/v1/config/whatsapp
func (ctrl *ConfigController) GetWhatsAppNumber(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"whatsapp_number": ctrl.configService.GetWhatsAppNumber(),
	})
}

// GetByKey returns one config entry.
// GET /api/v1/admin/config/:key
func (ctrl *ConfigController) GetByKey(c *gin.Context) {
	key := c.Param("key")

	value, err := ctrl.configService.Get(key)
	if err != nil {
		if errors.Is(err, service.ErrConfigNotFound) {
			appErrors.NotFound(c, appErrors.ConfigNotFound, "No existe esa clave de configuración")
			return
		}
		info := appErrors.ParseError(err, "config")
		appErrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":   key,
		"value": value,
	})
}

// GetAll returns every config entry for the admin settings screen.
// GET /api/v1/admin/config
func (ctrl *ConfigController) GetAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	entries, err := ctrl.configService.GetAll()
	if err != nil {
		log.Error("Failed to fetch config entries", err, nil)
		info := appErrors.ParseError(err, "config")
		appErrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"config": entries,
	})
}

type updateConfigRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// Update upserts one config entry.
// PUT /api/v1/admin/config
func (ctrl *ConfigController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Clave y valor son obligatorios")
		return
	}

	if err := ctrl.configService.Set(req.Key, req.Value); err != nil {
		log.Error("Failed to update config entry", err, map[string]interface{}{
			"key": req.Key,
		})
		info := appErrors.ParseError(err, "update config")
		appErrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Configuración actualizada",
	})
}

// UpdateWhatsAppNumber is a convenience endpoint for the only live key.
// PUT /api/v1/admin/config/whatsapp
func (ctrl *ConfigController) UpdateWhatsAppNumber(c *gin.Context) {
	var req struct {
		Number string `json:"number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "El número es obligatorio")
		return
	}

	if err := ctrl.configService.Set(model.ConfigKeyWhatsAppNumber, req.Number); err != nil {
		info := appErrors.ParseError(err, "update config")
		appErrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Número de WhatsApp actualizado",
	})
}
