package controller

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/repository"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/service"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/export"
	appErrors "github.com/MPA-Digital-Solutions/TechMedis/internal/errors"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ClientController struct {
	clientService service.ClientService
}

func NewClientController(clientService service.ClientService) *ClientController {
	return &ClientController{
		clientService: clientService,
	}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message" binding:"required"`
}

// Contact stores the inquiry and returns the WhatsApp redirect link.
// POST /api/v1/contact
func (ctrl *ClientController) Contact(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Complete los campos obligatorios")
		return
	}

	client, link, err := ctrl.clientService.CreateInquiry(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
	})
	if err != nil {
		log.Error("Failed to create inquiry", err, nil)
		appErrors.InternalError(c, "No se pudo enviar el mensaje. Intente nuevamente")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"client_id":     client.ID,
		"whatsapp_link": link,
	})
}

// ListClients returns leads for the admin, filterable by status/source.
// GET /api/v1/admin/clients
func (ctrl *ClientController) ListClients(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ClientFilter{
		Source: c.Query("source"),
		Limit:  parseIntQuery(c, "limit"),
		Offset: parseIntQuery(c, "offset"),
	}
	if status := c.Query("status"); status != "" {
		if !model.IsValidClientStatus(status) {
			appErrors.BadRequest(c, appErrors.ClientInvalidStatus, "Estado de contacto inválido")
			return
		}
		s := model.ClientStatus(status)
		filter.Status = &s
	}

	clients, err := ctrl.clientService.ListClients(filter)
	if err != nil {
		log.Error("Failed to fetch clients", err, nil)
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients": clients,
		"count":   len(clients),
	})
}

// UpdateStatus moves a lead through pending → contacted → converted.
// PATCH /api/v1/admin/clients/:id/status
func (ctrl *ClientController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Datos inválidos")
		return
	}

	if err := ctrl.clientService.UpdateStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClientStatus):
			appErrors.BadRequest(c, appErrors.ClientInvalidStatus, "Estado de contacto inválido")
		case errors.Is(err, service.ErrClientNotFound):
			appErrors.NotFound(c, appErrors.ClientNotFound, "No se encontró el contacto")
		default:
			log.Error("Failed to update client status", err, map[string]interface{}{
				"client_id": id,
			})
			appErrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Estado actualizado",
	})
}

// ExportClients downloads the full lead list as an XLSX attachment.
// GET /api/v1/admin/clients/export
func (ctrl *ClientController) ExportClients(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	clients, err := ctrl.clientService.AllClients()
	if err != nil {
		log.Error("Failed to fetch clients for export", err, nil)
		appErrors.InternalError(c, "")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteClientsXLSX(&buf, clients); err != nil {
		log.Error("Failed to build clients export", err, nil)
		appErrors.InternalError(c, "No se pudo generar el archivo")
		return
	}

	filename := fmt.Sprintf("contactos-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
