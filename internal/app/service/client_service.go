package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/repository"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrInvalidClientStatus = errors.New("invalid client status")
)

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
}

type ClientService interface {
	CreateInquiry(input ContactInput) (*model.Client, string, error)
	ListClients(filter repository.ClientFilter) ([]model.Client, error)
	UpdateStatus(id uint, status string) error
	AllClients() ([]model.Client, error)
}

type clientService struct {
	clientRepo    repository.ClientRepository
	configService ConfigService
}

func NewClientService(clientRepo repository.ClientRepository, configService ConfigService) ClientService {
	return &clientService{
		clientRepo:    clientRepo,
		configService: configService,
	}
}

// CreateInquiry stores the lead and returns the WhatsApp link the caller
// should be redirected to. The lead is saved even if the visitor never
// follows the link.
func (s *clientService) CreateInquiry(input ContactInput) (*model.Client, string, error) {
	client := &model.Client{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Company: strings.TrimSpace(input.Company),
		Message: strings.TrimSpace(input.Message),
		Source:  model.ClientSourceContactForm,
		Status:  model.ClientPending,
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, "", err
	}

	number := s.configService.GetWhatsAppNumber()
	link := buildWhatsAppLink(number, client)

	logger.Info("Contact inquiry created", map[string]interface{}{
		"client_id": client.ID,
		"company":   client.Company,
	})
	return client, link, nil
}

func buildWhatsAppLink(number string, client *model.Client) string {
	var b strings.Builder
	b.WriteString("Hola! Soy ")
	b.WriteString(client.Name)
	if client.Company != "" {
		b.WriteString(" de ")
		b.WriteString(client.Company)
	}
	b.WriteString(".\n\n")
	b.WriteString(client.Message)
	b.WriteString("\n\nMi contacto:\nEmail: ")
	b.WriteString(client.Email)
	b.WriteString("\nTeléfono: ")
	b.WriteString(client.Phone)

	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(b.String()))
}

func (s *clientService) ListClients(filter repository.ClientFilter) ([]model.Client, error) {
	return s.clientRepo.FindWithFilter(filter)
}

func (s *clientService) AllClients() ([]model.Client, error) {
	return s.clientRepo.FindAll()
}

func (s *clientService) UpdateStatus(id uint, status string) error {
	if !model.IsValidClientStatus(status) {
		return ErrInvalidClientStatus
	}

	if err := s.clientRepo.UpdateStatus(id, model.ClientStatus(status)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return err
	}

	logger.Info("Client status updated", map[string]interface{}{
		"client_id": id,
		"status":    status,
	})
	return nil
}
