package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/repository"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"gorm.io/gorm"
)

var ErrConfigNotFound = errors.New("config entry not found")

const (
	// whatsAppFallback is returned whenever the configured number is
	// absent or unreadable. The contact flow must never be left without
	// a destination number.
	whatsAppFallback = "5491112345678"

	// configReadTimeout bounds every config read so a slow database
	// cannot stall a public page render.
	configReadTimeout = 10 * time.Second
)

type ConfigService interface {
	Get(key string) (string, error)
	GetAll() (map[string]string, error)
	Set(key, value string) error
	GetWhatsAppNumber() string
}

type configService struct {
	configRepo repository.ConfigRepository
}

func NewConfigService(configRepo repository.ConfigRepository) ConfigService {
	return &configService{configRepo: configRepo}
}

func (s *configService) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), configReadTimeout)
	defer cancel()

	entry, err := s.configRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrConfigNotFound
		}
		logger.Error("Failed to read config entry", err, map[string]interface{}{
			"key": key,
		})
		return "", err
	}
	return entry.Value, nil
}

func (s *configService) GetAll() (map[string]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), configReadTimeout)
	defer cancel()

	entries, err := s.configRepo.GetAll(ctx)
	if err != nil {
		logger.Error("Failed to read config entries", err)
		return nil, err
	}

	result := make(map[string]string, len(entries))
	for _, entry := range entries {
		result[entry.Key] = entry.Value
	}
	return result, nil
}

func (s *configService) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), configReadTimeout)
	defer cancel()

	if err := s.configRepo.Upsert(ctx, key, value); err != nil {
		return err
	}

	logger.Info("Config entry updated", map[string]interface{}{
		"key": key,
	})
	return nil
}

// GetWhatsAppNumber returns the configured contact number reduced to
// digits, or the fixed fallback. It never fails and never returns an
// empty string.
func (s *configService) GetWhatsAppNumber() string {
	value, err := s.Get(model.ConfigKeyWhatsAppNumber)
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			logger.Warn("Falling back to default WhatsApp number", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return whatsAppFallback
	}

	number := sanitizePhoneNumber(value)
	if number == "" {
		return whatsAppFallback
	}
	return number
}

// sanitizePhoneNumber keeps digits only; wa.me links take no "+", spaces
// or dashes.
func sanitizePhoneNumber(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
