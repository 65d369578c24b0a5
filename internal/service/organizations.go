// organizations.go — сервис карточки организации: просмотр и изменения.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/akosarev/eduregistry/internal/domain/model"
	"github.com/akosarev/eduregistry/internal/repository"
)

// OrganizationService — сервис управления организациями реестра.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
	logger  *slog.Logger
}

// NewOrganizationService создаёт сервис организаций.
func NewOrganizationService(orgRepo repository.OrganizationRepository, logger *slog.Logger) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
		logger:  logger.With(slog.String("component", "organization_service")),
	}
}

// validateOrganization проверяет обязательные поля карточки.
func validateOrganization(org *model.Organization) error {
	if strings.TrimSpace(org.FullName) == "" {
		return fmt.Errorf("%w: полное наименование обязательно", ErrValidation)
	}
	if strings.TrimSpace(org.OGRN) == "" {
		return fmt.Errorf("%w: ОГРН обязателен", ErrValidation)
	}
	return nil
}

// Get возвращает организацию по ID.
func (s *OrganizationService) Get(ctx context.Context, id int64) (*model.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение организации: %w", err)
	}
	return org, nil
}

// Create создаёт организацию. ОГРН уникален в пределах реестра.
func (s *OrganizationService) Create(ctx context.Context, org *model.Organization) error {
	if err := validateOrganization(org); err != nil {
		return err
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("%w: организация с ОГРН '%s' уже есть в реестре", ErrConflict, org.OGRN)
		}
		return fmt.Errorf("создание организации: %w", err)
	}

	s.logger.Info("Организация добавлена",
		slog.Int64("id", org.ID),
		slog.String("ogrn", org.OGRN),
	)
	return nil
}

// Update обновляет карточку организации.
func (s *OrganizationService) Update(ctx context.Context, org *model.Organization) error {
	if err := validateOrganization(org); err != nil {
		return err
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrConflict):
			return fmt.Errorf("%w: организация с ОГРН '%s' уже есть в реестре", ErrConflict, org.OGRN)
		}
		return fmt.Errorf("обновление организации: %w", err)
	}

	s.logger.Info("Организация обновлена", slog.Int64("id", org.ID))
	return nil
}

// Delete удаляет организацию вместе с её программами.
func (s *OrganizationService) Delete(ctx context.Context, id int64) error {
	if err := s.orgRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("удаление организации: %w", err)
	}

	s.logger.Info("Организация удалена", slog.Int64("id", id))
	return nil
}
