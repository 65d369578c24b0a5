// specialties.go — сервис справочников УГС и специальностей.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akosarev/eduregistry/internal/domain/model"
	"github.com/akosarev/eduregistry/internal/repository"
)

// SpecialtyService — чтение справочников специальностей для фильтров реестра.
type SpecialtyService struct {
	specRepo repository.SpecialtyRepository
	logger   *slog.Logger
}

// NewSpecialtyService создаёт сервис справочников.
func NewSpecialtyService(specRepo repository.SpecialtyRepository, logger *slog.Logger) *SpecialtyService {
	return &SpecialtyService{
		specRepo: specRepo,
		logger:   logger.With(slog.String("component", "specialty_service")),
	}
}

// ListGroups возвращает все укрупнённые группы специальностей.
func (s *SpecialtyService) ListGroups(ctx context.Context) ([]*model.SpecialtyGroup, error) {
	groups, err := s.specRepo.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение списка УГС: %w", err)
	}
	return groups, nil
}

// ListSpecialties возвращает специальности, при groupID != nil — только
// указанной группы (каскад выпадающих фильтров).
func (s *SpecialtyService) ListSpecialties(ctx context.Context, groupID *int64) ([]*model.Specialty, error) {
	specialties, err := s.specRepo.ListSpecialties(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("получение списка специальностей: %w", err)
	}
	return specialties, nil
}
