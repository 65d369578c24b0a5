// regions.go — сервис справочника регионов.
//
// Удаление защищено: регион, на который ссылаются организации,
// удалить нельзя — сначала надо перевести или удалить организации.
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

// RegionService — сервис управления регионами.
type RegionService struct {
	regionRepo repository.RegionRepository
	logger     *slog.Logger
}

// NewRegionService создаёт сервис регионов.
func NewRegionService(regionRepo repository.RegionRepository, logger *slog.Logger) *RegionService {
	return &RegionService{
		regionRepo: regionRepo,
		logger:     logger.With(slog.String("component", "region_service")),
	}
}

// List возвращает все регионы в алфавитном порядке.
func (s *RegionService) List(ctx context.Context) ([]*model.Region, error) {
	regions, err := s.regionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение списка регионов: %w", err)
	}
	return regions, nil
}

// Get возвращает регион по ID.
func (s *RegionService) Get(ctx context.Context, id int64) (*model.Region, error) {
	region, err := s.regionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение региона: %w", err)
	}
	return region, nil
}

// Create создаёт регион с уникальным названием.
func (s *RegionService) Create(ctx context.Context, name string) (*model.Region, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: название региона обязательно", ErrValidation)
	}

	region := &model.Region{Name: name}
	if err := s.regionRepo.Create(ctx, region); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: регион '%s' уже существует", ErrConflict, name)
		}
		return nil, fmt.Errorf("создание региона: %w", err)
	}

	s.logger.Info("Регион добавлен",
		slog.Int64("id", region.ID),
		slog.String("name", name),
	)
	return region, nil
}

// Update переименовывает регион.
func (s *RegionService) Update(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: название региона обязательно", ErrValidation)
	}

	region := &model.Region{ID: id, Name: name}
	if err := s.regionRepo.Update(ctx, region); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrConflict):
			return fmt.Errorf("%w: регион '%s' уже существует", ErrConflict, name)
		}
		return fmt.Errorf("обновление региона: %w", err)
	}

	s.logger.Info("Регион переименован", slog.Int64("id", id), slog.String("name", name))
	return nil
}

// Delete удаляет регион, если на него не ссылается ни одна организация.
func (s *RegionService) Delete(ctx context.Context, id int64) error {
	count, err := s.regionRepo.CountOrganizations(ctx, id)
	if err != nil {
		return fmt.Errorf("подсчёт организаций региона: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: организаций в регионе — %d", ErrRegionInUse, count)
	}

	if err := s.regionRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrReferenced):
			// Гонка: организация появилась между подсчётом и удалением.
			return ErrRegionInUse
		}
		return fmt.Errorf("удаление региона: %w", err)
	}

	s.logger.Info("Регион удалён", slog.Int64("id", id))
	return nil
}
