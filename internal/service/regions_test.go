package service

import (
	"context"
	"errors"
	"testing"

	"github.com/akosarev/eduregistry/internal/domain/model"
	"github.com/akosarev/eduregistry/internal/repository"
)

// mockRegionRepo — мок репозитория регионов.
type mockRegionRepo struct {
	countOrgsFn func(ctx context.Context, id int64) (int64, error)
	deleteFn    func(ctx context.Context, id int64) error
	createFn    func(ctx context.Context, region *model.Region) error
}

func (m *mockRegionRepo) Create(ctx context.Context, region *model.Region) error {
	return m.createFn(ctx, region)
}
func (m *mockRegionRepo) GetByID(ctx context.Context, id int64) (*model.Region, error) {
	return nil, repository.ErrNotFound
}
func (m *mockRegionRepo) GetByName(ctx context.Context, name string) (*model.Region, error) {
	return nil, repository.ErrNotFound
}
func (m *mockRegionRepo) List(ctx context.Context) ([]*model.Region, error) { return nil, nil }
func (m *mockRegionRepo) Update(ctx context.Context, region *model.Region) error {
	return nil
}
func (m *mockRegionRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}
func (m *mockRegionRepo) CountOrganizations(ctx context.Context, id int64) (int64, error) {
	return m.countOrgsFn(ctx, id)
}

func TestRegionDelete_InUse(t *testing.T) {
	repo := &mockRegionRepo{
		countOrgsFn: func(_ context.Context, _ int64) (int64, error) { return 3, nil },
		deleteFn: func(_ context.Context, _ int64) error {
			t.Fatal("Delete репозитория не должен вызываться для используемого региона")
			return nil
		},
	}

	svc := NewRegionService(repo, testLogger())
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, ErrRegionInUse) {
		t.Errorf("Delete() = %v, ожидается ErrRegionInUse", err)
	}
}

func TestRegionDelete_Empty(t *testing.T) {
	deleted := false
	repo := &mockRegionRepo{
		countOrgsFn: func(_ context.Context, _ int64) (int64, error) { return 0, nil },
		deleteFn: func(_ context.Context, id int64) error {
			deleted = true
			return nil
		},
	}

	svc := NewRegionService(repo, testLogger())
	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Errorf("Delete() ошибка: %v", err)
	}
	if !deleted {
		t.Error("Delete репозитория не вызван")
	}
}

// Гонка: организация привязалась к региону между подсчётом и удалением.
func TestRegionDelete_RaceMapsToInUse(t *testing.T) {
	repo := &mockRegionRepo{
		countOrgsFn: func(_ context.Context, _ int64) (int64, error) { return 0, nil },
		deleteFn: func(_ context.Context, _ int64) error {
			return repository.ErrReferenced
		},
	}

	svc := NewRegionService(repo, testLogger())
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, ErrRegionInUse) {
		t.Errorf("Delete() = %v, ожидается ErrRegionInUse", err)
	}
}

func TestRegionCreate_Validation(t *testing.T) {
	repo := &mockRegionRepo{
		createFn: func(_ context.Context, _ *model.Region) error {
			t.Fatal("Create репозитория не должен вызываться при пустом названии")
			return nil
		},
	}

	svc := NewRegionService(repo, testLogger())
	if _, err := svc.Create(context.Background(), "   "); !errors.Is(err, ErrValidation) {
		t.Errorf("Create() с пустым названием = %v, ожидается ErrValidation", err)
	}
}

func TestRegionCreate_Conflict(t *testing.T) {
	repo := &mockRegionRepo{
		createFn: func(_ context.Context, _ *model.Region) error {
			return repository.ErrConflict
		},
	}

	svc := NewRegionService(repo, testLogger())
	if _, err := svc.Create(context.Background(), "Московская область"); !errors.Is(err, ErrConflict) {
		t.Errorf("Create() с дублирующим названием = %v, ожидается ErrConflict", err)
	}
}
