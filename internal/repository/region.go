package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/akosarev/eduregistry/internal/domain/model"
)

// RegionRepository — CRUD по таблице regions.
type RegionRepository interface {
	// Create создаёт регион и заполняет ID/CreatedAt.
	Create(ctx context.Context, region *model.Region) error
	// GetByID возвращает регион по ID.
	GetByID(ctx context.Context, id int64) (*model.Region, error)
	// GetByName возвращает регион по названию (используется загрузчиком).
	GetByName(ctx context.Context, name string) (*model.Region, error)
	// List возвращает все регионы в алфавитном порядке (для фильтра списка).
	List(ctx context.Context) ([]*model.Region, error)
	// Update обновляет название региона.
	Update(ctx context.Context, region *model.Region) error
	// Delete удаляет регион. Возвращает ErrReferenced, если на регион
	// ссылаются организации.
	Delete(ctx context.Context, id int64) error
	// CountOrganizations возвращает число организаций, ссылающихся на регион.
	CountOrganizations(ctx context.Context, id int64) (int64, error)
}

// regionRepo — реализация RegionRepository.
type regionRepo struct {
	db DBTX
}

// NewRegionRepository создаёт репозиторий регионов.
func NewRegionRepository(db DBTX) RegionRepository {
	return &regionRepo{db: db}
}

func (r *regionRepo) Create(ctx context.Context, region *model.Region) error {
	query := `
		INSERT INTO regions (name)
		VALUES ($1)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, region.Name).Scan(&region.ID, &region.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: регион с таким названием уже существует", ErrConflict)
		}
		return fmt.Errorf("ошибка создания региона: %w", err)
	}
	return nil
}

func (r *regionRepo) GetByID(ctx context.Context, id int64) (*model.Region, error) {
	region := &model.Region{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM regions WHERE id = $1`, id,
	).Scan(&region.ID, &region.Name, &region.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения региона: %w", err)
	}
	return region, nil
}

func (r *regionRepo) GetByName(ctx context.Context, name string) (*model.Region, error) {
	region := &model.Region{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM regions WHERE name = $1`, name,
	).Scan(&region.ID, &region.Name, &region.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения региона по названию: %w", err)
	}
	return region, nil
}

func (r *regionRepo) List(ctx context.Context) ([]*model.Region, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at FROM regions ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка регионов: %w", err)
	}
	defer rows.Close()

	var result []*model.Region
	for rows.Next() {
		region := &model.Region{}
		if err := rows.Scan(&region.ID, &region.Name, &region.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования региона: %w", err)
		}
		result = append(result, region)
	}
	return result, rows.Err()
}

func (r *regionRepo) Update(ctx context.Context, region *model.Region) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE regions SET name = $2 WHERE id = $1`, region.ID, region.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: регион с таким названием уже существует", ErrConflict)
		}
		return fmt.Errorf("ошибка обновления региона: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *regionRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: на регион ссылаются организации", ErrReferenced)
		}
		return fmt.Errorf("ошибка удаления региона: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *regionRepo) CountOrganizations(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM educational_organizations WHERE region_id = $1`, id,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта организаций региона: %w", err)
	}
	return count, nil
}
