package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/akosarev/eduregistry/internal/domain/model"
)

// SpecialtyRepository — справочники УГС и специальностей.
// Списки идут в выпадающие фильтры реестра; get-or-create
// используется загрузчиком данных.
type SpecialtyRepository interface {
	// ListGroups возвращает все укрупнённые группы по коду.
	ListGroups(ctx context.Context) ([]*model.SpecialtyGroup, error)
	// ListSpecialties возвращает специальности; groupID != nil ограничивает группой.
	ListSpecialties(ctx context.Context, groupID *int64) ([]*model.Specialty, error)
	// GetOrCreateGroup возвращает группу по коду, создавая при отсутствии.
	GetOrCreateGroup(ctx context.Context, code, name string) (*model.SpecialtyGroup, error)
	// GetOrCreateSpecialty возвращает специальность по коду, создавая при отсутствии.
	GetOrCreateSpecialty(ctx context.Context, code, name string, groupID int64) (*model.Specialty, error)
	// CreateProgram создаёт образовательную программу организации.
	CreateProgram(ctx context.Context, program *model.EducationalProgram) error
}

// specialtyRepo — реализация SpecialtyRepository.
type specialtyRepo struct {
	db DBTX
}

// NewSpecialtyRepository создаёт репозиторий справочников специальностей.
func NewSpecialtyRepository(db DBTX) SpecialtyRepository {
	return &specialtyRepo{db: db}
}

func (r *specialtyRepo) ListGroups(ctx context.Context) ([]*model.SpecialtyGroup, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, code, name FROM specialty_groups ORDER BY code ASC`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка УГС: %w", err)
	}
	defer rows.Close()

	var result []*model.SpecialtyGroup
	for rows.Next() {
		g := &model.SpecialtyGroup{}
		if err := rows.Scan(&g.ID, &g.Code, &g.Name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования УГС: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func (r *specialtyRepo) ListSpecialties(ctx context.Context, groupID *int64) ([]*model.Specialty, error) {
	query := `SELECT id, code, name, group_id FROM specialties`
	var args []any
	if groupID != nil {
		query += ` WHERE group_id = $1`
		args = append(args, *groupID)
	}
	query += ` ORDER BY code ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка специальностей: %w", err)
	}
	defer rows.Close()

	var result []*model.Specialty
	for rows.Next() {
		s := &model.Specialty{}
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.GroupID); err != nil {
			return nil, fmt.Errorf("ошибка сканирования специальности: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *specialtyRepo) GetOrCreateGroup(ctx context.Context, code, name string) (*model.SpecialtyGroup, error) {
	// ON CONFLICT ... DO UPDATE с no-op присваиванием, чтобы RETURNING
	// сработал и для существующей строки.
	query := `
		INSERT INTO specialty_groups (code, name)
		VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
		RETURNING id, code, name`

	g := &model.SpecialtyGroup{}
	if err := r.db.QueryRow(ctx, query, code, name).Scan(&g.ID, &g.Code, &g.Name); err != nil {
		return nil, fmt.Errorf("ошибка get-or-create УГС: %w", err)
	}
	return g, nil
}

func (r *specialtyRepo) GetOrCreateSpecialty(ctx context.Context, code, name string, groupID int64) (*model.Specialty, error) {
	query := `
		INSERT INTO specialties (code, name, group_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
		RETURNING id, code, name, group_id`

	s := &model.Specialty{}
	if err := r.db.QueryRow(ctx, query, code, name, groupID).Scan(&s.ID, &s.Code, &s.Name, &s.GroupID); err != nil {
		return nil, fmt.Errorf("ошибка get-or-create специальности: %w", err)
	}
	return s, nil
}

func (r *specialtyRepo) CreateProgram(ctx context.Context, program *model.EducationalProgram) error {
	query := `
		INSERT INTO educational_programs (organization_id, specialty_id, level)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		program.OrganizationID, program.SpecialtyID, program.Level,
	).Scan(&program.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка создания программы: %w", err)
	}
	return nil
}
