package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/akosarev/eduregistry/internal/domain/model"
	"github.com/akosarev/eduregistry/internal/registry"
)

// Колонки организации, выбираемые списочными и точечными запросами.
// r.name — название региона через LEFT JOIN (организации без региона
// остаются в выборке).
const organizationColumns = `o.id, o.full_name, o.short_name, o.ogrn, o.inn, o.kpp,
		o.address, o.phone, o.email, o.website, o.head_name,
		o.region_id, r.name, o.created_at, o.updated_at`

// OrganizationRepository — CRUD и списочные запросы по таблице
// educational_organizations. List и Count — граница хранения движка
// списочного представления: WHERE строится из FilterSpec, ORDER BY —
// из SortSpec с тай-брейком по id.
type OrganizationRepository interface {
	// Create создаёт организацию и заполняет ID/CreatedAt/UpdatedAt.
	Create(ctx context.Context, org *model.Organization) error
	// GetByID возвращает организацию по ID с названием региона.
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	// GetByOGRN возвращает организацию по ОГРН (используется загрузчиком).
	GetByOGRN(ctx context.Context, ogrn string) (*model.Organization, error)
	// List возвращает страницу организаций по фильтрам и сортировке.
	List(ctx context.Context, f registry.FilterSpec, s registry.SortSpec, limit, offset int) ([]*model.Organization, error)
	// Count возвращает число организаций, удовлетворяющих фильтрам.
	Count(ctx context.Context, f registry.FilterSpec) (int64, error)
	// Update обновляет организацию.
	Update(ctx context.Context, org *model.Organization) error
	// Delete удаляет организацию (программы удаляются каскадно).
	Delete(ctx context.Context, id int64) error
}

// organizationRepo — реализация OrganizationRepository.
type organizationRepo struct {
	db DBTX
}

// NewOrganizationRepository создаёт репозиторий организаций.
func NewOrganizationRepository(db DBTX) OrganizationRepository {
	return &organizationRepo{db: db}
}

func (r *organizationRepo) Create(ctx context.Context, org *model.Organization) error {
	query := `
		INSERT INTO educational_organizations
			(full_name, short_name, ogrn, inn, kpp, address, phone, email, website, head_name, region_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		org.FullName, org.ShortName, org.OGRN, org.INN, org.KPP,
		org.Address, org.Phone, org.Email, org.Website, org.HeadName, org.RegionID,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: организация с таким ОГРН уже существует", ErrConflict)
		}
		return fmt.Errorf("ошибка создания организации: %w", err)
	}
	return nil
}

func (r *organizationRepo) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM educational_organizations o
		LEFT JOIN regions r ON r.id = o.region_id
		WHERE o.id = $1`, organizationColumns)

	org, err := scanOrganization(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения организации: %w", err)
	}
	return org, nil
}

func (r *organizationRepo) GetByOGRN(ctx context.Context, ogrn string) (*model.Organization, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM educational_organizations o
		LEFT JOIN regions r ON r.id = o.region_id
		WHERE o.ogrn = $1`, organizationColumns)

	org, err := scanOrganization(r.db.QueryRow(ctx, query, ogrn))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения организации по ОГРН: %w", err)
	}
	return org, nil
}

func (r *organizationRepo) List(ctx context.Context, f registry.FilterSpec, s registry.SortSpec, limit, offset int) ([]*model.Organization, error) {
	joins, where, args := buildListFilters(f)
	argNum := len(args) + 1

	// DISTINCT нужен при JOIN через программы: организация с несколькими
	// подходящими программами должна появиться в списке один раз.
	distinct := ""
	if f.HasProgramJoin() {
		distinct = "DISTINCT "
	}

	query := fmt.Sprintf(`
		SELECT %s%s
		FROM educational_organizations o
		LEFT JOIN regions r ON r.id = o.region_id
		%s
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		distinct, organizationColumns, joins, where, buildOrderBy(s), argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка организаций: %w", err)
	}
	defer rows.Close()

	var result []*model.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования организации: %w", err)
		}
		result = append(result, org)
	}
	return result, rows.Err()
}

func (r *organizationRepo) Count(ctx context.Context, f registry.FilterSpec) (int64, error) {
	joins, where, args := buildListFilters(f)

	// COUNT(DISTINCT o.id) парный к DISTINCT в List: те же фильтры —
	// то же количество.
	countExpr := "COUNT(*)"
	if f.HasProgramJoin() {
		countExpr = "COUNT(DISTINCT o.id)"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM educational_organizations o
		%s
		%s`, countExpr, joins, where)

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта организаций: %w", err)
	}
	return count, nil
}

func (r *organizationRepo) Update(ctx context.Context, org *model.Organization) error {
	query := `
		UPDATE educational_organizations
		SET full_name = $2, short_name = $3, ogrn = $4, inn = $5, kpp = $6,
			address = $7, phone = $8, email = $9, website = $10, head_name = $11,
			region_id = $12, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		org.ID, org.FullName, org.ShortName, org.OGRN, org.INN, org.KPP,
		org.Address, org.Phone, org.Email, org.Website, org.HeadName, org.RegionID,
	).Scan(&org.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: организация с таким ОГРН уже существует", ErrConflict)
		}
		return fmt.Errorf("ошибка обновления организации: %w", err)
	}
	return nil
}

func (r *organizationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM educational_organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления организации: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// buildListFilters строит JOIN и WHERE для списочных запросов из FilterSpec.
// Значения фильтров передаются только параметрами — пользовательский ввод
// никогда не попадает в текст SQL.
func buildListFilters(f registry.FilterSpec) (joins, where string, args []any) {
	var conditions []string
	argNum := 1

	if f.HasProgramJoin() {
		joins = `JOIN educational_programs p ON p.organization_id = o.id
		JOIN specialties s ON s.id = p.specialty_id`
	}

	if f.RegionID != nil {
		conditions = append(conditions, fmt.Sprintf("o.region_id = $%d", argNum))
		args = append(args, *f.RegionID)
		argNum++
	}
	if f.SpecialtyGroupID != nil {
		conditions = append(conditions, fmt.Sprintf("s.group_id = $%d", argNum))
		args = append(args, *f.SpecialtyGroupID)
		argNum++
	}
	if f.SpecialtyID != nil {
		conditions = append(conditions, fmt.Sprintf("p.specialty_id = $%d", argNum))
		args = append(args, *f.SpecialtyID)
	}

	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return joins, where, args
}

// buildOrderBy строит ORDER BY из SortSpec. Имя колонки берётся только
// из белого списка; вторичный ключ o.id ASC делает порядок детерминированным
// при равных значениях.
func buildOrderBy(s registry.SortSpec) string {
	column := "o.full_name"
	switch s.Field {
	case registry.SortByOGRN:
		column = "o.ogrn"
	case registry.SortByINN:
		column = "o.inn"
	case registry.SortByRegion:
		column = "r.name"
	case registry.SortByName:
		column = "o.full_name"
	}

	direction := "ASC"
	if s.Direction == registry.SortDesc {
		direction = "DESC"
	}

	return fmt.Sprintf("ORDER BY %s %s, o.id ASC", column, direction)
}

// scanOrganization сканирует одну строку выборки organizationColumns.
func scanOrganization(row pgx.Row) (*model.Organization, error) {
	org := &model.Organization{}
	err := row.Scan(
		&org.ID, &org.FullName, &org.ShortName, &org.OGRN, &org.INN, &org.KPP,
		&org.Address, &org.Phone, &org.Email, &org.Website, &org.HeadName,
		&org.RegionID, &org.RegionName, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return org, nil
}
