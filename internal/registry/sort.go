package registry

import "strings"

// Имена параметров сортировки в query string.
const (
	ParamSortBy    = "sort_by"
	ParamSortOrder = "sort_order"
)

// SortField — поле сортировки из белого списка.
type SortField string

// Допустимые поля сортировки.
const (
	// SortByName — полное наименование организации (по умолчанию).
	SortByName SortField = "name"
	// SortByOGRN — ОГРН.
	SortByOGRN SortField = "ogrn"
	// SortByINN — ИНН.
	SortByINN SortField = "inn"
	// SortByRegion — название региона (через LEFT JOIN).
	SortByRegion SortField = "region"
)

// SortDirection — направление сортировки.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec — разрешённая спецификация сортировки.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
	// FieldDefaulted — поле не было запрошено явно (или не прошло белый список).
	FieldDefaulted bool
	// DirectionDefaulted — направление не было запрошено явно.
	DirectionDefaulted bool
}

// DefaultSort возвращает сортировку по умолчанию: name asc.
func DefaultSort() SortSpec {
	return SortSpec{
		Field:              SortByName,
		Direction:          SortAsc,
		FieldDefaulted:     true,
		DirectionDefaulted: true,
	}
}

// IsDefault сообщает, совпадает ли спецификация со значениями по умолчанию.
func (s SortSpec) IsDefault() bool {
	return s.Field == SortByName && s.Direction == SortAsc
}

// ResolveSort разбирает поле и направление сортировки.
// Поле вне белого списка {name, ogrn, inn, region} заменяется на name,
// направление вне {asc, desc} — на asc. Разбор никогда не завершается
// ошибкой: любой мусор на входе даёт валидную спецификацию.
func ResolveSort(field, direction string) SortSpec {
	spec := SortSpec{}

	switch SortField(strings.ToLower(field)) {
	case SortByName:
		spec.Field = SortByName
	case SortByOGRN:
		spec.Field = SortByOGRN
	case SortByINN:
		spec.Field = SortByINN
	case SortByRegion:
		spec.Field = SortByRegion
	default:
		spec.Field = SortByName
		spec.FieldDefaulted = true
	}

	switch strings.ToLower(direction) {
	case string(SortDesc):
		spec.Direction = SortDesc
	case string(SortAsc):
		spec.Direction = SortAsc
	default:
		spec.Direction = SortAsc
		spec.DirectionDefaulted = true
	}

	return spec
}
