// Пакет registry — движок списочного представления реестра:
// разбор фильтров и сортировки из query string, расчёт пагинации,
// построение параметров ссылок. Чистые функции без I/O —
// SQL строится в слое repository на основе этих спецификаций.
package registry

import (
	"net/url"
	"strconv"
)

// Имена распознаваемых параметров фильтрации.
const (
	ParamRegion         = "region"
	ParamSpecialtyGroup = "specialty_group"
	ParamSpecialty      = "specialty"
)

// FilterSpec — разрешённая спецификация фильтров списка организаций.
// nil-поле означает, что фильтр неактивен.
type FilterSpec struct {
	// RegionID — фильтр по региону организации.
	RegionID *int64
	// SpecialtyGroupID — фильтр по укрупнённой группе специальностей
	// (через образовательные программы организации).
	SpecialtyGroupID *int64
	// SpecialtyID — фильтр по специальности (через программы).
	SpecialtyID *int64
}

// HasProgramJoin сообщает, требуется ли запросу JOIN через
// образовательные программы (активен фильтр по УГС или специальности).
func (f FilterSpec) HasProgramJoin() bool {
	return f.SpecialtyGroupID != nil || f.SpecialtyID != nil
}

// IsEmpty сообщает, что ни один фильтр не активен.
func (f FilterSpec) IsEmpty() bool {
	return f.RegionID == nil && f.SpecialtyGroupID == nil && f.SpecialtyID == nil
}

// ResolveFilters разбирает значения фильтров из query string.
// Значение "0", пустое, отсутствующее или нечисловое означает
// "фильтр выключен". Нераспознанные ключи игнорируются.
// Разбор никогда не завершается ошибкой.
func ResolveFilters(values url.Values) FilterSpec {
	return FilterSpec{
		RegionID:         parseFilterID(values.Get(ParamRegion)),
		SpecialtyGroupID: parseFilterID(values.Get(ParamSpecialtyGroup)),
		SpecialtyID:      parseFilterID(values.Get(ParamSpecialty)),
	}
}

// parseFilterID преобразует сырое значение фильтра в ID.
// Возвращает nil для "0", пустых и некорректных значений.
func parseFilterID(raw string) *int64 {
	if raw == "" || raw == "0" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
