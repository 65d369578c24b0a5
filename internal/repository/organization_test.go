package repository

import (
	"strings"
	"testing"

	"github.com/akosarev/eduregistry/internal/registry"
)

// --- Юнит-тесты построителей SQL (без БД) ---

func TestBuildOrderBy(t *testing.T) {
	cases := []struct {
		name string
		spec registry.SortSpec
		want string
	}{
		{
			"по умолчанию",
			registry.DefaultSort(),
			"ORDER BY o.full_name ASC, o.id ASC",
		},
		{
			"ОГРН по убыванию",
			registry.ResolveSort("ogrn", "desc"),
			"ORDER BY o.ogrn DESC, o.id ASC",
		},
		{
			"ИНН по возрастанию",
			registry.ResolveSort("inn", "asc"),
			"ORDER BY o.inn ASC, o.id ASC",
		},
		{
			"регион по названию",
			registry.ResolveSort("region", "desc"),
			"ORDER BY r.name DESC, o.id ASC",
		},
		{
			"поле вне белого списка",
			registry.ResolveSort("banana", "desc"),
			"ORDER BY o.full_name DESC, o.id ASC",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildOrderBy(tc.spec); got != tc.want {
				t.Errorf("buildOrderBy() = %q, ожидается %q", got, tc.want)
			}
		})
	}
}

func TestBuildOrderBy_AlwaysHasIDTieBreak(t *testing.T) {
	// Вторичный ключ по id делает порядок детерминированным
	// при любой комбинации поля и направления.
	fields := []string{"name", "ogrn", "inn", "region", "garbage"}
	dirs := []string{"asc", "desc", "garbage"}

	for _, f := range fields {
		for _, d := range dirs {
			got := buildOrderBy(registry.ResolveSort(f, d))
			if !strings.HasSuffix(got, ", o.id ASC") {
				t.Errorf("buildOrderBy(%q, %q) = %q: нет тай-брейка по id", f, d, got)
			}
		}
	}
}

func TestBuildListFilters_Empty(t *testing.T) {
	joins, where, args := buildListFilters(registry.FilterSpec{})

	if joins != "" {
		t.Errorf("joins = %q, ожидается пустая строка", joins)
	}
	if where != "" {
		t.Errorf("where = %q, ожидается пустая строка", where)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, ожидается пустой срез", args)
	}
}

func TestBuildListFilters_RegionOnly(t *testing.T) {
	regionID := int64(5)
	joins, where, args := buildListFilters(registry.FilterSpec{RegionID: &regionID})

	if joins != "" {
		t.Errorf("joins = %q: фильтр по региону не требует JOIN через программы", joins)
	}
	if where != "WHERE o.region_id = $1" {
		t.Errorf("where = %q, ожидается фильтр по региону", where)
	}
	if len(args) != 1 || args[0] != int64(5) {
		t.Errorf("args = %v, ожидается [5]", args)
	}
}

func TestBuildListFilters_AllFilters(t *testing.T) {
	regionID := int64(5)
	groupID := int64(12)
	specialtyID := int64(340)
	joins, where, args := buildListFilters(registry.FilterSpec{
		RegionID:         &regionID,
		SpecialtyGroupID: &groupID,
		SpecialtyID:      &specialtyID,
	})

	if !strings.Contains(joins, "educational_programs") || !strings.Contains(joins, "specialties") {
		t.Errorf("joins = %q: нет JOIN через программы и специальности", joins)
	}
	if want := "WHERE o.region_id = $1 AND s.group_id = $2 AND p.specialty_id = $3"; where != want {
		t.Errorf("where = %q, ожидается %q", where, want)
	}
	if len(args) != 3 {
		t.Errorf("args = %v, ожидается 3 аргумента", args)
	}
}

// TestBuildListFilters_PlaceholdersMatchArgs — номера плейсхолдеров
// последовательны при любой комбинации активных фильтров.
func TestBuildListFilters_PlaceholdersMatchArgs(t *testing.T) {
	id := int64(1)
	combos := []registry.FilterSpec{
		{SpecialtyGroupID: &id},
		{SpecialtyID: &id},
		{RegionID: &id, SpecialtyID: &id},
		{SpecialtyGroupID: &id, SpecialtyID: &id},
	}

	for _, f := range combos {
		_, where, args := buildListFilters(f)
		for i := 1; i <= len(args); i++ {
			placeholder := "$" + string(rune('0'+i))
			if !strings.Contains(where, placeholder) {
				t.Errorf("where = %q: нет плейсхолдера %s при %d аргументах", where, placeholder, len(args))
			}
		}
	}
}
