package registry

import (
	"net/url"
	"testing"
)

func TestResolveListRequest_FullInput(t *testing.T) {
	values := url.Values{
		"region":     {"5"},
		"sort_by":    {"inn"},
		"sort_order": {"desc"},
		"page":       {"2"},
	}

	req := ResolveListRequest(values, 10)

	if req.Filters.RegionID == nil || *req.Filters.RegionID != 5 {
		t.Errorf("RegionID = %v, ожидается 5", req.Filters.RegionID)
	}
	if req.Sort.Field != SortByINN || req.Sort.Direction != SortDesc {
		t.Errorf("Sort = %+v, ожидается inn desc", req.Sort)
	}
	if req.Page != 2 {
		t.Errorf("Page = %d, ожидается 2", req.Page)
	}
}

func TestResolveListRequest_GarbageInput(t *testing.T) {
	values := url.Values{
		"region":     {"banana"},
		"sort_by":    {"banana"},
		"sort_order": {"banana"},
		"page":       {"banana"},
	}

	req := ResolveListRequest(values, 20)

	if !req.Filters.IsEmpty() {
		t.Errorf("Filters = %+v, ожидаются пустые фильтры", req.Filters)
	}
	if !req.Sort.IsDefault() {
		t.Errorf("Sort = %+v, ожидается name asc", req.Sort)
	}
	if req.Page != 1 {
		t.Errorf("Page = %d, ожидается 1", req.Page)
	}
}

// TestPropagateLink_PreservesFiltersOnPageChange — фильтры и сортировка
// сохраняются при переходе на другую страницу.
func TestPropagateLink_PreservesFiltersOnPageChange(t *testing.T) {
	regionID := int64(5)
	state := ListRequest{
		Filters: FilterSpec{RegionID: &regionID},
		Sort:    ResolveSort("inn", "desc"),
		Page:    1,
	}

	values := PropagateLink(state, LinkOverrides{Page: 3})

	if got := values.Get("region"); got != "5" {
		t.Errorf("region = %q, ожидается \"5\"", got)
	}
	if got := values.Get("sort_by"); got != "inn" {
		t.Errorf("sort_by = %q, ожидается \"inn\"", got)
	}
	if got := values.Get("sort_order"); got != "desc" {
		t.Errorf("sort_order = %q, ожидается \"desc\"", got)
	}
	if got := values.Get("page"); got != "3" {
		t.Errorf("page = %q, ожидается \"3\"", got)
	}
}

// TestPropagateLink_SortChangeResetsPage — смена сортировки сохраняет
// фильтры и сбрасывает страницу на первую.
func TestPropagateLink_SortChangeResetsPage(t *testing.T) {
	groupID := int64(12)
	state := ListRequest{
		Filters: FilterSpec{SpecialtyGroupID: &groupID},
		Sort:    DefaultSort(),
		Page:    4,
	}

	values := PropagateLink(state, LinkOverrides{SortField: "region", SortDirection: "desc"})

	if got := values.Get("specialty_group"); got != "12" {
		t.Errorf("specialty_group = %q, ожидается \"12\"", got)
	}
	if got := values.Get("sort_by"); got != "region" {
		t.Errorf("sort_by = %q, ожидается \"region\"", got)
	}
	if values.Has("page") {
		t.Errorf("page = %q, параметр должен отсутствовать после сброса", values.Get("page"))
	}
}

// TestPropagateLink_OmitsDefaults — значения по умолчанию не попадают в URL.
func TestPropagateLink_OmitsDefaults(t *testing.T) {
	state := ListRequest{Sort: DefaultSort(), Page: 1}

	values := PropagateLink(state, LinkOverrides{})

	if len(values) != 0 {
		t.Errorf("values = %v, ожидается пустой набор параметров", values)
	}
}

// TestPropagateLink_RoundTrip — пропагация состояния через ссылку
// и повторный разбор дают то же разрешённое состояние.
func TestPropagateLink_RoundTrip(t *testing.T) {
	regionID := int64(7)
	specialtyID := int64(340)
	states := []ListRequest{
		{Sort: DefaultSort(), Page: 1},
		{Filters: FilterSpec{RegionID: &regionID}, Sort: ResolveSort("ogrn", "desc"), Page: 5},
		{Filters: FilterSpec{SpecialtyID: &specialtyID}, Sort: ResolveSort("region", "asc"), Page: 2},
	}

	for _, state := range states {
		values := PropagateLink(state, LinkOverrides{})
		got := ResolveListRequest(values, 20)

		if !filtersEqual(got.Filters, state.Filters) {
			t.Errorf("Filters после round-trip = %+v, ожидается %+v", got.Filters, state.Filters)
		}
		if got.Sort.Field != state.Sort.Field || got.Sort.Direction != state.Sort.Direction {
			t.Errorf("Sort после round-trip = %+v, ожидается %+v", got.Sort, state.Sort)
		}
		if got.Page != state.Page {
			t.Errorf("Page после round-trip = %d, ожидается %d", got.Page, state.Page)
		}

		// Повторная пропагация не меняет набор параметров.
		again := PropagateLink(got, LinkOverrides{})
		if again.Encode() != values.Encode() {
			t.Errorf("повторная пропагация = %q, ожидается %q", again.Encode(), values.Encode())
		}
	}
}

func filtersEqual(a, b FilterSpec) bool {
	eq := func(x, y *int64) bool {
		if x == nil || y == nil {
			return x == y
		}
		return *x == *y
	}
	return eq(a.RegionID, b.RegionID) &&
		eq(a.SpecialtyGroupID, b.SpecialtyGroupID) &&
		eq(a.SpecialtyID, b.SpecialtyID)
}
