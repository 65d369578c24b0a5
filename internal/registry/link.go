package registry

import (
	"net/url"
	"strconv"
)

// ListRequest — полностью разрешённое состояние списочного запроса.
type ListRequest struct {
	Filters FilterSpec
	Sort    SortSpec
	// Page — запрошенная страница (>= 1, верхняя граница клампится
	// после подсчёта записей).
	Page int
}

// ResolveListRequest разбирает query string в ListRequest.
// Тотальная функция: любой вход даёт валидный запрос —
// некорректные значения деградируют до значений по умолчанию.
func ResolveListRequest(values url.Values, pageSize int) ListRequest {
	return ListRequest{
		Filters: ResolveFilters(values),
		Sort:    ResolveSort(values.Get(ParamSortBy), values.Get(ParamSortOrder)),
		Page:    ResolvePage(values.Get(ParamPage), pageSize).Page,
	}
}

// LinkOverrides — переопределения состояния для построения ссылки.
// Нулевые значения означают "оставить как есть".
type LinkOverrides struct {
	// Page — перейти на указанную страницу (0 — не менять).
	Page int
	// SortField — сменить поле сортировки (пустая строка — не менять).
	// Смена сортировки сбрасывает страницу на 1, если Page не задан.
	SortField string
	// SortDirection — направление для SortField (разбирается вместе с ним).
	SortDirection string
}

// PropagateLink строит параметры ссылки из текущего состояния списка
// с учётом переопределений. Активные фильтры сохраняются при смене
// сортировки и страницы. Параметры в значениях по умолчанию
// (страница 1, сортировка name asc) опускаются — URL канонический.
//
// Идемпотентность: ResolveListRequest(PropagateLink(state, LinkOverrides{}))
// возвращает то же разрешённое состояние.
func PropagateLink(state ListRequest, o LinkOverrides) url.Values {
	sort := state.Sort
	page := state.Page

	if o.SortField != "" {
		sort = ResolveSort(o.SortField, o.SortDirection)
		page = 1
	}
	if o.Page > 0 {
		page = o.Page
	}

	values := url.Values{}

	if state.Filters.RegionID != nil {
		values.Set(ParamRegion, strconv.FormatInt(*state.Filters.RegionID, 10))
	}
	if state.Filters.SpecialtyGroupID != nil {
		values.Set(ParamSpecialtyGroup, strconv.FormatInt(*state.Filters.SpecialtyGroupID, 10))
	}
	if state.Filters.SpecialtyID != nil {
		values.Set(ParamSpecialty, strconv.FormatInt(*state.Filters.SpecialtyID, 10))
	}

	if !sort.IsDefault() {
		values.Set(ParamSortBy, string(sort.Field))
		values.Set(ParamSortOrder, string(sort.Direction))
	}

	if page > 1 {
		values.Set(ParamPage, strconv.Itoa(page))
	}

	return values
}
