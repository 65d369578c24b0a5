// registry.go — модель представления страницы реестра.
package view

import (
	"github.com/akosarev/eduregistry/internal/domain/model"
	"github.com/akosarev/eduregistry/internal/registry"
	"github.com/akosarev/eduregistry/internal/service"
)

// OrganizationRow — строка таблицы реестра.
type OrganizationRow struct {
	ID         int64   `json:"id"`
	FullName   string  `json:"full_name"`
	ShortName  *string `json:"short_name,omitempty"`
	OGRN       string  `json:"ogrn"`
	INN        *string `json:"inn,omitempty"`
	RegionName *string `json:"region,omitempty"`
}

// PageLink — элемент сжатого пейджера.
type PageLink struct {
	// Num — номер страницы (0 для маркера пропуска).
	Num int `json:"num"`
	// Gap — маркер пропуска, рендерится как многоточие без ссылки.
	Gap bool `json:"gap,omitempty"`
	// Current — текущая страница, рендерится без ссылки.
	Current bool `json:"current,omitempty"`
	// URL — ссылка на страницу с сохранением фильтров и сортировки.
	URL string `json:"url,omitempty"`
}

// Pager — блок пагинации для рендеринга.
type Pager struct {
	CurrentPage int        `json:"current_page"`
	TotalPages  int        `json:"total_pages"`
	TotalItems  int64      `json:"total_items"`
	PrevURL     string     `json:"prev_url,omitempty"`
	NextURL     string     `json:"next_url,omitempty"`
	Links       []PageLink `json:"links"`
}

// SortColumn — заголовок сортируемого столбца таблицы.
type SortColumn struct {
	Field string `json:"field"`
	// Active — по этому столбцу идёт текущая сортировка.
	Active bool `json:"active,omitempty"`
	// Direction — текущее направление, если столбец активен.
	Direction string `json:"direction,omitempty"`
	// URL — ссылка переключения: неактивный столбец включается по
	// возрастанию, активный меняет направление. Страница сбрасывается.
	URL string `json:"url"`
}

// FilterOption — вариант выпадающего фильтра.
type FilterOption struct {
	ID       int64  `json:"id"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// RegistryView — модель представления страницы реестра.
type RegistryView struct {
	Items           []OrganizationRow `json:"items"`
	Regions         []FilterOption    `json:"regions"`
	SpecialtyGroups []FilterOption    `json:"specialty_groups"`
	Specialties     []FilterOption    `json:"specialties"`
	Columns         []SortColumn      `json:"columns"`
	Pager           Pager             `json:"pager"`
	// Username — имя вошедшего пользователя (пустое для гостя).
	Username string `json:"username,omitempty"`
}

// linkURL собирает URL страницы реестра из переопределений состояния.
func linkURL(basePath string, state registry.ListRequest, o registry.LinkOverrides) string {
	values := registry.PropagateLink(state, o)
	if len(values) == 0 {
		return basePath
	}
	return basePath + "?" + values.Encode()
}

// BuildRegistryView собирает модель страницы реестра из результата сервиса
// и справочников для фильтров. Все ссылки пейджера и заголовков столбцов
// сохраняют активные фильтры.
func BuildRegistryView(
	basePath string,
	page *service.RegistryPage,
	regions []*model.Region,
	groups []*model.SpecialtyGroup,
	specialties []*model.Specialty,
) *RegistryView {
	v := &RegistryView{
		Items: make([]OrganizationRow, 0, len(page.Items)),
	}

	for _, org := range page.Items {
		v.Items = append(v.Items, OrganizationRow{
			ID:         org.ID,
			FullName:   org.FullName,
			ShortName:  org.ShortName,
			OGRN:       org.OGRN,
			INN:        org.INN,
			RegionName: org.RegionName,
		})
	}

	v.Regions = regionOptions(regions, page.Request.Filters.RegionID)
	v.SpecialtyGroups = groupOptions(groups, page.Request.Filters.SpecialtyGroupID)
	v.Specialties = specialtyOptions(specialties, page.Request.Filters.SpecialtyID)
	v.Columns = sortColumns(basePath, page.Request)
	v.Pager = buildPager(basePath, page.Request, page.Pagination)

	return v
}

func regionOptions(regions []*model.Region, selected *int64) []FilterOption {
	opts := make([]FilterOption, 0, len(regions))
	for _, r := range regions {
		opts = append(opts, FilterOption{
			ID:       r.ID,
			Label:    r.Name,
			Selected: selected != nil && *selected == r.ID,
		})
	}
	return opts
}

func groupOptions(groups []*model.SpecialtyGroup, selected *int64) []FilterOption {
	opts := make([]FilterOption, 0, len(groups))
	for _, g := range groups {
		opts = append(opts, FilterOption{
			ID:       g.ID,
			Label:    g.Code + " " + g.Name,
			Selected: selected != nil && *selected == g.ID,
		})
	}
	return opts
}

func specialtyOptions(specialties []*model.Specialty, selected *int64) []FilterOption {
	opts := make([]FilterOption, 0, len(specialties))
	for _, s := range specialties {
		opts = append(opts, FilterOption{
			ID:       s.ID,
			Label:    s.Code + " " + s.Name,
			Selected: selected != nil && *selected == s.ID,
		})
	}
	return opts
}

// sortColumns строит заголовки сортируемых столбцов таблицы.
func sortColumns(basePath string, state registry.ListRequest) []SortColumn {
	fields := []registry.SortField{
		registry.SortByName,
		registry.SortByOGRN,
		registry.SortByINN,
		registry.SortByRegion,
	}

	cols := make([]SortColumn, 0, len(fields))
	for _, f := range fields {
		col := SortColumn{Field: string(f)}

		// Переключение: активный столбец меняет направление,
		// неактивный включается по возрастанию.
		dir := registry.SortAsc
		if state.Sort.Field == f {
			col.Active = true
			col.Direction = string(state.Sort.Direction)
			if state.Sort.Direction == registry.SortAsc {
				dir = registry.SortDesc
			}
		}

		col.URL = linkURL(basePath, state, registry.LinkOverrides{
			SortField:     string(f),
			SortDirection: string(dir),
		})
		cols = append(cols, col)
	}
	return cols
}

// buildPager строит блок пагинации со ссылками.
func buildPager(basePath string, state registry.ListRequest, pg registry.Pagination) Pager {
	pager := Pager{
		CurrentPage: pg.CurrentPage,
		TotalPages:  pg.TotalPages,
		TotalItems:  pg.TotalItems,
	}

	if pg.HasPrev {
		pager.PrevURL = linkURL(basePath, state, registry.LinkOverrides{Page: pg.PrevNum})
	}
	if pg.HasNext {
		pager.NextURL = linkURL(basePath, state, registry.LinkOverrides{Page: pg.NextNum})
	}

	pager.Links = make([]PageLink, 0, len(pg.Pages))
	for _, num := range pg.Pages {
		switch {
		case num == registry.GapMarker:
			pager.Links = append(pager.Links, PageLink{Gap: true})
		case num == pg.CurrentPage:
			pager.Links = append(pager.Links, PageLink{Num: num, Current: true})
		default:
			pager.Links = append(pager.Links, PageLink{
				Num: num,
				URL: linkURL(basePath, state, registry.LinkOverrides{Page: num}),
			})
		}
	}

	return pager
}
