package registry

import "strconv"

// ParamPage — имя параметра номера страницы в query string.
const ParamPage = "page"

// GapMarker — маркер пропуска в сжатой последовательности страниц.
// Рендерер отображает его как многоточие.
const GapMarker = 0

// Параметры окна сжатой пагинации: сколько страниц показывать
// по краям и вокруг текущей страницы.
const (
	leftEdge     = 2
	leftCurrent  = 2
	rightCurrent = 5
	rightEdge    = 2
)

// PageRequest — запрошенная страница списка.
type PageRequest struct {
	// Page — номер страницы (всегда >= 1).
	Page int
	// PageSize — размер страницы (фиксирован конфигурацией).
	PageSize int
}

// Offset возвращает смещение для SQL OFFSET.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ResolvePage разбирает номер страницы из сырого значения.
// Отсутствующее, нечисловое или меньшее единицы значение даёт страницу 1.
// Верхняя граница проверяется позже, когда известно общее число страниц
// (см. Paginate).
func ResolvePage(raw string, pageSize int) PageRequest {
	page := 1
	if p, err := strconv.Atoi(raw); err == nil && p > 0 {
		page = p
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// Pagination — рассчитанное состояние пагинации для рендеринга.
type Pagination struct {
	// CurrentPage — текущая страница после клампинга в [1, TotalPages].
	CurrentPage int
	// TotalPages — общее число страниц, минимум 1 (пустой реестр — одна страница).
	TotalPages int
	// TotalItems — общее число записей, удовлетворяющих фильтрам.
	TotalItems int64
	// PageSize — размер страницы.
	PageSize int
	// HasPrev/HasNext — есть ли соседние страницы.
	HasPrev bool
	HasNext bool
	// PrevNum/NextNum — номера соседних страниц (0, если соседа нет).
	PrevNum int
	NextNum int
	// Pages — сжатая последовательность номеров страниц с GapMarker
	// на месте пропусков. Без дубликатов и без смежных маркеров.
	Pages []int
}

// Paginate рассчитывает состояние пагинации.
// Страница вне диапазона [1, TotalPages] клампится к ближайшей границе.
func Paginate(page, pageSize int, totalItems int64) Pagination {
	totalPages := 1
	if totalItems > 0 {
		totalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}

	current := ClampPage(page, totalPages)

	p := Pagination{
		CurrentPage: current,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PageSize:    pageSize,
		HasPrev:     current > 1,
		HasNext:     current < totalPages,
		Pages:       pageSequence(current, totalPages),
	}
	if p.HasPrev {
		p.PrevNum = current - 1
	}
	if p.HasNext {
		p.NextNum = current + 1
	}
	return p
}

// ClampPage приводит номер страницы к диапазону [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// pageSequence строит сжатую последовательность страниц: края,
// окно вокруг текущей страницы и GapMarker между ними.
func pageSequence(current, total int) []int {
	seq := make([]int, 0, total)
	last := 0

	for num := 1; num <= total; num++ {
		show := num <= leftEdge ||
			(num >= current-leftCurrent && num < current+rightCurrent) ||
			num > total-rightEdge
		if !show {
			continue
		}
		if last != 0 && num-last > 1 {
			seq = append(seq, GapMarker)
		}
		seq = append(seq, num)
		last = num
	}

	return seq
}
