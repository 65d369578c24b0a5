package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/akosarev/eduregistry/internal/domain/model"
	"github.com/akosarev/eduregistry/internal/registry"
)

// mockOrgRepo — мок репозитория организаций с перехватываемыми методами.
type mockOrgRepo struct {
	countFn func(ctx context.Context, f registry.FilterSpec) (int64, error)
	listFn  func(ctx context.Context, f registry.FilterSpec, s registry.SortSpec, limit, offset int) ([]*model.Organization, error)
}

func (m *mockOrgRepo) Create(ctx context.Context, org *model.Organization) error { return nil }
func (m *mockOrgRepo) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	return nil, nil
}
func (m *mockOrgRepo) GetByOGRN(ctx context.Context, ogrn string) (*model.Organization, error) {
	return nil, nil
}
func (m *mockOrgRepo) Update(ctx context.Context, org *model.Organization) error { return nil }
func (m *mockOrgRepo) Delete(ctx context.Context, id int64) error                { return nil }

func (m *mockOrgRepo) Count(ctx context.Context, f registry.FilterSpec) (int64, error) {
	return m.countFn(ctx, f)
}

func (m *mockOrgRepo) List(ctx context.Context, f registry.FilterSpec, s registry.SortSpec, limit, offset int) ([]*model.Organization, error) {
	return m.listFn(ctx, f, s, limit, offset)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func makeOrgs(n int) []*model.Organization {
	orgs := make([]*model.Organization, n)
	for i := range orgs {
		orgs[i] = &model.Organization{ID: int64(i + 1)}
	}
	return orgs
}

// 23 подходящих организации, размер страницы 10, фильтр по региону,
// сортировка inn desc, страница 2 — выборка со смещением 10, всего 3 страницы.
func TestBuildPage_FilteredSortedSecondPage(t *testing.T) {
	regionID := int64(5)
	var gotFilters registry.FilterSpec
	var gotSort registry.SortSpec
	var gotLimit, gotOffset int

	repo := &mockOrgRepo{
		countFn: func(_ context.Context, f registry.FilterSpec) (int64, error) {
			gotFilters = f
			return 23, nil
		},
		listFn: func(_ context.Context, f registry.FilterSpec, s registry.SortSpec, limit, offset int) ([]*model.Organization, error) {
			gotSort = s
			gotLimit = limit
			gotOffset = offset
			return makeOrgs(10), nil
		},
	}

	svc := NewRegistryService(repo, 10, testLogger())
	req := registry.ListRequest{
		Filters: registry.FilterSpec{RegionID: &regionID},
		Sort:    registry.ResolveSort("inn", "desc"),
		Page:    2,
	}

	page, err := svc.BuildPage(context.Background(), req)
	if err != nil {
		t.Fatalf("BuildPage() ошибка: %v", err)
	}

	if gotFilters.RegionID == nil || *gotFilters.RegionID != 5 {
		t.Errorf("Count получил фильтры %+v, ожидается регион 5", gotFilters)
	}
	if gotSort.Field != registry.SortByINN || gotSort.Direction != registry.SortDesc {
		t.Errorf("List получил сортировку %+v, ожидается inn desc", gotSort)
	}
	if gotLimit != 10 || gotOffset != 10 {
		t.Errorf("List получил limit=%d offset=%d, ожидается 10/10", gotLimit, gotOffset)
	}

	if len(page.Items) != 10 {
		t.Errorf("Items = %d записей, ожидается 10", len(page.Items))
	}
	if page.Pagination.TotalItems != 23 {
		t.Errorf("TotalItems = %d, ожидается 23", page.Pagination.TotalItems)
	}
	if page.Pagination.TotalPages != 3 {
		t.Errorf("TotalPages = %d, ожидается 3", page.Pagination.TotalPages)
	}
	if page.Pagination.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, ожидается 2", page.Pagination.CurrentPage)
	}
	if page.Request.Page != 2 {
		t.Errorf("Request.Page = %d, ожидается 2", page.Request.Page)
	}
}

// Пустой реестр: одна пустая страница, без ошибки.
func TestBuildPage_EmptyRegistry(t *testing.T) {
	repo := &mockOrgRepo{
		countFn: func(_ context.Context, _ registry.FilterSpec) (int64, error) {
			return 0, nil
		},
		listFn: func(_ context.Context, _ registry.FilterSpec, _ registry.SortSpec, _, _ int) ([]*model.Organization, error) {
			return nil, nil
		},
	}

	svc := NewRegistryService(repo, 20, testLogger())
	req := registry.ListRequest{
		Sort: registry.DefaultSort(),
		Page: 1,
	}

	page, err := svc.BuildPage(context.Background(), req)
	if err != nil {
		t.Fatalf("BuildPage() ошибка: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("Items = %d записей, ожидается 0", len(page.Items))
	}
	if page.Pagination.TotalPages != 1 {
		t.Errorf("TotalPages = %d, ожидается 1", page.Pagination.TotalPages)
	}
	if page.Pagination.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, ожидается 1", page.Pagination.CurrentPage)
	}
}

// Страница за пределами диапазона приводится к последней,
// выборка идёт со смещением приведённой страницы.
func TestBuildPage_OutOfRangeClamped(t *testing.T) {
	var gotOffset int
	repo := &mockOrgRepo{
		countFn: func(_ context.Context, _ registry.FilterSpec) (int64, error) {
			return 23, nil
		},
		listFn: func(_ context.Context, _ registry.FilterSpec, _ registry.SortSpec, _, offset int) ([]*model.Organization, error) {
			gotOffset = offset
			return makeOrgs(3), nil
		},
	}

	svc := NewRegistryService(repo, 10, testLogger())
	req := registry.ListRequest{
		Sort: registry.DefaultSort(),
		Page: 99,
	}

	page, err := svc.BuildPage(context.Background(), req)
	if err != nil {
		t.Fatalf("BuildPage() ошибка: %v", err)
	}
	if page.Pagination.CurrentPage != 3 {
		t.Errorf("CurrentPage = %d, ожидается 3 (последняя)", page.Pagination.CurrentPage)
	}
	if gotOffset != 20 {
		t.Errorf("List получил offset=%d, ожидается 20", gotOffset)
	}
	if page.Request.Page != 3 {
		t.Errorf("Request.Page = %d, ожидается приведённый номер 3", page.Request.Page)
	}
}

// Ошибки хранилища поднимаются наверх как есть.
func TestBuildPage_StorageErrors(t *testing.T) {
	dbErr := errors.New("соединение разорвано")

	countFail := &mockOrgRepo{
		countFn: func(_ context.Context, _ registry.FilterSpec) (int64, error) {
			return 0, dbErr
		},
	}
	svc := NewRegistryService(countFail, 10, testLogger())
	req := registry.ListRequest{Sort: registry.DefaultSort(), Page: 1}
	if _, err := svc.BuildPage(context.Background(), req); !errors.Is(err, dbErr) {
		t.Errorf("BuildPage() при ошибке Count = %v, ожидается обёрнутая ошибка БД", err)
	}

	listFail := &mockOrgRepo{
		countFn: func(_ context.Context, _ registry.FilterSpec) (int64, error) { return 5, nil },
		listFn: func(_ context.Context, _ registry.FilterSpec, _ registry.SortSpec, _, _ int) ([]*model.Organization, error) {
			return nil, dbErr
		},
	}
	svc = NewRegistryService(listFail, 10, testLogger())
	if _, err := svc.BuildPage(context.Background(), req); !errors.Is(err, dbErr) {
		t.Errorf("BuildPage() при ошибке List = %v, ожидается обёрнутая ошибка БД", err)
	}
}
