package catalog

import (
	"context"
	"errors"
	"io"
	"net/url"
	"testing"

	"github.com/ksemenov/catalog-backend/pkg/db/models"
	pkgerrors "github.com/ksemenov/catalog-backend/pkg/errors"
	"github.com/ksemenov/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type fakeRepo struct {
	countTotal int64
	countErr   error
	page       []models.Product
	pageErr    error
	pageSkip   int
	pageLimit  int

	byID    map[int64]*models.Product
	findErr error

	created   *models.Product
	createErr error

	deletedID int64
	deleteErr error
}

func (f *fakeRepo) CountProducts(_ context.Context, _ Predicate) (int64, error) {
	return f.countTotal, f.countErr
}

func (f *fakeRepo) FindProductPage(_ context.Context, _ Predicate, skip, limit int) ([]models.Product, error) {
	f.pageSkip = skip
	f.pageLimit = limit
	return f.page, f.pageErr
}

func (f *fakeRepo) FindByID(_ context.Context, id int64) (*models.Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateProduct(_ context.Context, p *models.Product) (*models.Product, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = 42
	f.created = p
	return p, nil
}

func (f *fakeRepo) UpdatePicture(_ context.Context, _ int64, _ *string) error {
	return nil
}

func (f *fakeRepo) DeleteProduct(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type fakeCleaner struct {
	calls []int64
	err   error
}

func (f *fakeCleaner) RemoveFileIfExists(id int64) error {
	f.calls = append(f.calls, id)
	return f.err
}

func newTestService(repo *fakeRepo, cleaner *fakeCleaner) Service {
	logg := logger.New(logger.Options{ServiceName: "catalog-test", Output: io.Discard})
	return NewService(repo, cleaner, logg)
}

func listParams(t *testing.T, values url.Values) ListParams {
	t.Helper()
	params, err := ParseListParams(values)
	if err != nil {
		t.Fatalf("parsing params: %v", err)
	}
	return params
}

func TestListProducts(t *testing.T) {
	t.Run("returns page with total and skip", func(t *testing.T) {
		repo := &fakeRepo{
			countTotal: 12,
			page:       []models.Product{{ID: 6, Name: "one"}},
		}
		svc := newTestService(repo, &fakeCleaner{})

		result, err := svc.ListProducts(context.Background(), listParams(t, url.Values{"page": {"2"}, "limit": {"5"}}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 12 || result.Page != 2 || result.Limit != 5 {
			t.Fatalf("unexpected result meta: %+v", result)
		}
		if repo.pageSkip != 5 || repo.pageLimit != 5 {
			t.Fatalf("expected skip=5 limit=5, got skip=%d limit=%d", repo.pageSkip, repo.pageLimit)
		}
	})

	t.Run("empty page keeps true total", func(t *testing.T) {
		repo := &fakeRepo{countTotal: 3, page: nil}
		svc := newTestService(repo, &fakeCleaner{})

		result, err := svc.ListProducts(context.Background(), listParams(t, url.Values{"page": {"9"}}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 3 {
			t.Fatalf("expected total 3, got %d", result.Total)
		}
		if result.Products == nil || len(result.Products) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", result.Products)
		}
	})

	t.Run("count failure surfaces internal", func(t *testing.T) {
		repo := &fakeRepo{countErr: errors.New("boom")}
		svc := newTestService(repo, &fakeCleaner{})

		_, err := svc.ListProducts(context.Background(), listParams(t, url.Values{}))
		if err == nil {
			t.Fatalf("expected error")
		}
		if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeInternal {
			t.Fatalf("expected internal code, got %s", code)
		}
	})
}

func TestGetProduct(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*models.Product{7: {ID: 7, Name: "found"}}}
	svc := newTestService(repo, &fakeCleaner{})

	product, err := svc.GetProduct(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "found" {
		t.Fatalf("unexpected product: %+v", product)
	}

	_, err = svc.GetProduct(context.Background(), 8)
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("persists valid input", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeCleaner{})

		sale := 25.0
		created, err := svc.CreateProduct(context.Background(), CreateProductInput{
			Name:       " Widget ",
			VendorCode: "VC-9",
			Price:      19.99,
			Sale:       &sale,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID != 42 {
			t.Fatalf("expected generated id, got %d", created.ID)
		}
		if created.Name != "Widget" {
			t.Fatalf("expected trimmed name, got %q", created.Name)
		}
	})

	t.Run("rejects field rule violations", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeCleaner{})

		badSale := 0.5
		blank := " "
		_, err := svc.CreateProduct(context.Background(), CreateProductInput{
			Name:        "",
			VendorCode:  "VC-9",
			Price:       -1,
			Sale:        &badSale,
			Description: &blank,
		})
		if err == nil {
			t.Fatalf("expected validation error")
		}
		typed := pkgerrors.As(err)
		if typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation code, got %s", typed.Code())
		}
		details, ok := typed.Details().(map[string]string)
		if !ok {
			t.Fatalf("expected details map, got %#v", typed.Details())
		}
		for _, field := range []string{"name", "price", "sale", "description"} {
			if _, present := details[field]; !present {
				t.Fatalf("expected detail for %s, got %v", field, details)
			}
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("removes file then row and returns product", func(t *testing.T) {
		repo := &fakeRepo{byID: map[int64]*models.Product{3: {ID: 3, Name: "gone"}}}
		cleaner := &fakeCleaner{}
		svc := newTestService(repo, cleaner)

		deleted, err := svc.DeleteProduct(context.Background(), 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted.Name != "gone" {
			t.Fatalf("unexpected product: %+v", deleted)
		}
		if len(cleaner.calls) != 1 || cleaner.calls[0] != 3 {
			t.Fatalf("expected cleaner called for id 3, got %v", cleaner.calls)
		}
		if repo.deletedID != 3 {
			t.Fatalf("expected row delete for id 3, got %d", repo.deletedID)
		}
	})

	t.Run("missing product is not found", func(t *testing.T) {
		svc := newTestService(&fakeRepo{byID: map[int64]*models.Product{}}, &fakeCleaner{})

		_, err := svc.DeleteProduct(context.Background(), 3)
		if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("file removal failure keeps the row", func(t *testing.T) {
		repo := &fakeRepo{byID: map[int64]*models.Product{3: {ID: 3}}}
		cleaner := &fakeCleaner{err: errors.New("permission denied")}
		svc := newTestService(repo, cleaner)

		_, err := svc.DeleteProduct(context.Background(), 3)
		if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeStorage {
			t.Fatalf("expected storage code, got %v", err)
		}
		if repo.deletedID != 0 {
			t.Fatalf("expected row untouched, got delete for %d", repo.deletedID)
		}
	})
}
