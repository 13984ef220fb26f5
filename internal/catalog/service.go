package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/ksemenov/catalog-backend/pkg/db/models"
	pkgerrors "github.com/ksemenov/catalog-backend/pkg/errors"
	"github.com/ksemenov/catalog-backend/pkg/logger"
	"github.com/ksemenov/catalog-backend/pkg/pagination"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service exposes the catalog operations consumed by the HTTP layer.
type Service interface {
	ListProducts(context.Context, ListParams) (*ListResult, error)
	GetProduct(context.Context, int64) (*models.Product, error)
	CreateProduct(context.Context, CreateProductInput) (*models.Product, error)
	DeleteProduct(context.Context, int64) (*models.Product, error)
}

// PictureCleaner removes a product's image file from disk. Absence of the file
// is not an error.
type PictureCleaner interface {
	RemoveFileIfExists(id int64) error
}

type service struct {
	repo    ProductRepository
	cleaner PictureCleaner
	logg    *logger.Logger
}

// NewService wires the catalog service to its repository and picture cleaner.
func NewService(repo ProductRepository, cleaner PictureCleaner, logg *logger.Logger) Service {
	return &service{repo: repo, cleaner: cleaner, logg: logg}
}

// ListProducts compiles the predicate once and runs the count and the page
// fetch concurrently. The total always reflects the full match set, even when
// the requested page is past the end.
func (s *service) ListProducts(ctx context.Context, params ListParams) (*ListResult, error) {
	pred := BuildPredicate(params)
	pg := pagination.Params{Page: params.Page, Limit: params.Limit}.Normalize()

	var (
		total    int64
		products []models.Product
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		total, err = s.repo.CountProducts(groupCtx, pred)
		return err
	})
	group.Go(func() error {
		var err error
		products, err = s.repo.FindProductPage(groupCtx, pred, pg.Skip(), pg.Limit)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	if products == nil {
		products = []models.Product{}
	}

	return &ListResult{
		Total:    total,
		Page:     pg.Page,
		Limit:    pg.Limit,
		Products: products,
	}, nil
}

// GetProduct loads one product by ID.
func (s *service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}

// CreateProduct validates the input field rules and persists the product.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if details := validateCreateInput(input); len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product payload").WithDetails(details)
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		VendorCode:  strings.TrimSpace(input.VendorCode),
		Picture:     input.Picture,
		Price:       input.Price,
		Sale:        input.Sale,
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}

	ctx = s.logg.WithProductID(ctx, created.ID)
	s.logg.Info(ctx, "product created")
	return created, nil
}

// DeleteProduct removes the product and its image file. The file goes first;
// if its removal fails for any reason other than absence the row stays intact.
func (s *service) DeleteProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cleaner.RemoveFileIfExists(id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "removing product image")
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}

	ctx = s.logg.WithProductID(ctx, id)
	s.logg.Info(ctx, "product deleted")
	return product, nil
}

func validateCreateInput(input CreateProductInput) map[string]string {
	details := map[string]string{}

	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "name is required"
	}
	if strings.TrimSpace(input.VendorCode) == "" {
		details["vendorCode"] = "vendorCode is required"
	}
	if input.Price < 0 {
		details["price"] = "price must not be negative"
	}
	if input.Sale != nil && *input.Sale < 1 {
		details["sale"] = "sale must be at least 1"
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) == "" {
		details["description"] = "description must not be blank"
	}
	if input.Picture != nil && strings.TrimSpace(*input.Picture) == "" {
		details["picture"] = "picture must not be blank"
	}

	return details
}
