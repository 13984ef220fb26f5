package catalog

import (
	"context"

	"github.com/ksemenov/catalog-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	CountProducts(context.Context, Predicate) (int64, error)
	FindProductPage(ctx context.Context, pred Predicate, skip, limit int) ([]models.Product, error)
	FindByID(context.Context, int64) (*models.Product, error)
	CreateProduct(context.Context, *models.Product) (*models.Product, error)
	UpdatePicture(ctx context.Context, id int64, picture *string) error
	DeleteProduct(context.Context, int64) error
}

// Repository implements ProductRepository on GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountProducts returns how many rows match the predicate, ignoring pagination.
func (r *Repository) CountProducts(ctx context.Context, pred Predicate) (int64, error) {
	var total int64
	tx := r.db.WithContext(ctx).Model(&models.Product{})
	if err := pred.Apply(tx).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// FindProductPage loads one ordered page of matching products. A skip past the
// last row yields an empty slice, not an error.
func (r *Repository) FindProductPage(ctx context.Context, pred Predicate, skip, limit int) ([]models.Product, error) {
	var products []models.Product
	tx := r.db.WithContext(ctx).Model(&models.Product{})
	tx = pred.Apply(tx).Order(pred.Order()).Offset(skip).Limit(limit)
	if err := tx.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID loads a single product. Missing rows surface as gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts the product and returns it with the generated ID.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdatePicture sets or clears the picture reference for the product.
func (r *Repository) UpdatePicture(ctx context.Context, id int64, picture *string) error {
	tx := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("picture", picture)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProduct removes the row.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
