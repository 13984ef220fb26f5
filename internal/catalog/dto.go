package catalog

import "github.com/ksemenov/catalog-backend/pkg/db/models"

// CreateProductInput carries the validated fields for a new product. Optional
// fields stay nil when the caller omitted them.
type CreateProductInput struct {
	Name        string
	Description *string
	VendorCode  string
	Picture     *string
	Price       float64
	Sale        *float64
}

// ListResult is the payload of GET /products: one page plus the total matching
// row count and the effective pagination values.
type ListResult struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Products []models.Product `json:"products"`
}
