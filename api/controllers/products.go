package controllers

import (
	"net/http"
	"strings"

	"github.com/ksemenov/catalog-backend/api/responses"
	"github.com/ksemenov/catalog-backend/api/validators"
	"github.com/ksemenov/catalog-backend/internal/catalog"
	pkgerrors "github.com/ksemenov/catalog-backend/pkg/errors"
	"github.com/ksemenov/catalog-backend/pkg/logger"
)

// ListProducts handles GET /products with pagination, sorting and filters.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		params, err := catalog.ParseListParams(r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetProduct handles GET /products/{id}.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CreateProduct handles POST /products.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// DeleteProduct handles DELETE /products/{id} and returns the removed product.
func DeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.DeleteProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1"`
	VendorCode  string   `json:"vendorCode" validate:"required"`
	Picture     *string  `json:"picture,omitempty" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"required"`
	Sale        *float64 `json:"sale,omitempty" validate:"omitempty,gte=1"`
}

func (r createProductRequest) toInput() catalog.CreateProductInput {
	input := catalog.CreateProductInput{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		VendorCode:  strings.TrimSpace(r.VendorCode),
		Picture:     r.Picture,
		Sale:        r.Sale,
	}
	if r.Price != nil {
		input.Price = *r.Price
	}
	return input
}
