package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	pkgerrors "github.com/ksemenov/catalog-backend/pkg/errors"
	"github.com/ksemenov/catalog-backend/pkg/pagination"
)

// SortField and SortOrder are the validated halves of a sort token such as
// "price_desc".
type (
	SortField string
	SortOrder string
)

const (
	SortFieldID    SortField = "id"
	SortFieldPrice SortField = "price"
	SortFieldName  SortField = "name"

	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DefaultSort is applied when the query string carries no sort parameter.
const DefaultSort = "id_asc"

var allowedSorts = map[string]struct{}{
	"id_asc":     {},
	"price_asc":  {},
	"price_desc": {},
	"name_asc":   {},
	"name_desc":  {},
}

var allowedFilterFields = map[string]struct{}{
	"price":       {},
	"picture":     {},
	"sale":        {},
	"description": {},
}

// ListParams is the validated, normalized form of the list query string.
// PriceToken holds at most one raw "price_..." token; FilterTokens hold the
// remaining validated tokens in request order.
type ListParams struct {
	Page         int
	Limit        int
	SortField    SortField
	SortOrder    SortOrder
	PriceToken   string
	FilterTokens []string
}

// ParseListParams validates the raw query values for GET /products. It is a
// pure function; invalid input yields a VALIDATION_ERROR naming the offending
// parameter.
func ParseListParams(values url.Values) (ListParams, error) {
	page, err := parsePositiveInt(values.Get("page"), "page", pagination.DefaultPage)
	if err != nil {
		return ListParams{}, err
	}

	limit, err := parsePositiveInt(values.Get("limit"), "limit", pagination.DefaultLimit)
	if err != nil {
		return ListParams{}, err
	}
	limit = pagination.NormalizeLimit(limit)

	sort := values.Get("sort")
	if sort == "" {
		sort = DefaultSort
	}
	if _, ok := allowedSorts[sort]; !ok {
		return ListParams{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported sort %q", sort))
	}
	field, order, _ := strings.Cut(sort, "_")

	params := ListParams{
		Page:      page,
		Limit:     limit,
		SortField: SortField(field),
		SortOrder: SortOrder(order),
	}

	for _, token := range values["filter"] {
		prefix, _, _ := strings.Cut(token, "_")
		if _, ok := allowedFilterFields[prefix]; !ok {
			return ListParams{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported filter field %q", prefix))
		}
		if prefix == "price" {
			// only the first price token counts, the rest are dropped
			if params.PriceToken == "" {
				params.PriceToken = token
			}
			continue
		}
		params.FilterTokens = append(params.FilterTokens, token)
	}

	return params, nil
}

func parsePositiveInt(raw, name string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be a positive integer", name))
	}
	return n, nil
}
