package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

var sortColumns = map[SortField]string{
	SortFieldID:    "id",
	SortFieldPrice: "price",
	SortFieldName:  "name",
}

// priceRange is an inclusive bounds pair parsed from a "price_<min>-<max>" token.
type priceRange struct {
	min float64
	max float64
}

// Predicate is a compiled list query: WHERE clauses plus an ORDER BY
// expression, both derived from validated ListParams.
type Predicate struct {
	price     *priceRange
	nullables map[string]bool // column -> must be non-null
	orderExpr string
}

// BuildPredicate compiles validated params into SQL fragments. Malformed price
// bounds drop the price clause entirely rather than failing the request.
func BuildPredicate(params ListParams) Predicate {
	p := Predicate{
		nullables: map[string]bool{},
		orderExpr: orderExpr(params.SortField, params.SortOrder),
	}

	if params.PriceToken != "" {
		if r, ok := parsePriceRange(params.PriceToken); ok {
			p.price = &r
		}
	}

	for _, token := range params.FilterTokens {
		key, value, _ := strings.Cut(token, "_")
		// repeated keys overwrite, the last token wins
		p.nullables[key] = value == "true"
	}

	return p
}

// Apply attaches the predicate's WHERE clauses to the query. Null checks are
// added in sorted column order so the generated SQL is deterministic.
func (p Predicate) Apply(tx *gorm.DB) *gorm.DB {
	if p.price != nil {
		tx = tx.Where("price >= ? AND price <= ?", p.price.min, p.price.max)
	}

	keys := make([]string, 0, len(p.nullables))
	for key := range p.nullables {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if p.nullables[key] {
			tx = tx.Where(key + " IS NOT NULL")
		} else {
			tx = tx.Where(key + " IS NULL")
		}
	}

	return tx
}

// Order returns the ORDER BY expression, e.g. "price DESC".
func (p Predicate) Order() string {
	return p.orderExpr
}

func orderExpr(field SortField, order SortOrder) string {
	column, ok := sortColumns[field]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if order == SortDesc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

func parsePriceRange(token string) (priceRange, bool) {
	raw := strings.TrimPrefix(token, "price_")
	minRaw, maxRaw, found := strings.Cut(raw, "-")
	if !found {
		return priceRange{}, false
	}
	min, err := strconv.ParseFloat(minRaw, 64)
	if err != nil {
		return priceRange{}, false
	}
	max, err := strconv.ParseFloat(maxRaw, 64)
	if err != nil {
		return priceRange{}, false
	}
	return priceRange{min: min, max: max}, true
}
