package catalog

import (
	"net/url"
	"testing"
)

func mustParams(t *testing.T, values url.Values) ListParams {
	t.Helper()
	params, err := ParseListParams(values)
	if err != nil {
		t.Fatalf("parsing params: %v", err)
	}
	return params
}

func TestBuildPredicateOrder(t *testing.T) {
	cases := []struct {
		sort string
		want string
	}{
		{sort: "id_asc", want: "id ASC"},
		{sort: "price_asc", want: "price ASC"},
		{sort: "price_desc", want: "price DESC"},
		{sort: "name_asc", want: "name ASC"},
		{sort: "name_desc", want: "name DESC"},
	}

	for _, tc := range cases {
		t.Run(tc.sort, func(t *testing.T) {
			pred := BuildPredicate(mustParams(t, url.Values{"sort": {tc.sort}}))
			if got := pred.Order(); got != tc.want {
				t.Fatalf("expected order %q, got %q", tc.want, got)
			}
		})
	}
}

func TestBuildPredicatePriceRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		pred := BuildPredicate(mustParams(t, url.Values{"filter": {"price_10-99.5"}}))
		if pred.price == nil {
			t.Fatalf("expected price clause")
		}
		if pred.price.min != 10 || pred.price.max != 99.5 {
			t.Fatalf("unexpected bounds: %+v", pred.price)
		}
	})

	malformed := []string{"price_abc", "price_10-", "price_-", "price_10", "price_a-b"}
	for _, token := range malformed {
		t.Run(token, func(t *testing.T) {
			pred := BuildPredicate(mustParams(t, url.Values{"filter": {token}}))
			if pred.price != nil {
				t.Fatalf("expected malformed token %q to drop the price clause", token)
			}
		})
	}
}

func TestBuildPredicateNullChecks(t *testing.T) {
	t.Run("true means not null", func(t *testing.T) {
		pred := BuildPredicate(mustParams(t, url.Values{"filter": {"sale_true", "picture_nope"}}))
		if !pred.nullables["sale"] {
			t.Fatalf("expected sale to require NOT NULL")
		}
		if pred.nullables["picture"] {
			t.Fatalf("expected non-true value to require NULL")
		}
	})

	t.Run("last token wins", func(t *testing.T) {
		pred := BuildPredicate(mustParams(t, url.Values{"filter": {"sale_true", "sale_false"}}))
		if pred.nullables["sale"] {
			t.Fatalf("expected the later sale_false to win")
		}
	})
}
