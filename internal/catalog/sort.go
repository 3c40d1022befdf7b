package catalog

import (
	"sort"
	"strings"

	"github.com/go-faster/errors"

	"github.com/englelabs/engle-shop/internal/product"
)

// SortKey identifies a sortable product attribute.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByPrice    SortKey = "price"
	SortByStatus   SortKey = "status"
	SortByCategory SortKey = "category"
)

// Direction is a sort direction for a single key.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// SortSpec pairs a key with a direction. A multi-key sort applies specs in
// order: later keys break ties left by earlier ones.
type SortSpec struct {
	Key SortKey
	Dir Direction
}

// ErrUnknownSortKey is returned by ParseSort for an unrecognized key.
var ErrUnknownSortKey = errors.New("unknown sort key")

// ParseSort parses a comma-separated sort expression such as
// "price:desc,name" into sort specs. A missing direction means ascending.
// An empty expression parses to nil, the neutral unsorted state.
func ParseSort(expr string) ([]SortSpec, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	var specs []SortSpec
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, dir := part, Ascending
		if k, d, ok := strings.Cut(part, ":"); ok {
			key = k
			switch strings.ToLower(strings.TrimSpace(d)) {
			case "asc", "":
				dir = Ascending
			case "desc":
				dir = Descending
			default:
				return nil, errors.Errorf("invalid sort direction %q", d)
			}
		}

		switch k := SortKey(strings.ToLower(strings.TrimSpace(key))); k {
		case SortByName, SortByPrice, SortByStatus, SortByCategory:
			specs = append(specs, SortSpec{Key: k, Dir: dir})
		default:
			return nil, errors.Wrapf(ErrUnknownSortKey, "%q", key)
		}
	}
	return specs, nil
}

// Sort returns a sorted copy of products. With no specs (the unsorted
// state) the copy keeps insertion order. The sort is stable, so products
// equal under every spec also keep insertion order.
func Sort(products []product.Product, specs []SortSpec) []product.Product {
	out := make([]product.Product, len(products))
	copy(out, products)
	if len(specs) == 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, spec := range specs {
			c := compare(out[i], out[j], spec.Key)
			if c == 0 {
				continue
			}
			if spec.Dir == Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out
}

// compare orders two products by a single key, returning -1, 0, or 1.
func compare(a, b product.Product, key SortKey) int {
	switch key {
	case SortByPrice:
		return a.Price.Cmp(b.Price)
	case SortByStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	case SortByCategory:
		return strings.Compare(a.Category, b.Category)
	default:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}
