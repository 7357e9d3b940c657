// Package production derives production totals from the order book.
package production

import (
	"cmp"
	"slices"

	"github.com/bakeryhq/orderdesk/internal/calendar"
	"github.com/bakeryhq/orderdesk/internal/models"
)

// Totals maps a product id to the summed quantity ordered
type Totals map[string]float64

// Aggregate sums item quantities per product over the orders accepted by keep.
// It never returns nil.
func Aggregate(orders []models.Order, keep func(models.Order) bool) Totals {
	totals := make(Totals)
	for _, o := range orders {
		if keep != nil && !keep(o) {
			continue
		}
		for _, item := range o.Items {
			totals[item.ProductID] += item.Quantity
		}
	}
	return totals
}

// OnDate keeps orders placed for exactly date
func OnDate(date string) func(models.Order) bool {
	return func(o models.Order) bool {
		return o.Date == date
	}
}

// Between keeps orders whose date lies in [start, end]
func Between(start, end string) func(models.Order) bool {
	r := calendar.Range{Start: start, End: end}
	return func(o models.Order) bool {
		return r.Contains(o.Date)
	}
}

// Line is a resolved total ready for display or export
type Line struct {
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Total       float64     `json:"total"`
	Unit        models.Unit `json:"unit"`
}

// Lines resolves totals against the catalog. Ids with no matching product
// keep an empty name and unit. Lines are sorted by name, then id.
func Lines(totals Totals, products []models.Product) []Line {
	lines := make([]Line, 0, len(totals))
	for id, total := range totals {
		line := Line{ProductID: id, Total: total}
		if p := models.FindProduct(products, id); p != nil {
			line.ProductName = p.Name
			line.Unit = p.Unit
		}
		lines = append(lines, line)
	}

	slices.SortFunc(lines, func(a, b Line) int {
		if c := cmp.Compare(a.ProductName, b.ProductName); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	return lines
}
