package production

import (
	"github.com/bakeryhq/orderdesk/internal/calendar"
	"github.com/bakeryhq/orderdesk/internal/models"
)

// Summary is the production plan for a day or a week
type Summary struct {
	Range  calendar.Range `json:"range"`
	Orders int            `json:"orders"`
	Totals Totals         `json:"totals"`
	Lines  []Line         `json:"lines"`
}

// Empty reports whether no order fell inside the range
func (s Summary) Empty() bool {
	return s.Orders == 0
}

// ByName keys the totals by product name, falling back to the id for
// products that no longer exist.
func (s Summary) ByName() map[string]float64 {
	out := make(map[string]float64, len(s.Lines))
	for _, l := range s.Lines {
		key := l.ProductName
		if key == "" {
			key = l.ProductID
		}
		out[key] += l.Total
	}
	return out
}

// Daily summarises the orders due on date
func Daily(orders []models.Order, products []models.Product, date string) (Summary, error) {
	if _, err := calendar.Parse(date); err != nil {
		return Summary{}, err
	}
	return summarise(orders, products, calendar.Single(date)), nil
}

// Weekly summarises the Monday-to-Sunday week containing date
func Weekly(orders []models.Order, products []models.Product, date string) (Summary, error) {
	week, err := calendar.WeekRange(date)
	if err != nil {
		return Summary{}, err
	}
	return summarise(orders, products, week), nil
}

func summarise(orders []models.Order, products []models.Product, r calendar.Range) Summary {
	keep := Between(r.Start, r.End)

	count := 0
	for _, o := range orders {
		if keep(o) {
			count++
		}
	}

	totals := Aggregate(orders, keep)
	return Summary{
		Range:  r,
		Orders: count,
		Totals: totals,
		Lines:  Lines(totals, products),
	}
}
