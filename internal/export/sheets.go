package export

import (
	"fmt"
	"strings"

	"github.com/bakeryhq/orderdesk/internal/models"
	"github.com/bakeryhq/orderdesk/internal/production"
)

// Sheet is a titled table plus the file name it downloads under (without extension)
type Sheet struct {
	Title    string
	Basename string
	Header   []string
	Rows     [][]string

	// QuantityColumn is written as a number in workbooks
	QuantityColumn int
}

// OrderSheet lists the lines of a single order
func OrderSheet(order models.Order, clientName string, products []models.Product) Sheet {
	rows := make([][]string, 0, len(order.Items))
	for _, it := range order.Items {
		var name, unit string
		if p := models.FindProduct(products, it.ProductID); p != nil {
			name, unit = p.Name, string(p.Unit)
		}
		rows = append(rows, []string{name, FormatQuantity(it.Quantity), unit})
	}

	return Sheet{
		Title:          "Pedido",
		Basename:       fmt.Sprintf("pedido_%s_%s", fileSafe(clientName), order.Date),
		Header:         []string{"Producto", "Cantidad", "Unidad"},
		Rows:           rows,
		QuantityColumn: 1,
	}
}

// DailySheet lists a day's production totals
func DailySheet(s production.Summary) (Sheet, error) {
	if s.Empty() || len(s.Lines) == 0 {
		return Sheet{}, fmt.Errorf("daily production for %s: %w", s.Range.Start, ErrNothingToExport)
	}

	rows := make([][]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		rows = append(rows, []string{l.ProductName, FormatQuantity(l.Total), string(l.Unit), s.Range.Start})
	}

	return Sheet{
		Title:          "Produccion diaria",
		Basename:       "produccion_diaria_" + s.Range.Start,
		Header:         []string{"Producto", "Total", "Unidad", "Fecha"},
		Rows:           rows,
		QuantityColumn: 1,
	}, nil
}

// WeeklySheet lists a week's production totals
func WeeklySheet(s production.Summary) (Sheet, error) {
	if s.Empty() {
		return Sheet{}, fmt.Errorf("weekly production for %s..%s: %w", s.Range.Start, s.Range.End, ErrNothingToExport)
	}

	rows := make([][]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		rows = append(rows, []string{l.ProductName, FormatQuantity(l.Total), string(l.Unit), s.Range.Start, s.Range.End})
	}

	return Sheet{
		Title:          "Produccion semanal",
		Basename:       fmt.Sprintf("produccion_semanal_%s_%s", s.Range.Start, s.Range.End),
		Header:         []string{"Producto", "Total Semanal", "Unidad", "Desde", "Hasta"},
		Rows:           rows,
		QuantityColumn: 1,
	}, nil
}

// fileSafe replaces characters that would split a file name into path
// segments or are rejected by common filesystems.
func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, name)
}
