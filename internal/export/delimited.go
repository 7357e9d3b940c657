// Package export turns orders and production summaries into downloadable
// sheets: delimited text for the CSV buttons and workbooks for spreadsheets.
package export

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Delimiter separates fields within a row
const Delimiter = ","

const ContentTypeCSV = "text/csv; charset=utf-8"

var ErrNothingToExport = errors.New("nothing to export")

// Artifact is a named downloadable file
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ToDelimitedRows joins fields with Delimiter and rows with newlines.
// Fields are written as-is: embedded delimiters and newlines are not escaped.
func ToDelimitedRows(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, Delimiter))
	for _, row := range rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, Delimiter))
	}
	return b.String()
}

// CSV renders the sheet as delimited text
func CSV(s Sheet) Artifact {
	return Artifact{
		Filename:    s.Basename + ".csv",
		ContentType: ContentTypeCSV,
		Body:        []byte(ToDelimitedRows(s.Header, s.Rows)),
	}
}

// FormatQuantity renders q in its shortest round-tripping form. Magnitudes
// of 1e21 and above or below 1e-6 use exponent notation ("1e+21", "1.5e-7").
func FormatQuantity(q float64) string {
	abs := math.Abs(q)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) || math.IsInf(q, 0) || math.IsNaN(q) {
		return strconv.FormatFloat(q, 'f', -1, 64)
	}

	// Go pads the exponent to two digits; drop the padding.
	s := strconv.FormatFloat(q, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
