package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Columnas reconocidas (encabezado normalizado: minúsculas, sin espacios ni guiones bajos).
const (
	colDocEntry    = "docentry"
	colDocNum      = "docnum"
	colCardCode    = "cardcode"
	colDocDate     = "docdate"
	colDocTotal    = "doctotal"
	colVatSum      = "vatsum"
	colPaidToDate  = "paidtodate"
	colLineNum     = "linenum"
	colItemCode    = "itemcode"
	colDescription = "description"
	colQuantity    = "quantity"
	colPrice       = "price"
	colLineTotal   = "linetotal"
)

var requiredColumns = []string{colDocEntry, colCardCode, colDocDate, colDocTotal}

// excelEpoch origen de los números de serie de fecha de Excel (sistema 1900).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"20060102",
}

// header índice de cada columna reconocida.
type header map[string]int

func parseHeader(row []string) (header, error) {
	h := make(header, len(row))
	for i, cell := range row {
		key := normalizeColumn(cell)
		if key == "" {
			continue
		}
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("faltan columnas obligatorias: %s", strings.Join(missing, ", "))
	}
	return h, nil
}

func normalizeColumn(s string) string {
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

func (h header) cell(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("vacío")
	}
	// Excel entrega enteros como "1001" o "1001.0"
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return int64(f), nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseDecimal acepta "1234.5", "1,234.50", "1.234,50" y "1234,50".
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return decimal.Zero, nil
	}
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		// 2.380,00
		s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

// parseDate acepta los formatos de texto habituales y números de serie de Excel.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("vacía")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		days := int(serial)
		return excelEpoch.AddDate(0, 0, days), nil
	}
	return time.Time{}, fmt.Errorf("formato no reconocido %q", s)
}
