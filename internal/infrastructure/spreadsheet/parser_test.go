package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Ventas-api/internal/domain"
)

func TestParse_CSVComma(t *testing.T) {
	in := "DocEntry,CardCode,DocDate,DocTotal\n1001,C001,2024-03-01,1190\n"
	rows, err := NewParser().Parse("facturas.csv", strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1001", "C001", "2024-03-01", "1190"}, rows[1])
}

func TestParse_CSVSemicolonWithBOM(t *testing.T) {
	in := "\xef\xbb\xbfDocEntry;CardCode;DocTotal\n1001;C001;2.380,00\n"
	rows, err := NewParser().Parse("facturas.CSV", strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "DocEntry", rows[0][0])
	assert.Equal(t, "2.380,00", rows[1][2])
}

func TestParse_CSVWindows1252(t *testing.T) {
	utf := "CardCode;Description\nC001;Tornillería\n"
	latin, err := charmap.Windows1252.NewEncoder().String(utf)
	require.NoError(t, err)

	rows, err := NewParser().Parse("f.csv", strings.NewReader(latin))
	require.NoError(t, err)
	assert.Equal(t, "Tornillería", rows[1][1])
}

func TestParse_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"DocEntry", "CardCode", "DocTotal"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{1001, "C001", 1190.5}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := NewParser().Parse("facturas.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1001", "C001", "1190.5"}, rows[1])
}

func TestParse_Unsupported(t *testing.T) {
	_, err := NewParser().Parse("facturas.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewParser().Parse("roto.xlsx", strings.NewReader("no es un zip"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
