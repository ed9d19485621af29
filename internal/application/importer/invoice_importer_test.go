package importer

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

type rowsParser [][]string

func (p rowsParser) Parse(string, io.Reader) ([][]string, error) { return p, nil }

type memInvoices struct {
	existing map[int64]bool
	saved    []entity.Invoice
}

func (m *memInvoices) CreateBatch(_ context.Context, invoices []entity.Invoice) error {
	m.saved = append(m.saved, invoices...)
	for _, inv := range invoices {
		m.existing[inv.DocEntry] = true
	}
	return nil
}
func (m *memInvoices) ExistingDocEntries(_ context.Context, entries []int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	for _, e := range entries {
		if m.existing[e] {
			out[e] = true
		}
	}
	return out, nil
}
func (m *memInvoices) ListByCustomers(context.Context, []string, repository.DateRange) ([]entity.Invoice, error) {
	return nil, nil
}
func (m *memInvoices) ListWithLines(context.Context, string, repository.DateRange) ([]entity.Invoice, error) {
	return nil, nil
}
func (m *memInvoices) List(context.Context, repository.DocumentFilter) ([]entity.Invoice, int, error) {
	return nil, 0, nil
}

type memCustomers map[string]bool

func (m memCustomers) Create(context.Context, *entity.Customer) error { return nil }
func (m memCustomers) GetByCode(_ context.Context, code string) (*entity.Customer, error) {
	if !m[code] {
		return nil, nil
	}
	return &entity.Customer{CardCode: code}, nil
}
func (m memCustomers) List(context.Context, repository.CustomerFilter) ([]entity.Customer, int, error) {
	return nil, 0, nil
}
func (m memCustomers) ListByScope(context.Context, repository.Scope) ([]entity.Customer, error) {
	return nil, nil
}
func (m memCustomers) ListByAssignee(context.Context, string) ([]entity.Customer, error) {
	return nil, nil
}

var admin = access.Actor{UserID: "root", Role: entity.RoleAdmin}

var sheet = rowsParser{
	{"DocEntry", "DocNum", "CardCode", "DocDate", "DocTotal", "VatSum", "PaidToDate", "ItemCode", "Quantity", "Price", "LineTotal"},
	{"1001", "5001", "C001", "2024-03-01", "1190", "190", "0", "A-1", "2", "250", "500"},
	{"1001", "5001", "C001", "2024-03-01", "1190", "190", "0", "A-2", "1", "500", ""},
	{"1002", "5002", "C002", "01/03/2024", "2.380,00", "380", "2380", "B-1", "1", "2000", "2000"},
	{"", "", "", "", "", "", "", "", "", "", ""},
	{"abc", "", "C001", "2024-03-01", "10", "", "", "", "", "", ""},
	{"1003", "5003", "C999", "2024-03-02", "100", "", "", "X", "1", "100", "100"},
	{"1004", "5004", "C001", "not-a-date", "100", "", "", "", "", "", ""},
}

func TestImport_GroupsRowsAndReportsFailures(t *testing.T) {
	invoices := &memInvoices{existing: map[int64]bool{}}
	im := NewInvoiceImporter(invoices, memCustomers{"C001": true, "C002": true}, sheet, nil, nil, nil)

	res, err := im.Import(context.Background(), admin, "facturas.xlsx", strings.NewReader(""))

	require.NoError(t, err)
	assert.Equal(t, 6, res.TotalRows)
	assert.Equal(t, 2, res.ImportedInvoices)
	assert.Equal(t, 3, res.ImportedLines)
	assert.Equal(t, 0, res.SkippedInvoices)
	assert.Equal(t, 3, res.FailedRows)

	failedRows := make([]int, 0, len(res.Errors))
	for _, e := range res.Errors {
		failedRows = append(failedRows, e.Row)
	}
	assert.ElementsMatch(t, []int{6, 7, 8}, failedRows)

	require.Len(t, invoices.saved, 2)
	first := invoices.saved[0]
	assert.Equal(t, int64(1001), first.DocEntry)
	assert.Equal(t, "C001", first.CardCode)
	assert.True(t, first.DocTotal.Equal(decimal.NewFromInt(1190)))
	require.Len(t, first.Lines, 2)
	assert.True(t, first.Lines[1].LineTotal.Equal(decimal.NewFromInt(500)), "LineTotal vacío se calcula como cantidad × precio")

	second := invoices.saved[1]
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), second.DocDate)
	assert.True(t, second.DocTotal.Equal(decimal.NewFromInt(2380)))
}

func errorRows(res *dto.ImportResult, docEntry int64) []int {
	var rows []int
	for _, e := range res.Errors {
		if e.DocEntry == docEntry {
			rows = append(rows, e.Row)
		}
	}
	return rows
}

var headerRow = []string{"DocEntry", "DocNum", "CardCode", "DocDate", "DocTotal", "VatSum", "PaidToDate", "ItemCode", "Quantity", "Price", "LineTotal"}

func TestImport_InvalidRowDiscardsWholeInvoice(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		badRows []int
		okEntry int64
		okLines int
	}{
		{
			name: "línea con cantidad inválida",
			rows: [][]string{
				{"2001", "7001", "C001", "2024-05-01", "300", "0", "0", "A-1", "1", "100", "100"},
				{"2001", "7001", "C001", "2024-05-01", "300", "0", "0", "A-2", "x", "200", "200"},
				{"2002", "7002", "C001", "2024-05-02", "50", "0", "0", "B-1", "1", "50", "50"},
			},
			badRows: []int{2, 3},
			okEntry: 2002,
			okLines: 1,
		},
		{
			name: "CardCode distinto dentro del grupo",
			rows: [][]string{
				{"2001", "7001", "C001", "2024-05-01", "300", "0", "0", "A-1", "1", "100", "100"},
				{"2002", "7002", "C001", "2024-05-02", "50", "0", "0", "B-1", "1", "50", "50"},
				{"2001", "7001", "C002", "2024-05-01", "300", "0", "0", "A-2", "1", "200", "200"},
			},
			badRows: []int{2, 4},
			okEntry: 2002,
			okLines: 1,
		},
		{
			name: "cabecera inválida en la primera fila",
			rows: [][]string{
				{"2001", "7001", "C001", "sin-fecha", "300", "0", "0", "A-1", "1", "100", "100"},
				{"2001", "7001", "C001", "2024-05-01", "300", "0", "0", "A-2", "1", "200", "200"},
				{"2002", "7002", "C001", "2024-05-02", "50", "0", "0", "B-1", "1", "50", "50"},
			},
			badRows: []int{2, 3},
			okEntry: 2002,
			okLines: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoices := &memInvoices{existing: map[int64]bool{}}
			parser := append(rowsParser{headerRow}, tt.rows...)
			im := NewInvoiceImporter(invoices, memCustomers{"C001": true, "C002": true}, parser, nil, nil, nil)

			res, err := im.Import(context.Background(), admin, "facturas.xlsx", strings.NewReader(""))
			require.NoError(t, err)

			assert.Equal(t, 3, res.TotalRows)
			assert.Equal(t, 1, res.ImportedInvoices)
			assert.Equal(t, tt.okLines, res.ImportedLines)
			assert.Equal(t, len(tt.badRows), res.FailedRows)
			assert.ElementsMatch(t, tt.badRows, errorRows(res, 2001), "cada fila de la factura descartada se reporta una sola vez")

			require.Len(t, invoices.saved, 1)
			assert.Equal(t, tt.okEntry, invoices.saved[0].DocEntry)

			// la factura descartada no quedó guardada: corregida, entra completa
			fixed := append(rowsParser{headerRow},
				[]string{"2001", "7001", "C001", "2024-05-01", "300", "0", "0", "A-1", "1", "100", "100"},
				[]string{"2001", "7001", "C001", "2024-05-01", "300", "0", "0", "A-2", "1", "200", "200"},
			)
			im = NewInvoiceImporter(invoices, memCustomers{"C001": true}, fixed, nil, nil, nil)
			res, err = im.Import(context.Background(), admin, "facturas.xlsx", strings.NewReader(""))
			require.NoError(t, err)
			assert.Equal(t, 1, res.ImportedInvoices)
			assert.Equal(t, 0, res.SkippedInvoices)
			require.Len(t, invoices.saved, 2)
			assert.Len(t, invoices.saved[1].Lines, 2)
		})
	}
}

func TestImport_UnknownCustomerReportsEachRowOnce(t *testing.T) {
	parser := rowsParser{headerRow,
		{"3001", "8001", "C999", "2024-05-01", "300", "0", "0", "A-1", "1", "100", "100"},
		{"3001", "8001", "C999", "2024-05-01", "300", "0", "0", "A-2", "1", "200", "200"},
	}
	im := NewInvoiceImporter(&memInvoices{existing: map[int64]bool{}}, memCustomers{}, parser, nil, nil, nil)

	res, err := im.Import(context.Background(), admin, "facturas.xlsx", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, res.ImportedInvoices)
	assert.Equal(t, 2, res.FailedRows)
	assert.ElementsMatch(t, []int{2, 3}, errorRows(res, 3001))
}

func TestImport_ReimportSkipsExistingDocEntries(t *testing.T) {
	invoices := &memInvoices{existing: map[int64]bool{}}
	im := NewInvoiceImporter(invoices, memCustomers{"C001": true, "C002": true}, sheet, nil, nil, nil)
	ctx := context.Background()

	_, err := im.Import(ctx, admin, "facturas.xlsx", strings.NewReader(""))
	require.NoError(t, err)

	res, err := im.Import(ctx, admin, "facturas.xlsx", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, res.ImportedInvoices)
	assert.Equal(t, 2, res.SkippedInvoices)
	assert.Len(t, invoices.saved, 2)
}

func TestImport_RequiresAdminAndHeader(t *testing.T) {
	invoices := &memInvoices{existing: map[int64]bool{}}
	ctx := context.Background()

	im := NewInvoiceImporter(invoices, memCustomers{}, sheet, nil, nil, nil)
	_, err := im.Import(ctx, access.Actor{UserID: "m1", Role: entity.RoleManager}, "f.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	im = NewInvoiceImporter(invoices, memCustomers{}, rowsParser{{"Fecha", "Total"}}, nil, nil, nil)
	_, err = im.Import(ctx, admin, "f.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_ConcurrentImportIsRejected(t *testing.T) {
	locker := NewLocalLocker()
	unlock, err := locker.Lock(context.Background(), LockKey)
	require.NoError(t, err)

	im := NewInvoiceImporter(&memInvoices{existing: map[int64]bool{}}, memCustomers{}, sheet, locker, nil, nil)
	_, err = im.Import(context.Background(), admin, "f.xlsx", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrImportInProgress)

	unlock()
	_, err = locker.Lock(context.Background(), LockKey)
	assert.NoError(t, err)
}

func TestParseHelpers(t *testing.T) {
	d, err := parseDecimal("1,234.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1234.5")))

	d, err = parseDecimal("99,9")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("99.9")))

	date, err := parseDate("45352")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), date)

	n, err := parseInt("1001.0")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), n)
}
