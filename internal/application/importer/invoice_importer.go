package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/workflow"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// LockKey clave del lock distribuido de importación de facturas.
const LockKey = "lock:import:invoices"

// EventInvoicesImported notificación al terminar una importación.
const EventInvoicesImported = "invoices.imported"

// InvoiceImporter importa facturas con sus líneas. Cada fila del archivo es una
// línea; las filas se agrupan por DocEntry y la cabecera sale de la primera fila
// de cada grupo. Los DocEntry ya existentes se omiten.
type InvoiceImporter struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	parser    SheetParser
	locker    Locker
	notifier  workflow.Notifier
	log       *logger.Logger
}

// NewInvoiceImporter construye el importador. notifier y log pueden ser nil.
func NewInvoiceImporter(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	parser SheetParser,
	locker Locker,
	notifier workflow.Notifier,
	log *logger.Logger,
) *InvoiceImporter {
	if notifier == nil {
		notifier = workflow.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &InvoiceImporter{
		invoices:  invoices,
		customers: customers,
		parser:    parser,
		locker:    locker,
		notifier:  notifier,
		log:       log.Component("invoice_importer"),
	}
}

// pending factura en construcción y las filas que la componen.
// broken marca un grupo con alguna fila inválida: se descarta completo.
type pending struct {
	invoice entity.Invoice
	rows    []int
	broken  bool
	cause   int // primera fila con error
}

// Import procesa el archivo. Solo el administrador importa. Los errores por fila
// se acumulan en el resultado; un error de archivo o de persistencia aborta.
func (im *InvoiceImporter) Import(ctx context.Context, actor access.Actor, filename string, r io.Reader) (*dto.ImportResult, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	rows, err := im.parser.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	h, err := parseHeader(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	unlock, err := im.locker.Lock(ctx, LockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	res := &dto.ImportResult{Errors: []dto.ImportRowError{}}
	groups, order := im.group(h, rows[1:], res)

	if err := im.dropUnknownCustomers(ctx, groups, order, res); err != nil {
		return nil, err
	}

	entries := make([]int64, 0, len(groups))
	for _, e := range order {
		if _, ok := groups[e]; ok {
			entries = append(entries, e)
		}
	}
	existing, err := im.invoices.ExistingDocEntries(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("consultar facturas existentes: %w", err)
	}

	batch := make([]entity.Invoice, 0, len(entries))
	for _, e := range entries {
		if existing[e] {
			res.SkippedInvoices++
			continue
		}
		batch = append(batch, groups[e].invoice)
	}
	if len(batch) > 0 {
		if err := im.invoices.CreateBatch(ctx, batch); err != nil {
			return nil, fmt.Errorf("guardar facturas: %w", err)
		}
	}
	for _, inv := range batch {
		res.ImportedInvoices++
		res.ImportedLines += len(inv.Lines)
	}

	im.log.Info().
		Str("file", filename).
		Int("rows", res.TotalRows).
		Int("imported", res.ImportedInvoices).
		Int("skipped", res.SkippedInvoices).
		Int("failed_rows", res.FailedRows).
		Msg("importación de facturas terminada")
	im.notifier.Notify(ctx, workflow.Event{
		Type:       EventInvoicesImported,
		ActorID:    actor.UserID,
		UserID:     actor.UserID,
		Message:    fmt.Sprintf("%d importadas, %d omitidas, %d filas con error", res.ImportedInvoices, res.SkippedInvoices, res.FailedRows),
		OccurredAt: time.Now(),
	})
	return res, nil
}

// group convierte las filas de datos en facturas agrupadas por DocEntry,
// registrando en res las filas inválidas. order conserva el orden de aparición.
// Un grupo con alguna fila inválida se descarta entero y todas sus filas
// quedan como fallidas.
func (im *InvoiceImporter) group(h header, data [][]string, res *dto.ImportResult) (map[int64]*pending, []int64) {
	groups := make(map[int64]*pending)
	var order []int64
	for i, row := range data {
		rowNum := i + 2 // 1-based, la fila 1 es el encabezado
		if isBlank(row) {
			continue
		}
		res.TotalRows++

		docEntry, err := parseInt(h.cell(row, colDocEntry))
		if err != nil || docEntry <= 0 {
			res.Fail(rowNum, 0, "DocEntry inválido")
			continue
		}
		g, seen := groups[docEntry]
		if !seen {
			g = &pending{}
			groups[docEntry] = g
			order = append(order, docEntry)
			inv, err := parseInvoiceHeader(h, row, docEntry)
			if err != nil {
				g.fail(rowNum, docEntry, err.Error(), res)
				continue
			}
			g.invoice = inv
		} else if g.broken {
			res.Fail(rowNum, docEntry, fmt.Sprintf("factura descartada por error en la fila %d", g.cause))
			continue
		} else if code := h.cell(row, colCardCode); code != g.invoice.CardCode {
			g.fail(rowNum, docEntry, fmt.Sprintf("CardCode %q no coincide con %q", code, g.invoice.CardCode), res)
			continue
		}

		line, ok, err := parseLine(h, row, docEntry, len(g.invoice.Lines))
		if err != nil {
			g.fail(rowNum, docEntry, err.Error(), res)
			continue
		}
		if ok {
			g.invoice.Lines = append(g.invoice.Lines, line)
		}
		g.rows = append(g.rows, rowNum)
	}

	for _, e := range order {
		g := groups[e]
		if !g.broken {
			continue
		}
		for _, rowNum := range g.rows {
			res.Fail(rowNum, e, fmt.Sprintf("factura descartada por error en la fila %d", g.cause))
		}
		delete(groups, e)
	}
	return groups, order
}

// fail registra la fila y marca el grupo como descartado.
func (g *pending) fail(rowNum int, docEntry int64, msg string, res *dto.ImportResult) {
	res.Fail(rowNum, docEntry, msg)
	if !g.broken {
		g.broken, g.cause = true, rowNum
	}
}

// dropUnknownCustomers descarta las facturas cuyo CardCode no existe.
func (im *InvoiceImporter) dropUnknownCustomers(ctx context.Context, groups map[int64]*pending, order []int64, res *dto.ImportResult) error {
	known := make(map[string]bool)
	for _, e := range order {
		g, alive := groups[e]
		if !alive {
			continue
		}
		code := g.invoice.CardCode
		ok, cached := known[code]
		if !cached {
			c, err := im.customers.GetByCode(ctx, code)
			if err != nil {
				return fmt.Errorf("validar cliente %s: %w", code, err)
			}
			ok = c != nil
			known[code] = ok
		}
		if ok {
			continue
		}
		for _, rowNum := range g.rows {
			res.Fail(rowNum, e, fmt.Sprintf("cliente %q no existe", code))
		}
		delete(groups, e)
	}
	return nil
}

func parseInvoiceHeader(h header, row []string, docEntry int64) (entity.Invoice, error) {
	inv := entity.Invoice{DocEntry: docEntry, DocNum: docEntry}
	if s := h.cell(row, colDocNum); s != "" {
		n, err := parseInt(s)
		if err != nil {
			return inv, fmt.Errorf("DocNum inválido %q", s)
		}
		inv.DocNum = n
	}
	inv.CardCode = h.cell(row, colCardCode)
	if inv.CardCode == "" {
		return inv, fmt.Errorf("CardCode vacío")
	}
	date, err := parseDate(h.cell(row, colDocDate))
	if err != nil {
		return inv, fmt.Errorf("DocDate: %v", err)
	}
	inv.DocDate = date
	if inv.DocTotal, err = parseDecimal(h.cell(row, colDocTotal)); err != nil || inv.DocTotal.IsNegative() {
		return inv, fmt.Errorf("DocTotal inválido %q", h.cell(row, colDocTotal))
	}
	if inv.VatSum, err = parseDecimal(h.cell(row, colVatSum)); err != nil {
		return inv, fmt.Errorf("VatSum inválido %q", h.cell(row, colVatSum))
	}
	if inv.PaidToDate, err = parseDecimal(h.cell(row, colPaidToDate)); err != nil {
		return inv, fmt.Errorf("PaidToDate inválido %q", h.cell(row, colPaidToDate))
	}
	return inv, nil
}

// parseLine devuelve ok=false cuando la fila solo trae cabecera.
func parseLine(h header, row []string, docEntry int64, index int) (entity.InvoiceLine, bool, error) {
	line := entity.InvoiceLine{
		DocEntry:    docEntry,
		LineNum:     index,
		ItemCode:    h.cell(row, colItemCode),
		Description: h.cell(row, colDescription),
	}
	total := h.cell(row, colLineTotal)
	if line.ItemCode == "" && total == "" {
		return line, false, nil
	}
	if s := h.cell(row, colLineNum); s != "" {
		n, err := parseInt(s)
		if err != nil {
			return line, false, fmt.Errorf("LineNum inválido %q", s)
		}
		line.LineNum = int(n)
	}
	var err error
	if line.Quantity, err = parseDecimal(h.cell(row, colQuantity)); err != nil {
		return line, false, fmt.Errorf("Quantity inválida %q", h.cell(row, colQuantity))
	}
	if line.Price, err = parseDecimal(h.cell(row, colPrice)); err != nil {
		return line, false, fmt.Errorf("Price inválido %q", h.cell(row, colPrice))
	}
	if line.LineTotal, err = parseDecimal(total); err != nil {
		return line, false, fmt.Errorf("LineTotal inválido %q", total)
	}
	if total == "" {
		line.LineTotal = line.Quantity.Mul(line.Price)
	}
	return line, true, nil
}
