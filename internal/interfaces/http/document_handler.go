package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

// importField nombre del campo multipart con el archivo.
const importField = "file"

// DocumentHandler facturas y pagos (lectura) e importación masiva de facturas.
type DocumentHandler struct {
	uc       *usecase.DocumentUseCase
	importer *importer.InvoiceImporter
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase, imp *importer.InvoiceImporter) *DocumentHandler {
	return &DocumentHandler{uc: uc, importer: imp}
}

// Invoices godoc
// @Summary      Listar facturas
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Tamaño de página (1-100)"
// @Param        sortBy     query  string  false  "docDate | docNum | cardCode"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Param        cardCode   query  string  false  "Cliente"
// @Param        from       query  string  false  "YYYY-MM-DD"
// @Param        to         query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.APIResponse{data=[]dto.InvoiceResponse}
// @Router       /api/invoices [get]
func (h *DocumentHandler) Invoices(c *fiber.Ctx) error {
	in := dto.DocumentListRequest{PageRequest: defaultPage()}
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	list, page, err := h.uc.Invoices(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.Paged(list, page))
}

// Payments godoc
// @Summary      Listar pagos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Tamaño de página (1-100)"
// @Param        sortBy     query  string  false  "docDate | docNum | cardCode"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Param        cardCode   query  string  false  "Cliente"
// @Param        from       query  string  false  "YYYY-MM-DD"
// @Param        to         query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.APIResponse{data=[]dto.PaymentResponse}
// @Router       /api/payments [get]
func (h *DocumentHandler) Payments(c *fiber.Ctx) error {
	in := dto.DocumentListRequest{PageRequest: defaultPage()}
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	list, page, err := h.uc.Payments(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.Paged(list, page))
}

// ImportInvoices godoc
// @Summary      Importar facturas desde xlsx/csv
// @Description  Una fila por línea de factura, agrupadas por DocEntry. Los DocEntry existentes se omiten.
// @Description  Las filas inválidas se reportan y no detienen la importación.
// @Tags         documents
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .xlsx o .csv"
// @Success      200  {object}  dto.APIResponse{data=dto.ImportResult}
// @Failure      400  {object}  dto.APIResponse
// @Failure      403  {object}  dto.APIResponse
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/invoices/import [post]
func (h *DocumentHandler) ImportInvoices(c *fiber.Ctx) error {
	fh, err := c.FormFile(importField)
	if err != nil {
		return fmt.Errorf("%w: falta el archivo %q", domain.ErrInvalidInput, importField)
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer f.Close()

	result, err := h.importer.Import(c.UserContext(), actorFrom(c), fh.Filename, f)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(result))
}
