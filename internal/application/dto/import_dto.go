package dto

// ImportRowError fallo de una fila concreta del archivo.
type ImportRowError struct {
	Row      int    `json:"row"`
	DocEntry int64  `json:"docEntry,omitempty"`
	Message  string `json:"message"`
}

// ImportResult resumen de una importación masiva de facturas.
type ImportResult struct {
	TotalRows        int              `json:"totalRows"`
	ImportedInvoices int              `json:"importedInvoices"`
	ImportedLines    int              `json:"importedLines"`
	SkippedInvoices  int              `json:"skippedInvoices"` // DocEntry ya existente
	FailedRows       int              `json:"failedRows"`
	Errors           []ImportRowError `json:"errors"`
}

// Fail registra una fila fallida.
func (r *ImportResult) Fail(row int, docEntry int64, msg string) {
	r.FailedRows++
	r.Errors = append(r.Errors, ImportRowError{Row: row, DocEntry: docEntry, Message: msg})
}
