package dto

import (
	"fmt"
	"math"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// Límites de paginación.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageRequest paginación y orden para listados (query: page, limit, sortBy, sortOrder).
type PageRequest struct {
	Page      int    `query:"page" validate:"min=1"`
	Limit     int    `query:"limit" validate:"min=1,max=100"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// Desc indica orden descendente.
func (p PageRequest) Desc() bool { return p.SortOrder == "desc" }

// ListOptions traduce la petición a opciones de repositorio. allowed mapea el
// campo público de sortBy a la columna; un campo fuera de la lista es inválido.
func (p PageRequest) ListOptions(allowed map[string]string, fallback string) (repository.ListOptions, error) {
	sortBy := fallback
	if p.SortBy != "" {
		col, ok := allowed[p.SortBy]
		if !ok {
			return repository.ListOptions{}, fmt.Errorf("%w: sortBy %q no permitido", domain.ErrInvalidInput, p.SortBy)
		}
		sortBy = col
	}
	return repository.ListOptions{Page: p.Page, Limit: p.Limit, SortBy: sortBy, SortDesc: p.Desc()}, nil
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPagination calcula los metadatos para total elementos.
func NewPagination(page, limit, total int) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		TotalItems:  total,
		Limit:       limit,
		HasNextPage: page < pages,
		HasPrevPage: page > 1,
	}
}

// APIResponse envoltorio común de todas las respuestas JSON.
type APIResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Code       string      `json:"code,omitempty"` // código estable para el cliente: FORBIDDEN, VALIDATION...
	Pagination *Pagination `json:"pagination,omitempty"`
}

// OK respuesta exitosa con datos.
func OK(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Paged respuesta exitosa con datos y paginación.
func Paged(data interface{}, p *Pagination) APIResponse {
	return APIResponse{Success: true, Data: data, Pagination: p}
}

// Fail respuesta de error. detail va en "error" y puede ir vacío.
func Fail(code, message, detail string) APIResponse {
	return APIResponse{Success: false, Code: code, Message: message, Error: detail}
}
