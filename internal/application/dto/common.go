package dto

// PerPage tamaño de página de los listados de la tienda.
const PerPage = 4

// PageResponse metadatos de página en respuestas (paginación 1-based).
type PageResponse struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// NewPageResponse calcula los metadatos para un total dado.
func NewPageResponse(page, perPage, total int) PageResponse {
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return PageResponse{Page: page, PerPage: perPage, Total: total, Pages: pages}
}

// Offset devuelve el offset SQL para la página.
func (p PageResponse) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ErrorResponse cuerpo de error HTTP. Fields lleva errores por campo en validaciones de formularios.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
