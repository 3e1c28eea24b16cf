package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// FieldErrorResponse campo inválido dentro de un error de validación.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP. Fields y Shortfalls solo se envían en errores de validación y de stock.
type ErrorResponse struct {
	Code       string               `json:"code"`
	Message    string               `json:"message"`
	Fields     []FieldErrorResponse `json:"fields,omitempty"`
	Shortfalls []ShortfallResponse  `json:"shortfalls,omitempty"`
}
