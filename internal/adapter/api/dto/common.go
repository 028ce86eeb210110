package dto

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse representa uma resposta genérica de sucesso
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse representa uma listagem paginada
type ListResponse struct {
	Items      interface{} `json:"items"`
	TotalCount int         `json:"totalCount"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Pagination representa os parâmetros de paginação
type Pagination struct {
	Page     int
	PageSize int
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewSuccessResponse cria uma nova resposta de sucesso
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// GetPagination retorna uma estrutura de paginação com valores padrão.
// pageSize 0 significa sem paginação.
func GetPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}

	if pageSize < 0 {
		pageSize = 0
	} else if pageSize > 500 {
		pageSize = 500
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// Bounds retorna o intervalo [start, end) da página dentro de total itens
func (p Pagination) Bounds(total int) (int, int) {
	if p.PageSize == 0 {
		return 0, total
	}
	start := (p.Page - 1) * p.PageSize
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return start, end
}

// NewListResponse monta a resposta de uma página já recortada
func NewListResponse(items interface{}, total int, p Pagination) ListResponse {
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = total
	}
	return ListResponse{
		Items:      items,
		TotalCount: total,
		Page:       p.Page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}
}

// calculateTotalPages calcula o número total de páginas com base no total de registros e no tamanho da página
func calculateTotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return totalPages
}
