package dto

// Pagination carries the page/limit/offset query shared by list endpoints.
type Pagination struct {
	Page   int  `form:"page"`
	Limit  int  `form:"limit"`
	Offset *int `form:"offset"`
}

// Normalize applies defaults and returns the effective offset.
// An explicit offset wins over page.
func (p *Pagination) Normalize(defaultLimit int) int {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Offset != nil && *p.Offset >= 0 {
		return *p.Offset
	}
	return (p.Page - 1) * p.Limit
}

type PaginatedResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
