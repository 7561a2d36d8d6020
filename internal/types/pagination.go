package types

// Pagination defaults and limits for recipe listings.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
	SortByTitle     = "title"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListRecipesParams are the validated inputs for a list query.
type ListRecipesParams struct {
	Page   int
	Limit  int
	Sort   string
	Order  string
	Source string
}

// Offset computes the row offset for the requested page.
func (p ListRecipesParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PaginationInfo describes the shape of a paginated result set.
type PaginationInfo struct {
	CurrentPage int   `json:"current_page"`
	Limit       int   `json:"limit"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPaginationInfo derives page counts and navigation flags from a total.
func NewPaginationInfo(page, limit int, total int64) PaginationInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PaginationInfo{
		CurrentPage: page,
		Limit:       limit,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
