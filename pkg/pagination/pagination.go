package pagination

import (
	"math"
)

// Pagination represents pagination parameters
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams represents input parameters for pagination
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns default pagination values
func DefaultPagination() *PaginationParams {
	return &PaginationParams{
		Page:    1,
		PerPage: 15,
	}
}

// Validate ensures pagination parameters are within valid ranges
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 15
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Offset is the index of the first item on the page
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult represents a paginated result with items and pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: pagination,
	}
}

// Paginate slices an in-memory list according to params.
// A page past the end yields an empty item list.
func Paginate[T any](all []T, params PaginationParams) *PaginatedResult[T] {
	params.Validate()

	start := params.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + params.PerPage
	if end > len(all) {
		end = len(all)
	}

	items := make([]T, end-start)
	copy(items, all[start:end])

	return NewPaginatedResult(items, NewPagination(params.Page, params.PerPage, int64(len(all))))
}
