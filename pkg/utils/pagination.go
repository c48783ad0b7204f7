package utils

import "strconv"

// PaginationParams holds pagination request parameters.
// A zero PageSize disables pagination and returns every matching row.
type PaginationParams struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// GetPaginationParams normalizes page and pageSize
func GetPaginationParams(page, pageSize int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if pageSize < 0 {
		pageSize = 0
	}
	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
	}
}

// ParsePaginationParams parses raw query values. Unparseable values are treated as absent.
func ParsePaginationParams(rawPage, rawPageSize string) PaginationParams {
	page, _ := strconv.Atoi(rawPage)
	pageSize, _ := strconv.Atoi(rawPageSize)
	return GetPaginationParams(page, pageSize)
}

// Enabled reports whether a page window should be applied
func (p PaginationParams) Enabled() bool {
	return p.PageSize > 0
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 || p.PageSize <= 0 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

