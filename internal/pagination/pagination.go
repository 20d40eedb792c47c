package pagination

import (
	"math"
	"strconv"

	"gorm.io/gorm"
)

// Fixed page sizes for the admin list views.
const (
	UsersPageSize = 10
	LogsPageSize  = 20
)

// PageRequest holds the requested page and the page size the list uses.
type PageRequest struct {
	Page     int
	PageSize int
}

// FromQuery builds a PageRequest from a raw ?page= value. Anything that is
// not a positive integer falls back to the first page rather than failing.
func FromQuery(raw string, pageSize int) PageRequest {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		page = 1
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// Defaults fills in default values when page or page_size are not provided.
func (p *PageRequest) Defaults(pageSize int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = pageSize
	}
}

// Clamp moves a page past the end back onto the last page, so a stale
// ?page= link still shows results.
func (p *PageRequest) Clamp(totalItems int64) {
	last := totalPages(totalItems, p.PageSize)
	if last > 0 && p.Page > last {
		p.Page = last
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse wraps a paginated list of items with metadata.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_previous"`
}

// NewPageResponse creates a PageResponse from the given data and total count.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	pages := totalPages(totalItems, pageSize)
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}

func totalPages(totalItems int64, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(pageSize)))
}
