package pagination

// Pagination describes one page of a listing. Out-of-range requests
// are normalized, never rejected: the page size is clamped to [1,100]
// and a page beyond the end simply yields an empty slice alongside the
// true totals.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	Offset      int  `json:"-"`
}

const (
	MinPageSize = 1
	MaxPageSize = 100
)

// New normalizes page/limit against the total item count.
func New(page, limit, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < MinPageSize {
		limit = MinPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	totalPages := (total + limit - 1) / limit

	return Pagination{
		CurrentPage: page,
		PageSize:    limit,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Offset:      (page - 1) * limit,
	}
}
