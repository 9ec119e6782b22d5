package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination describes a page of returned items out of total. A
// non-positive pageSize means everything was returned on one page.
func NewPagination(page, pageSize, returned int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		p := &Pagination{Page: 1, PageSize: returned, TotalItems: total, To: returned}
		if total > 0 {
			p.TotalPages = 1
			p.From = 1
		}
		return p
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	from := (page-1)*pageSize + 1
	to := from + returned - 1
	if returned == 0 {
		from, to = 0, 0
	}
	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
		From:       from,
		To:         to,
	}
}
