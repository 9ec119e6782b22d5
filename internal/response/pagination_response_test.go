package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name                    string
		page, pageSize, results int
		total                   int64
		want                    Pagination
	}{
		{"first page", 1, 10, 10, 25, Pagination{Page: 1, PageSize: 10, TotalPages: 3, TotalItems: 25, HasMore: true, From: 1, To: 10}},
		{"last page", 3, 10, 5, 25, Pagination{Page: 3, PageSize: 10, TotalPages: 3, TotalItems: 25, From: 21, To: 25}},
		{"past the end", 4, 10, 0, 25, Pagination{Page: 4, PageSize: 10, TotalPages: 3, TotalItems: 25}},
		{"unpaged", 0, 0, 4, 4, Pagination{Page: 1, PageSize: 4, TotalPages: 1, TotalItems: 4, From: 1, To: 4}},
		{"unpaged empty", 1, 0, 0, 0, Pagination{Page: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *NewPagination(tt.page, tt.pageSize, tt.results, tt.total))
		})
	}
}
