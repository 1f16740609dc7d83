// Package pagination slices an ordered result sequence into fixed-size pages.
package pagination

import (
	"strconv"

	"github.com/samber/lo"
)

// PageInfo describes the window that Paginate cut out of the full sequence.
// It carries everything a rendering layer needs for pagination controls.
type PageInfo struct {
	Number     int  `json:"number"`
	Size       int  `json:"size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate returns the requested page of items plus its metadata. The caller
// is expected to pass items already sorted. Out-of-range page numbers never
// fail: anything below 1 clamps to the first page, anything past the end
// clamps to the last page. An empty sequence yields page 1 with no items.
func Paginate[T any](items []T, size, requested int) ([]T, PageInfo) {
	if size < 1 {
		size = 1
	}
	totalPages := (len(items) + size - 1) / size
	number := lo.Clamp(requested, 1, lo.Max([]int{totalPages, 1}))
	start := lo.Clamp((number-1)*size, 0, len(items))
	end := lo.Clamp(start+size, 0, len(items))
	return items[start:end], PageInfo{
		Number:     number,
		Size:       size,
		TotalItems: len(items),
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}

// ParsePage parses the "page" query parameter. Non-numeric or non-positive
// values degrade to the first page rather than erroring.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
