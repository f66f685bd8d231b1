package models

import "math"

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
	// MaxPageNumber keeps Number*Size well inside int range.
	MaxPageNumber = math.MaxInt32
)

type SortOrder string

const (
	SortLatest SortOrder = "latest"
	SortOldest SortOrder = "oldest"
)

// ParseSortOrder falls back to SortLatest for anything but "oldest".
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == SortOldest {
		return SortOldest
	}
	return SortLatest
}

// Page is a 1-based page number and a page size.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps out-of-range values to the defaults.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if number > MaxPageNumber {
		number = MaxPageNumber
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) HasMore(total int) bool {
	return total > p.Number*p.Size
}
