package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 1000
)

// PageRequest is a zero-based page index plus a page size.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Offset() int { return p.Page * p.Size }

func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return Validation("Page index must not be negative")
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return Validation("Page size must be between 1 and 1000")
	}
	return nil
}

type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Number: req.Page, Size: req.Size, TotalElements: total}
}

// TotalPages is ceil(TotalElements / Size).
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page[T]) HasNext() bool     { return p.Number+1 < p.TotalPages() }
func (p Page[T]) HasPrevious() bool { return p.Number > 0 }
