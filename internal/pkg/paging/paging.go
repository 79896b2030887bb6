// Package paging carries zero-based page requests and the pages returned for them.
package paging

import (
	"fmt"
	"math"

	"freight/internal/pkg/errs"
)

// DefaultSize is the fixed number of rows per page for order browsing.
const DefaultSize = 10

// Request selects one zero-based page of a result set.
type Request struct {
	index int
	size  int
}

// NewRequest builds a request for the given page index with DefaultSize rows.
func NewRequest(index int) (Request, error) {
	return NewSizedRequest(index, DefaultSize)
}

// NewSizedRequest rejects indexes whose end offset, (index+1)*size, does not fit in an int.
func NewSizedRequest(index, size int) (Request, error) {
	if index < 0 {
		return Request{}, errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is negative", index))
	}
	if size <= 0 {
		return Request{}, errs.NewValueIsInvalidErrorWithCause("page size", fmt.Errorf("%d is not greater than 0", size))
	}
	if index > math.MaxInt/size-1 {
		return Request{}, errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is too large", index))
	}
	return Request{index: index, size: size}, nil
}

func (r Request) Index() int {
	return r.index
}

func (r Request) Size() int {
	return r.size
}

// Offset is the number of rows preceding this page.
func (r Request) Offset() int {
	return r.index * r.size
}

// Page is one slice of a larger ordered result set.
type Page[T any] struct {
	Items   []T
	Total   int64
	Request Request
}

func NewPage[T any](items []T, total int64, request Request) Page[T] {
	return Page[T]{
		Items:   items,
		Total:   total,
		Request: request,
	}
}

// IsLast reports whether this page reaches the end of the result set:
// (index+1) * size >= total.
func (p Page[T]) IsLast() bool {
	return int64(p.Request.index+1)*int64(p.Request.size) >= p.Total
}

// Slice cuts the page described by request out of a fully materialized, already ordered list.
func Slice[T any](all []T, request Request) Page[T] {
	total := int64(len(all))
	from := min(request.Offset(), len(all))
	to := min(from+request.size, len(all))

	items := make([]T, to-from)
	copy(items, all[from:to])
	return NewPage(items, total, request)
}
