package service

import (
	"errors"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// normalizeFilter applies the listing defaults and turns page/itemsPerPage
// into an offset. Pages below 1 read the first page.
func normalizeFilter(f ports.ListFilter) (ports.ListQuery, int, int) {
	perPage := f.ItemsPerPage
	if perPage <= 0 {
		perPage = ports.DefaultItemsPerPage
	}
	if perPage > ports.MaxItemsPerPage {
		perPage = ports.MaxItemsPerPage
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	return ports.ListQuery{
		Search: f.Search,
		Offset: (page - 1) * perPage,
		Limit:  perPage,
	}, page, perPage
}

func newPage[T any](items []T, total int64, page, perPage int) *ports.Page[T] {
	if items == nil {
		items = []T{}
	}
	return &ports.Page[T]{
		Data:         items,
		Total:        total,
		CurrentPage:  page,
		ItemsPerPage: perPage,
	}
}

// storeErr passes through the domain errors a repository is allowed to
// report and wraps anything else as a StorageError.
func storeErr(op string, err error, known ...error) error {
	for _, k := range known {
		if errors.Is(err, k) {
			return err
		}
	}
	return domain.NewStorageError(op, err)
}
