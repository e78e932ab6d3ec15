package ports

const (
	DefaultItemsPerPage = 10
	MaxItemsPerPage     = 100
)

// ListFilter is the caller-facing pagination contract shared by every
// listable resource. Zero values select the defaults.
type ListFilter struct {
	ItemsPerPage int
	Page         int
	Search       string
}

// ListQuery is the normalised form handed to repositories.
type ListQuery struct {
	Search string
	Offset int
	Limit  int
}

// Page is one slice of a listing plus the information needed to page through it.
type Page[T any] struct {
	Data         []T   `json:"data"`
	Total        int64 `json:"total"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
}
