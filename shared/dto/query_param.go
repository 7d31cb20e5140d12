package dto

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams controls ordering and pagination of repository listings. SortBy is a
// trusted SQL expression, never user input; SortDir defaults to ASC. Pagination applies
// only when Limit is set, offset only when Page is also set.
type QueryParams struct {
	Page    int
	Limit   int
	SortBy  string
	SortDir string
}
