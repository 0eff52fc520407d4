package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// TotalPages computes the page count for a result set, never less than zero.
func TotalPages(totalItems int64, pageSize int32) int32 {
	if pageSize <= 0 {
		return 0
	}
	pages := totalItems / int64(pageSize)
	if totalItems%int64(pageSize) != 0 {
		pages++
	}
	return int32(pages)
}
