// internal/api/types/response.go
package types

// PaginatedResponse is the envelope for paginated API responses, used by the
// payment-history endpoint. T is the element type of the Data slice.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
}
