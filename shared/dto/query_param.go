package dto

import (
	"hotel/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams pages and orders a listing. Zero values mean unpaged and unordered.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// Newest orders by creation time, latest first.
func Newest() QueryParams {
	return QueryParams{SortBy: constant.FieldCreatedAt, SortDir: SortDirDesc}
}

// Offset is the number of rows skipped before the current page.
func (q QueryParams) Offset() int {
	if q.Page <= 0 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}
