package schemas

import "tracker/src/utils"

// PageParams are the 1-based pagination parameters accepted by list
// endpoints. They translate to skip/limit before reaching a repository.
type PageParams struct {
	Page     int
	PageSize int
}

func NewPageParams(page, pageSize int) (PageParams, error) {
	if page <= 0 {
		return PageParams{}, utils.UnprocessableEntity("page must be greater than zero")
	}
	if pageSize <= 0 {
		return PageParams{}, utils.UnprocessableEntity("page_size must be greater than zero")
	}
	return PageParams{Page: page, PageSize: pageSize}, nil
}

func (p PageParams) Skip() int {
	return (p.Page - 1) * p.PageSize
}

func (p PageParams) Limit() int {
	return p.PageSize
}

type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

func NewPage[T any](items []T, params PageParams, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:    items,
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
	}
}
