package dto

import "github.com/night-assist/assist-service/internal/repository"

// PageMeta is the pagination envelope shared by list responses.
type PageMeta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// NewPageMeta derives the envelope. Without pagination the whole result
// counts as a single page.
func NewPageMeta(page repository.PageRequest, total int64, count int) PageMeta {
	if !page.Enabled() {
		return PageMeta{
			CurrentPage:  1,
			TotalItems:   int64(count),
			TotalPages:   1,
			ItemsPerPage: count,
		}
	}
	return PageMeta{
		CurrentPage:  page.Page,
		TotalItems:   total,
		TotalPages:   repository.TotalPages(total, page.Limit),
		ItemsPerPage: page.Limit,
	}
}
