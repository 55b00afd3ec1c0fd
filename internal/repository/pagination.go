package repository

// PageRequest carries optional page/limit query values. A request with
// either value unset disables pagination and returns the full set.
type PageRequest struct {
	Page  int
	Limit int
}

// Enabled reports whether both page and limit are positive.
func (p PageRequest) Enabled() bool {
	return p.Page > 0 && p.Limit > 0
}

// Offset computes the row offset for the requested page.
func (p PageRequest) Offset() int {
	if !p.Enabled() {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages computes ceil(total/limit); an empty set has zero pages.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
