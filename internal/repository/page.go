package repository

// DefaultPageSize matches the dashboard's page size.
const DefaultPageSize = 10

// Page bounds a list query.
type Page struct {
	Number int // 1-based
	Size   int
}

func (p Page) Limit() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}

func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit()
}
