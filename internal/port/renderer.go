package port

import "payroll/internal/domain"

// SheetRenderer turns a sheet description into a downloadable document.
type SheetRenderer interface {
	Render(sheet *domain.Sheet) ([]byte, error)
	ContentType() string
	Extension() string
}
