package entity

import "time"

// Category agrupa productos. Product.Category referencia el Slug (único).
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}
