package entity

import "time"

// StorageLocation representa una ubicación física de almacenamiento (cama, invernadero, patio).
type StorageLocation struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
