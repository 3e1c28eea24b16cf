package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	Type string `json:"type" validate:"required,oneof=depot point_de_vente"`
	Code string `json:"code" validate:"required,min=1,max=20"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	Active *bool   `json:"active"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
