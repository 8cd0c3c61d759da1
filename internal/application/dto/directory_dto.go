package dto

import "time"

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateVehicleRequest body para POST /api/vehicles.
type CreateVehicleRequest struct {
	ClientID int64  `json:"client_id" validate:"required,gt=0"`
	Brand    string `json:"brand,omitempty" validate:"omitempty,max=100"`
	Model    string `json:"model" validate:"required,max=100"`
	Plate    string `json:"plate" validate:"required,max=20"`
	Year     int    `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
}

// ReassignVehicleRequest body para PUT /api/vehicles/:id/owner.
type ReassignVehicleRequest struct {
	ClientID int64 `json:"client_id" validate:"required,gt=0"`
}

// VehicleResponse vehículo en respuestas.
type VehicleResponse struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	Brand     string    `json:"brand,omitempty"`
	Model     string    `json:"model"`
	Plate     string    `json:"plate"`
	Year      int       `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PhoneResponse respuesta de GET /api/clients/phone?name=.
type PhoneResponse struct {
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}
