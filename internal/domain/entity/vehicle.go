package entity

import "time"

// Vehicle representa un vehículo; pertenece a un único cliente a la vez (reasignable).
type Vehicle struct {
	ID        int64
	ClientID  int64
	Brand     string
	Model     string
	Plate     string // placa, única
	Year      int
	CreatedAt time.Time
}
