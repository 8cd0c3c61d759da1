package entity

import "time"

// Client representa un cliente del taller.
type Client struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
}
