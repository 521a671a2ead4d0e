package models

import "time"

// Client é quem agenda pela página pública. Não tem login; o telefone
// identifica o cliente dentro da barbearia.
type Client struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_clients_shop_phone,priority:1;not null" json:"barbershop_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;uniqueIndex:idx_clients_shop_phone,priority:2;not null" json:"phone"`
	Email string `gorm:"size:100" json:"email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
