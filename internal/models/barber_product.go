package models

import "time"

// BarberProduct é um serviço do catálogo. DurationMin define quanto
// tempo o agendamento ocupa na agenda do barbeiro.
type BarberProduct struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index:idx_products_shop_active,priority:1;not null" json:"barbershop_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Category    string  `gorm:"size:50" json:"category"`
	DurationMin int     `gorm:"not null;default:30" json:"duration_min"`
	Price       float64 `gorm:"type:numeric(10,2)" json:"price"`
	Active      bool    `gorm:"index:idx_products_shop_active,priority:2;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
