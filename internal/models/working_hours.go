package models

import "time"

// WorkingHours guarda um dia da semana de expediente.
// BarberID nulo = padrão da barbearia.
type WorkingHours struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	BarbershopID uint  `gorm:"index" json:"barbershop_id"`
	BarberID     *uint `gorm:"index" json:"barber_id"`

	Weekday int `json:"weekday"`

	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`
	LunchStart  string `gorm:"size:5" json:"lunch_start"`
	LunchEnd    string `gorm:"size:5" json:"lunch_end"`
	StepMinutes int    `gorm:"default:30" json:"step_minutes"`
	Active      bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
