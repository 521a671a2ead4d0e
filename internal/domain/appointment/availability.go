package appointment

import "time"

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint // 0 = todos os barbeiros ativos
	Date         time.Time
}

type BarberSlots struct {
	BarberID uint     `json:"barber_id"`
	Name     string   `json:"name"`
	Slots    []string `json:"slots"`
}

type Availability struct {
	Date    string        `json:"date"`
	Barbers []BarberSlots `json:"barbers"`
	Merged  []string      `json:"merged"`
}

type SlotCheckInput struct {
	BarbershopID uint
	BarberID     uint
	Date         string
	Time         string
}
