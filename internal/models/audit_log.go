package models

import "time"

// AuditLog registra quem mexeu em agenda, horários e equipe.
// UserID nulo = ação pública (cliente sem login).
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint   `gorm:"index:idx_audit_shop_created,priority:1;not null" json:"barbershop_id"`
	UserID       *uint  `json:"user_id"`
	Action       string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_audit_shop_created,priority:2,sort:desc" json:"created_at"`
}
