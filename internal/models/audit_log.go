package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TurnoID   *uint  `json:"turno_id"`
	ActorID   *uint  `json:"actor_id"`
	ActorRole string `gorm:"size:20" json:"actor_role"`

	Action    string `gorm:"size:50;not null" json:"action"`
	OldStatus string `gorm:"size:20" json:"old_status"`
	NewStatus string `gorm:"size:20" json:"new_status"`

	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
