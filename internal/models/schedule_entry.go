package models

import "time"

// Franja semanal recurrente de un empleado. Weekday usa 0=lunes .. 6=domingo.
type ScheduleEntry struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmpleadoID uint `gorm:"index" json:"empleado_id"`

	Weekday int `json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
