package models

import "time"

type Turno struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClienteID uint `gorm:"index" json:"cliente_id"`
	Cliente   User `gorm:"foreignKey:ClienteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"cliente"`

	EmpleadoID uint `gorm:"index" json:"empleado_id"`
	Empleado   User `gorm:"foreignKey:EmpleadoID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"empleado"`

	ServicioID uint     `json:"servicio_id"`
	Servicio   Servicio `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"servicio"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Snapshot del servicio al momento de reservar
	DurationMin int     `json:"duration_min"`
	PrecioFinal float64 `json:"precio_final"`

	Status string `gorm:"size:20;default:'pendiente'" json:"status"`

	// Estado previo a la última transición, para la política externa de
	// crédito por cancelación.
	StatusAnterior string `gorm:"size:20" json:"status_anterior"`

	NotasCliente  string `gorm:"size:255" json:"notas_cliente"`
	NotasEmpleado string `gorm:"size:255" json:"notas_empleado"`

	ConfirmadoAt *time.Time `json:"confirmado_at"`
	CanceladoAt  *time.Time `json:"cancelado_at"`
	CompletadoAt *time.Time `json:"completado_at"`
	NoAsistioAt  *time.Time `json:"no_asistio_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
