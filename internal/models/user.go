package models

import "time"

const (
	RoleOwner    = "owner"
	RoleEmpleado = "empleado"
	RoleCliente  = "cliente"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'cliente'" json:"role"`

	// Solo para empleados
	Especialidad string `gorm:"size:50" json:"especialidad"`
	Active       bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
