package turno

import (
	"context"

	domain "github.com/SalonTurnosDev/turnos-api/internal/domain/turno"
	"github.com/SalonTurnosDev/turnos-api/internal/models"
)

type ListTurnosForCliente struct {
	repo domain.Repository
}

func NewListTurnosForCliente(repo domain.Repository) *ListTurnosForCliente {
	return &ListTurnosForCliente{repo: repo}
}

func (uc *ListTurnosForCliente) Execute(
	ctx context.Context,
	clienteID uint,
) ([]models.Turno, error) {
	return uc.repo.ListTurnosForCliente(ctx, clienteID)
}
