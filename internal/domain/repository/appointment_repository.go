package repository

import (
	"time"

	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
)

// AppointmentRepository puerto de persistencia para citas.
// FindOverlapping devuelve la primera cita no cancelada cuyo intervalo se cruza
// con [start, end), o nil si el horario está libre.
type AppointmentRepository interface {
	Create(a *entity.Appointment) error
	GetByID(id string) (*entity.Appointment, error)
	FindOverlapping(start, end time.Time) (*entity.Appointment, error)
	UpdateStatus(id, status string) error
	ListBetween(from, to time.Time) ([]*entity.Appointment, error)
	ListByPet(petID string) ([]*entity.Appointment, error)
}
