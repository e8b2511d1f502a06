package entity

import "time"

// Estados de cita. Ciclo: PENDING→CONFIRMED→COMPLETED→BILLED (terminal);
// PENDING/CONFIRMED→CANCELLED (terminal). Solo las no canceladas ocupan calendario.
const (
	AppointmentStatusPending   = "PENDING"
	AppointmentStatusConfirmed = "CONFIRMED"
	AppointmentStatusCompleted = "COMPLETED"
	AppointmentStatusBilled    = "BILLED"
	AppointmentStatusCancelled = "CANCELLED"
)

// Appointment cita de peluquería/estética para una mascota.
// El intervalo es semiabierto: [StartTime, EndTime).
type Appointment struct {
	ID        string
	PetID     string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps indica si el intervalo [start, end) se cruza con el de la cita.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime.After(start)
}

// Occupies indica si la cita ocupa calendario (toda la no cancelada lo hace).
func (a *Appointment) Occupies() bool {
	return a.Status != AppointmentStatusCancelled
}
