package dto

import "time"

// BookAppointmentRequest solicitud de cita: mascota, fecha, hora y duración.
type BookAppointmentRequest struct {
	PetID           string `json:"pet_id"`
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time"` // HH:MM
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes,omitempty"`
}

// AppointmentResponse cita agendada.
type AppointmentResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
}

// ScheduleConflictResponse detalle del cruce de horario al rechazar una cita.
type ScheduleConflictResponse struct {
	Code         string    `json:"code"`
	Message      string    `json:"message"`
	PetName      string    `json:"pet_name"`
	CustomerName string    `json:"customer_name,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
}
