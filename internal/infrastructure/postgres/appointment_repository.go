package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL (usable con pool o tx).
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador de citas. Pasar pool o tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

// Create persiste una cita.
func (r *AppointmentRepo) Create(a *entity.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO appointments (id, pet_id, start_time, end_time, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.PetID, a.StartTime, a.EndTime, a.Status, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// GetByID obtiene una cita por ID. Devuelve nil, nil si no existe.
func (r *AppointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	query := `
		SELECT id, pet_id, start_time, end_time, status, notes, created_at, updated_at
		FROM appointments WHERE id = $1`
	var a entity.Appointment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.PetID, &a.StartTime, &a.EndTime, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

// FindOverlapping devuelve la primera cita no cancelada cuyo intervalo se cruza
// con [start, end). El cruce de intervalos semiabiertos es start_time < end AND
// end_time > start: citas espalda con espalda no chocan.
func (r *AppointmentRepo) FindOverlapping(start, end time.Time) (*entity.Appointment, error) {
	query := `
		SELECT id, pet_id, start_time, end_time, status, notes, created_at, updated_at
		FROM appointments
		WHERE status != $1 AND start_time < $2 AND end_time > $3
		ORDER BY start_time LIMIT 1`
	var a entity.Appointment
	err := r.q.QueryRow(context.Background(), query, entity.AppointmentStatusCancelled, end, start).Scan(
		&a.ID, &a.PetID, &a.StartTime, &a.EndTime, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find overlapping appointment: %w", err)
	}
	return &a, nil
}

// UpdateStatus cambia el estado de una cita.
func (r *AppointmentRepo) UpdateStatus(id, status string) error {
	query := `UPDATE appointments SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update appointment status: cita %s no existe", id)
	}
	return nil
}

// ListBetween lista las citas cuyo inicio cae en [from, to), ordenadas por inicio.
func (r *AppointmentRepo) ListBetween(from, to time.Time) ([]*entity.Appointment, error) {
	query := `
		SELECT id, pet_id, start_time, end_time, status, notes, created_at, updated_at
		FROM appointments WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// ListByPet lista el historial de citas de una mascota, más recientes primero.
func (r *AppointmentRepo) ListByPet(petID string) ([]*entity.Appointment, error) {
	query := `
		SELECT id, pet_id, start_time, end_time, status, notes, created_at, updated_at
		FROM appointments WHERE pet_id = $1 ORDER BY start_time DESC`
	rows, err := r.q.Query(context.Background(), query, petID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by pet: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]*entity.Appointment, error) {
	var list []*entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		if err := rows.Scan(&a.ID, &a.PetID, &a.StartTime, &a.EndTime, &a.Status,
			&a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
