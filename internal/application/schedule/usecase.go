package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

// ConflictError cruce de horario: identifica la cita existente que bloquea.
type ConflictError struct {
	PetName      string
	CustomerName string
	Start        time.Time
	End          time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("el horario se cruza con la cita de %s (%s - %s)",
		e.PetName, e.Start.Format("15:04"), e.End.Format("15:04"))
}

// Unwrap permite errors.Is(err, domain.ErrScheduleConflict).
func (e *ConflictError) Unwrap() error { return domain.ErrScheduleConflict }

// UseCase agenda de citas con control de admisión por cruce de intervalos
// semiabiertos [start, end): se rechaza si alguna cita no cancelada cumple
// existing.start < end && existing.end > start.
//
// La admisión es check-then-insert, no un predicado atómico: dos reservas
// simultáneas del mismo cupo podrían pasar ambas el chequeo. A tasas de
// agendamiento humano se acepta el riesgo.
type UseCase struct {
	apptRepo     repository.AppointmentRepository
	petRepo      repository.PetRepository
	customerRepo repository.CustomerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(apptRepo repository.AppointmentRepository, petRepo repository.PetRepository, customerRepo repository.CustomerRepository) *UseCase {
	return &UseCase{apptRepo: apptRepo, petRepo: petRepo, customerRepo: customerRepo}
}

// BookInput cita solicitada, ya con intervalo resuelto.
type BookInput struct {
	PetID string
	Start time.Time
	End   time.Time
	Notes string
}

// BookInputFromRequest resuelve fecha + hora + duración al intervalo [start, end).
func BookInputFromRequest(in dto.BookAppointmentRequest) (*BookInput, error) {
	if in.PetID == "" || in.DurationMinutes <= 0 {
		return nil, domain.ErrInvalidInput
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, time.Local)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &BookInput{
		PetID: in.PetID,
		Start: start,
		End:   start.Add(time.Duration(in.DurationMinutes) * time.Minute),
		Notes: in.Notes,
	}, nil
}

// Book admite la cita si el intervalo está libre; al rechazar reporta la mascota
// y la ventana de la cita en conflicto. Acepta con estado PENDING.
func (uc *UseCase) Book(ctx context.Context, actorID string, in *BookInput) (*dto.AppointmentResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	if !in.End.After(in.Start) {
		return nil, domain.ErrInvalidInput
	}
	pet, err := uc.petRepo.GetByID(in.PetID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.apptRepo.FindOverlapping(in.Start, in.End)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		conflict := &ConflictError{Start: existing.StartTime, End: existing.EndTime}
		if other, err := uc.petRepo.GetByID(existing.PetID); err == nil && other != nil {
			conflict.PetName = other.Name
			if customer, err := uc.customerRepo.GetByID(other.CustomerID); err == nil && customer != nil {
				conflict.CustomerName = customer.Name
			}
		}
		return nil, conflict
	}

	now := time.Now()
	appt := &entity.Appointment{
		ID:        uuid.New().String(),
		PetID:     in.PetID,
		StartTime: in.Start,
		EndTime:   in.End,
		Status:    entity.AppointmentStatusPending,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.apptRepo.Create(appt); err != nil {
		return nil, err
	}
	return toAppointmentResponse(appt), nil
}

// Confirm pasa PENDING→CONFIRMED.
func (uc *UseCase) Confirm(ctx context.Context, actorID, id string) error {
	return uc.transition(actorID, id, entity.AppointmentStatusConfirmed,
		entity.AppointmentStatusPending)
}

// Complete pasa CONFIRMED→COMPLETED.
func (uc *UseCase) Complete(ctx context.Context, actorID, id string) error {
	return uc.transition(actorID, id, entity.AppointmentStatusCompleted,
		entity.AppointmentStatusConfirmed)
}

// Cancel pasa PENDING/CONFIRMED→CANCELLED y libera el intervalo.
// BILLED y COMPLETED no se cancelan.
func (uc *UseCase) Cancel(ctx context.Context, actorID, id string) error {
	return uc.transition(actorID, id, entity.AppointmentStatusCancelled,
		entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed)
}

func (uc *UseCase) transition(actorID, id, to string, validFrom ...string) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	appt, err := uc.apptRepo.GetByID(id)
	if err != nil {
		return err
	}
	if appt == nil {
		return domain.ErrNotFound
	}
	for _, from := range validFrom {
		if appt.Status == from {
			return uc.apptRepo.UpdateStatus(id, to)
		}
	}
	return domain.ErrConflict
}

// Get obtiene una cita.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	appt, err := uc.apptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, domain.ErrNotFound
	}
	return toAppointmentResponse(appt), nil
}

// ListBetween lista citas en un rango (vista de calendario).
func (uc *UseCase) ListBetween(ctx context.Context, from, to time.Time) ([]dto.AppointmentResponse, error) {
	appts, err := uc.apptRepo.ListBetween(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, *toAppointmentResponse(a))
	}
	return out, nil
}

func toAppointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:        a.ID,
		PetID:     a.PetID,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Status:    a.Status,
		Notes:     a.Notes,
	}
}
