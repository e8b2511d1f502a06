package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*appointmentRepo)(nil)

type appointmentRepo struct{ s *Store }

func (r *appointmentRepo) Create(a *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	r.s.appointments[a.ID] = *a
	return nil
}

func (r *appointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *appointmentRepo) FindOverlapping(start, end time.Time) (*entity.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var found *entity.Appointment
	for _, a := range r.s.appointments {
		if !a.Occupies() || !a.Overlaps(start, end) {
			continue
		}
		a := a
		if found == nil || a.StartTime.Before(found.StartTime) {
			found = &a
		}
	}
	return found, nil
}

func (r *appointmentRepo) UpdateStatus(id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return fmt.Errorf("update appointment status: cita %s no existe", id)
	}
	a.Status = status
	r.s.appointments[id] = a
	return nil
}

func (r *appointmentRepo) ListBetween(from, to time.Time) ([]*entity.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Appointment
	for _, a := range r.s.appointments {
		if !a.StartTime.Before(from) && a.StartTime.Before(to) {
			a := a
			list = append(list, &a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartTime.Before(list[j].StartTime) })
	return list, nil
}

func (r *appointmentRepo) ListByPet(petID string) ([]*entity.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Appointment
	for _, a := range r.s.appointments {
		if a.PetID == petID {
			a := a
			list = append(list, &a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartTime.After(list[j].StartTime) })
	return list, nil
}
