package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/application/schedule"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	"github.com/tu-usuario/petshop-pro/internal/infrastructure/memory"
)

const testActorID = "vendedor-1"

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func buildAgenda(t *testing.T) (*memory.Store, *schedule.UseCase, *entity.Pet) {
	t.Helper()
	store := memory.New()
	uc := schedule.NewUseCase(store.Appointments(), store.Pets(), store.Customers())

	customer := &entity.Customer{ID: "cust-1", Name: "Laura Gómez", CreatedAt: time.Now()}
	require.NoError(t, store.Customers().Create(customer))
	pet := &entity.Pet{ID: "pet-1", CustomerID: customer.ID, Name: "Rocky", Species: "perro", CreatedAt: time.Now()}
	require.NoError(t, store.Pets().Create(pet))
	return store, uc, pet
}

// enHora construye un horario de mañana a la hora dada (las citas de los tests
// nunca deben chocar con el reloj real).
func enHora(hora, minuto int) time.Time {
	base := time.Now().AddDate(0, 0, 1)
	return time.Date(base.Year(), base.Month(), base.Day(), hora, minuto, 0, 0, time.Local)
}

func reservar(t *testing.T, uc *schedule.UseCase, petID string, start, end time.Time) (*dto.AppointmentResponse, error) {
	t.Helper()
	return uc.Book(context.Background(), testActorID, &schedule.BookInput{
		PetID: petID,
		Start: start,
		End:   end,
		Notes: "baño y corte",
	})
}

// ─────────────────────────────────────────────
// Admisión por cruce de intervalos
// ─────────────────────────────────────────────

func TestBook_CupoLibre_QuedaPendiente(t *testing.T) {
	_, uc, pet := buildAgenda(t)

	resp, err := reservar(t, uc, pet.ID, enHora(10, 0), enHora(11, 0))
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusPending, resp.Status)
	assert.Equal(t, pet.ID, resp.PetID)
}

func TestBook_Cruce_RechazaYNombraLaCitaExistente(t *testing.T) {
	_, uc, pet := buildAgenda(t)

	_, err := reservar(t, uc, pet.ID, enHora(10, 0), enHora(11, 0))
	require.NoError(t, err)

	_, err = reservar(t, uc, pet.ID, enHora(10, 30), enHora(11, 30))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrScheduleConflict))

	var conflict *schedule.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "Rocky", conflict.PetName)
	assert.Equal(t, "Laura Gómez", conflict.CustomerName)
	assert.True(t, conflict.Start.Equal(enHora(10, 0)))
}

func TestBook_ConsecutivasNoChocan(t *testing.T) {
	_, uc, pet := buildAgenda(t)

	_, err := reservar(t, uc, pet.ID, enHora(10, 0), enHora(11, 0))
	require.NoError(t, err)

	// intervalo semiabierto: terminar a las 11:00 no bloquea empezar a las 11:00
	_, err = reservar(t, uc, pet.ID, enHora(11, 0), enHora(12, 0))
	assert.NoError(t, err)
}

func TestCancel_LiberaElCupo(t *testing.T) {
	_, uc, pet := buildAgenda(t)

	primera, err := reservar(t, uc, pet.ID, enHora(10, 0), enHora(11, 0))
	require.NoError(t, err)
	require.NoError(t, uc.Cancel(context.Background(), testActorID, primera.ID))

	// el mismo horario vuelve a estar disponible
	_, err = reservar(t, uc, pet.ID, enHora(10, 0), enHora(11, 0))
	assert.NoError(t, err)
}

// ─────────────────────────────────────────────
// Transiciones de estado
// ─────────────────────────────────────────────

func TestTransiciones_CicloValido(t *testing.T) {
	_, uc, pet := buildAgenda(t)
	ctx := context.Background()

	resp, err := reservar(t, uc, pet.ID, enHora(10, 0), enHora(11, 0))
	require.NoError(t, err)

	require.NoError(t, uc.Confirm(ctx, testActorID, resp.ID))
	require.NoError(t, uc.Complete(ctx, testActorID, resp.ID))

	got, err := uc.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCompleted, got.Status)
}

func TestTransiciones_SaltosInvalidos(t *testing.T) {
	_, uc, pet := buildAgenda(t)
	ctx := context.Background()

	resp, err := reservar(t, uc, pet.ID, enHora(10, 0), enHora(11, 0))
	require.NoError(t, err)

	// PENDING no puede completarse sin confirmar
	err = uc.Complete(ctx, testActorID, resp.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	// una cita completada ya no se cancela
	require.NoError(t, uc.Confirm(ctx, testActorID, resp.ID))
	require.NoError(t, uc.Complete(ctx, testActorID, resp.ID))
	err = uc.Cancel(ctx, testActorID, resp.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

// ─────────────────────────────────────────────
// Parseo de la solicitud
// ─────────────────────────────────────────────

func TestBookInputFromRequest_ResuelveIntervalo(t *testing.T) {
	in, err := schedule.BookInputFromRequest(dto.BookAppointmentRequest{
		PetID:           "pet-1",
		Date:            "2026-09-15",
		Time:            "10:30",
		DurationMinutes: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, in.End.Sub(in.Start))
	assert.Equal(t, 10, in.Start.Hour())
	assert.Equal(t, 30, in.Start.Minute())
}

func TestBookInputFromRequest_Invalidos(t *testing.T) {
	_, err := schedule.BookInputFromRequest(dto.BookAppointmentRequest{
		PetID: "pet-1", Date: "15/09/2026", Time: "10:30", DurationMinutes: 45,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "fecha mal formada")

	_, err = schedule.BookInputFromRequest(dto.BookAppointmentRequest{
		PetID: "pet-1", Date: "2026-09-15", Time: "10:30", DurationMinutes: 0,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "duración no positiva")
}

func TestBook_MascotaInexistente(t *testing.T) {
	_, uc, _ := buildAgenda(t)
	_, err := reservar(t, uc, "no-existe", enHora(10, 0), enHora(11, 0))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
