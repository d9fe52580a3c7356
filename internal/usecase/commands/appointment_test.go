//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/user"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointmentRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*appointment.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: make(map[uuid.UUID]*appointment.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, ap *appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[ap.ID()] = ap
	return nil
}

func (r *fakeAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return ap, nil
}

func (r *fakeAppointmentRepo) ListByDate(_ context.Context, date time.Time) ([]*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*appointment.Appointment
	for _, ap := range r.byID {
		if ap.Slot().Date().Equal(date) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, ap *appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[ap.ID()]; !ok {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	r.byID[ap.ID()] = ap
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	delete(r.byID, id)
	return nil
}

// fakeUoW serializes every callback with one mutex, mirroring the exclusive
// per-date lock the real implementation takes.
type fakeUoW struct {
	mu   sync.Mutex
	repo *fakeAppointmentRepo
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, repo commands.AppointmentRepository) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, u.repo)
}

func (u *fakeUoW) WithinDateLock(ctx context.Context, _ time.Time, fn func(ctx context.Context, repo commands.AppointmentRepository) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, u.repo)
}

type commandsFixture struct {
	repo     *fakeAppointmentRepo
	clock    *clock.MockClock
	commands commands.AppointmentCommands
}

func newCommandsFixture(t *testing.T) *commandsFixture {
	t.Helper()
	repo := newFakeAppointmentRepo()
	hours, err := appointment.ParseBusinessHours("09:00", "18:00")
	require.NoError(t, err)
	clk := clock.NewMockClock(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	return &commandsFixture{
		repo:     repo,
		clock:    clk,
		commands: commands.NewAppointmentCommands(&fakeUoW{repo: repo}, catalog.Default(), hours, clk),
	}
}

func validInput() commands.CreateAppointmentInput {
	start, _ := appointment.ParseTimeOfDay("10:00")
	return commands.CreateAppointmentInput{
		ClientName: "Maria Lopez",
		Phone:      "555-0101",
		ServiceID:  "manicure",
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Start:      start,
	}
}

var (
	ownerActor        = user.Actor{ID: uuid.New(), Role: user.RoleOwner}
	receptionistActor = user.Actor{ID: uuid.New(), Role: user.RoleReceptionist}
	employeeActor     = user.Actor{ID: uuid.New(), Role: user.RoleEmployee}
)

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("success snapshots catalog data", func(t *testing.T) {
		f := newCommandsFixture(t)
		view, err := f.commands.Create(ctx, receptionistActor, validInput())
		require.NoError(t, err)

		assert.Equal(t, "Manicure", view.ServiceName)
		assert.Equal(t, 30, view.DurationMin)
		assert.Equal(t, 2500, view.PriceCents)
		assert.Equal(t, "pending", view.Status)
		assert.Equal(t, receptionistActor.ID, view.CreatedBy)
	})

	t.Run("employee cannot create", func(t *testing.T) {
		f := newCommandsFixture(t)
		_, err := f.commands.Create(ctx, employeeActor, validInput())
		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Empty(t, f.repo.byID)
	})

	t.Run("unknown service fails loudly", func(t *testing.T) {
		f := newCommandsFixture(t)
		in := validInput()
		in.ServiceID = "tattoo"
		_, err := f.commands.Create(ctx, ownerActor, in)
		assert.ErrorIs(t, err, errs.ErrServiceNotFound)
	})

	t.Run("past date rejected", func(t *testing.T) {
		f := newCommandsFixture(t)
		in := validInput()
		in.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		_, err := f.commands.Create(ctx, ownerActor, in)
		assert.ErrorIs(t, err, errs.ErrPastDate)
	})

	t.Run("same day booking allowed", func(t *testing.T) {
		f := newCommandsFixture(t)
		in := validInput()
		in.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		_, err := f.commands.Create(ctx, ownerActor, in)
		assert.NoError(t, err)
	})

	t.Run("slot must fit inside business hours", func(t *testing.T) {
		f := newCommandsFixture(t)
		in := validInput()
		in.Start, _ = appointment.ParseTimeOfDay("17:45") // manicure would end 18:15
		_, err := f.commands.Create(ctx, ownerActor, in)
		assert.ErrorIs(t, err, errs.ErrOutsideBusinessHours)
	})

	t.Run("blank client name rejected", func(t *testing.T) {
		f := newCommandsFixture(t)
		in := validInput()
		in.ClientName = "   "
		_, err := f.commands.Create(ctx, ownerActor, in)
		assert.ErrorIs(t, err, errs.ErrClientNameRequired)
	})

	t.Run("overlapping slot conflicts", func(t *testing.T) {
		f := newCommandsFixture(t)
		_, err := f.commands.Create(ctx, ownerActor, validInput())
		require.NoError(t, err)

		in := validInput()
		in.Start, _ = appointment.ParseTimeOfDay("10:15")
		_, err = f.commands.Create(ctx, ownerActor, in)
		assert.ErrorIs(t, err, errs.ErrSlotConflict)
		assert.Len(t, f.repo.byID, 1)
	})

	t.Run("back-to-back slots do not conflict", func(t *testing.T) {
		f := newCommandsFixture(t)
		_, err := f.commands.Create(ctx, ownerActor, validInput())
		require.NoError(t, err)

		in := validInput()
		in.Start, _ = appointment.ParseTimeOfDay("10:30")
		_, err = f.commands.Create(ctx, ownerActor, in)
		assert.NoError(t, err)
	})

	t.Run("cancelled appointment frees its slot", func(t *testing.T) {
		f := newCommandsFixture(t)
		view, err := f.commands.Create(ctx, ownerActor, validInput())
		require.NoError(t, err)

		_, err = f.commands.Cancel(ctx, ownerActor, view.ID)
		require.NoError(t, err)

		_, err = f.commands.Create(ctx, ownerActor, validInput())
		assert.NoError(t, err)
	})
}

func TestCompleteAppointment(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*commandsFixture, uuid.UUID) {
		t.Helper()
		f := newCommandsFixture(t)
		view, err := f.commands.Create(ctx, ownerActor, validInput())
		require.NoError(t, err)
		return f, view.ID
	}

	t.Run("owner and employee may complete", func(t *testing.T) {
		f, id := setup(t)
		view, err := f.commands.Complete(ctx, employeeActor, id)
		require.NoError(t, err)
		assert.Equal(t, "completed", view.Status)
	})

	t.Run("receptionist may not complete", func(t *testing.T) {
		f, id := setup(t)
		_, err := f.commands.Complete(ctx, receptionistActor, id)
		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("unknown id", func(t *testing.T) {
		f, _ := setup(t)
		_, err := f.commands.Complete(ctx, ownerActor, uuid.New())
		assert.ErrorIs(t, err, errs.ErrAppointmentNotFound)
	})

	t.Run("completing twice fails", func(t *testing.T) {
		f, id := setup(t)
		_, err := f.commands.Complete(ctx, ownerActor, id)
		require.NoError(t, err)
		_, err = f.commands.Complete(ctx, ownerActor, id)
		assert.ErrorIs(t, err, errs.ErrAlreadyFinalized)
	})

	t.Run("completing a cancelled appointment fails", func(t *testing.T) {
		f, id := setup(t)
		_, err := f.commands.Cancel(ctx, ownerActor, id)
		require.NoError(t, err)
		_, err = f.commands.Complete(ctx, ownerActor, id)
		assert.ErrorIs(t, err, errs.ErrAlreadyFinalized)
	})
}

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)
	view, err := f.commands.Create(ctx, ownerActor, validInput())
	require.NoError(t, err)

	t.Run("employee may not cancel", func(t *testing.T) {
		_, err := f.commands.Cancel(ctx, employeeActor, view.ID)
		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("receptionist may cancel", func(t *testing.T) {
		cancelled, err := f.commands.Cancel(ctx, receptionistActor, view.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", cancelled.Status)
	})
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("only owner may delete", func(t *testing.T) {
		f := newCommandsFixture(t)
		view, err := f.commands.Create(ctx, ownerActor, validInput())
		require.NoError(t, err)

		assert.ErrorIs(t, f.commands.Delete(ctx, receptionistActor, view.ID), errs.ErrPermissionDenied)
		assert.ErrorIs(t, f.commands.Delete(ctx, employeeActor, view.ID), errs.ErrPermissionDenied)

		require.NoError(t, f.commands.Delete(ctx, ownerActor, view.ID))
		assert.Empty(t, f.repo.byID)
	})

	t.Run("delete removes regardless of status", func(t *testing.T) {
		f := newCommandsFixture(t)
		view, err := f.commands.Create(ctx, ownerActor, validInput())
		require.NoError(t, err)
		_, err = f.commands.Complete(ctx, ownerActor, view.ID)
		require.NoError(t, err)

		assert.NoError(t, f.commands.Delete(ctx, ownerActor, view.ID))
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newCommandsFixture(t)
		assert.ErrorIs(t, f.commands.Delete(ctx, ownerActor, uuid.New()), errs.ErrAppointmentNotFound)
	})
}

// Concurrent creates for the same slot must yield exactly one booking.
func TestCreateAppointment_ConcurrentSameSlot(t *testing.T) {
	ctx := context.Background()
	f := newCommandsFixture(t)

	const attempts = 8
	errCh := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.commands.Create(ctx, ownerActor, validInput())
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	var succeeded, conflicted int
	for err := range errCh {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, errs.ErrSlotConflict)
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)
	assert.Len(t, f.repo.byID, 1)
}
