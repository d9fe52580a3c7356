//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/user"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReadStore struct {
	appointments []*appointment.Appointment
}

func (s *fakeReadStore) FindByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	for _, ap := range s.appointments {
		if ap.ID() == id {
			return ap, nil
		}
	}
	return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
}

func (s *fakeReadStore) ListAll(_ context.Context) ([]*appointment.Appointment, error) {
	return s.appointments, nil
}

func (s *fakeReadStore) ListByDate(_ context.Context, date time.Time) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for _, ap := range s.appointments {
		if ap.Slot().Date().Equal(date) {
			out = append(out, ap)
		}
	}
	return out, nil
}

var queryDay = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func buildStored(t *testing.T, hhmm string, status appointment.Status, createdBy uuid.UUID) *appointment.Appointment {
	t.Helper()
	svc := catalog.Service{ID: "manicure", Name: "Manicure", DurationMin: 30, PriceCents: 2500}
	start, err := appointment.ParseTimeOfDay(hhmm)
	require.NoError(t, err)
	slot, err := appointment.NewSlot(queryDay, start, svc.Duration())
	require.NoError(t, err)
	now := time.Now()
	return appointment.ReconstructAppointment(
		uuid.New(), "Client", "", "", svc.ID, svc.Name,
		slot, svc.PriceCents, status, createdBy, "", now, now,
	)
}

func TestList_ScopingAndStatusFilter(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	colleagueID := uuid.New()

	store := &fakeReadStore{appointments: []*appointment.Appointment{
		buildStored(t, "09:00", appointment.StatusPending, colleagueID),
		buildStored(t, "10:00", appointment.StatusCompleted, employeeID),
		buildStored(t, "11:00", appointment.StatusCompleted, colleagueID),
		buildStored(t, "12:00", appointment.StatusCancelled, colleagueID),
	}}
	q := queries.NewAppointmentQueries(store, catalog.Default())

	t.Run("owner sees everything", func(t *testing.T) {
		views, err := q.List(ctx, user.Actor{ID: uuid.New(), Role: user.RoleOwner}, "")
		require.NoError(t, err)
		assert.Len(t, views, 4)
	})

	t.Run("employee sees pending plus own", func(t *testing.T) {
		views, err := q.List(ctx, user.Actor{ID: employeeID, Role: user.RoleEmployee}, "")
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("status filter applies after scoping", func(t *testing.T) {
		views, err := q.List(ctx, user.Actor{ID: employeeID, Role: user.RoleEmployee}, "completed")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, employeeID, views[0].CreatedBy)
	})

	t.Run("filter by cancelled for owner", func(t *testing.T) {
		views, err := q.List(ctx, user.Actor{ID: uuid.New(), Role: user.RoleOwner}, "cancelled")
		require.NoError(t, err)
		assert.Len(t, views, 1)
	})
}

func TestGet_ScopeHidesExistence(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	foreignCompleted := buildStored(t, "10:00", appointment.StatusCompleted, uuid.New())

	store := &fakeReadStore{appointments: []*appointment.Appointment{foreignCompleted}}
	q := queries.NewAppointmentQueries(store, catalog.Default())

	t.Run("owner reads any appointment", func(t *testing.T) {
		view, err := q.Get(ctx, user.Actor{ID: uuid.New(), Role: user.RoleOwner}, foreignCompleted.ID())
		require.NoError(t, err)
		assert.Equal(t, foreignCompleted.ID(), view.ID)
	})

	t.Run("out of scope reads as not found", func(t *testing.T) {
		_, err := q.Get(ctx, user.Actor{ID: employeeID, Role: user.RoleEmployee}, foreignCompleted.ID())
		assert.ErrorIs(t, err, errs.ErrAppointmentNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := q.Get(ctx, user.Actor{ID: uuid.New(), Role: user.RoleOwner}, uuid.New())
		assert.ErrorIs(t, err, errs.ErrAppointmentNotFound)
	})
}

func TestCounts_ComputedOverVisibleScope(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	colleagueID := uuid.New()

	store := &fakeReadStore{appointments: []*appointment.Appointment{
		buildStored(t, "09:00", appointment.StatusPending, colleagueID),
		buildStored(t, "10:00", appointment.StatusCompleted, employeeID),
		buildStored(t, "11:00", appointment.StatusCompleted, colleagueID),
		buildStored(t, "12:00", appointment.StatusCancelled, employeeID),
	}}
	q := queries.NewAppointmentQueries(store, catalog.Default())

	t.Run("owner counts the global set", func(t *testing.T) {
		counts, err := q.Counts(ctx, user.Actor{ID: uuid.New(), Role: user.RoleOwner})
		require.NoError(t, err)
		assert.Equal(t, &queries.AppointmentCounts{Total: 4, Pending: 1, Completed: 2, Cancelled: 1}, counts)
	})

	t.Run("employee counts only the scoped set", func(t *testing.T) {
		counts, err := q.Counts(ctx, user.Actor{ID: employeeID, Role: user.RoleEmployee})
		require.NoError(t, err)
		assert.Equal(t, &queries.AppointmentCounts{Total: 3, Pending: 1, Completed: 1, Cancelled: 1}, counts)
	})
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	store := &fakeReadStore{appointments: []*appointment.Appointment{
		buildStored(t, "10:00", appointment.StatusPending, uuid.New()),
	}}
	q := queries.NewAppointmentQueries(store, catalog.Default())

	t.Run("incomplete probe reports available", func(t *testing.T) {
		for _, probe := range []queries.AvailabilityProbe{
			{},
			{ServiceID: "manicure"},
			{ServiceID: "manicure", Date: "2026-09-15"},
			{Date: "2026-09-15", Time: "10:00"},
		} {
			view, err := q.CheckAvailability(ctx, probe)
			require.NoError(t, err)
			assert.True(t, view.Available)
		}
	})

	t.Run("occupied slot reports unavailable", func(t *testing.T) {
		view, err := q.CheckAvailability(ctx, queries.AvailabilityProbe{
			ServiceID: "manicure", Date: "2026-09-15", Time: "10:15",
		})
		require.NoError(t, err)
		assert.False(t, view.Available)
	})

	t.Run("back-to-back slot reports available", func(t *testing.T) {
		view, err := q.CheckAvailability(ctx, queries.AvailabilityProbe{
			ServiceID: "manicure", Date: "2026-09-15", Time: "10:30",
		})
		require.NoError(t, err)
		assert.True(t, view.Available)
	})

	t.Run("unknown service fails", func(t *testing.T) {
		_, err := q.CheckAvailability(ctx, queries.AvailabilityProbe{
			ServiceID: "tattoo", Date: "2026-09-15", Time: "10:00",
		})
		assert.ErrorIs(t, err, errs.ErrServiceNotFound)
	})

	t.Run("malformed date fails", func(t *testing.T) {
		_, err := q.CheckAvailability(ctx, queries.AvailabilityProbe{
			ServiceID: "manicure", Date: "15/09/2026", Time: "10:00",
		})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestListServices(t *testing.T) {
	q := queries.NewAppointmentQueries(&fakeReadStore{}, catalog.Default())
	views := q.ListServices(context.Background())
	require.Len(t, views, 6)
	assert.Equal(t, "manicure", views[0].ID)
	assert.Equal(t, 2500, views[0].PriceCents)
}
