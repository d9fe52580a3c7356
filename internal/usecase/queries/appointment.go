package queries

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/access"
	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/user"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

type AppointmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	ListAll(ctx context.Context) ([]*appointment.Appointment, error)
	ListByDate(ctx context.Context, date time.Time) ([]*appointment.Appointment, error)
}

// AvailabilityProbe mirrors the booking form's live check: while any of
// service, date or time is still unset, no conflict is reported.
type AvailabilityProbe struct {
	ServiceID string
	Date      string // 2006-01-02, empty while unset
	Time      string // 15:04, empty while unset
}

type AppointmentQueries interface {
	List(ctx context.Context, actor user.Actor, statusFilter string) ([]*AppointmentView, error)
	Get(ctx context.Context, actor user.Actor, id uuid.UUID) (*AppointmentView, error)
	Counts(ctx context.Context, actor user.Actor) (*AppointmentCounts, error)
	CheckAvailability(ctx context.Context, probe AvailabilityProbe) (*AvailabilityView, error)
	ListServices(ctx context.Context) []*ServiceView
}

type appointmentQueriesImpl struct {
	store   AppointmentReadStore
	catalog *catalog.Catalog
}

func NewAppointmentQueries(store AppointmentReadStore, cat *catalog.Catalog) AppointmentQueries {
	return &appointmentQueriesImpl{store: store, catalog: cat}
}

// List returns appointments inside the actor's visible scope, optionally
// narrowed to one status. Scoping applies before the status filter so an
// employee never learns of appointments outside their scope.
func (q *appointmentQueriesImpl) List(ctx context.Context, actor user.Actor, statusFilter string) ([]*AppointmentView, error) {
	all, err := q.store.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	scoped := access.VisibleScope(actor.Role, actor.ID, all)

	views := make([]*AppointmentView, 0, len(scoped))
	for _, ap := range scoped {
		if statusFilter != "" && ap.Status().String() != statusFilter {
			continue
		}
		views = append(views, NewAppointmentView(ap))
	}
	return views, nil
}

func (q *appointmentQueriesImpl) Get(ctx context.Context, actor user.Actor, id uuid.UUID) (*AppointmentView, error) {
	ap, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrAppointmentNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Out-of-scope reads 404 rather than 403 to avoid leaking existence.
	if !access.CanSee(actor.Role, actor.ID, ap) {
		return nil, errs.ErrAppointmentNotFound
	}

	return NewAppointmentView(ap), nil
}

func (q *appointmentQueriesImpl) Counts(ctx context.Context, actor user.Actor) (*AppointmentCounts, error) {
	all, err := q.store.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	counts := &AppointmentCounts{}
	for _, ap := range access.VisibleScope(actor.Role, actor.ID, all) {
		counts.Total++
		switch ap.Status() {
		case appointment.StatusPending:
			counts.Pending++
		case appointment.StatusCompleted:
			counts.Completed++
		case appointment.StatusCancelled:
			counts.Cancelled++
		}
	}
	return counts, nil
}

func (q *appointmentQueriesImpl) CheckAvailability(ctx context.Context, probe AvailabilityProbe) (*AvailabilityView, error) {
	if probe.ServiceID == "" || probe.Date == "" || probe.Time == "" {
		return &AvailabilityView{Available: true}, nil
	}

	svc, err := q.catalog.Resolve(probe.ServiceID)
	if err != nil {
		return nil, errs.ErrServiceNotFound
	}

	date, err := time.Parse(dateLayout, probe.Date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	start, err := appointment.ParseTimeOfDay(probe.Time)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	slot, err := appointment.NewSlot(date, start, svc.Duration())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	existing, err := q.store.ListByDate(ctx, slot.Date())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &AvailabilityView{Available: appointment.Available(slot, existing)}, nil
}

func (q *appointmentQueriesImpl) ListServices(_ context.Context) []*ServiceView {
	services := q.catalog.List()
	views := make([]*ServiceView, len(services))
	for i, svc := range services {
		views[i] = NewServiceView(svc)
	}
	return views
}
