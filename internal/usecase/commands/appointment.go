package commands

import (
	"context"
	"errors"
	"time"

	"salon-scheduler/internal/domain/access"
	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/user"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, ap *appointment.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	ListByDate(ctx context.Context, date time.Time) ([]*appointment.Appointment, error)
	UpdateStatus(ctx context.Context, ap *appointment.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitOfWork serializes mutations of the appointment table. WithinDateLock
// additionally holds an exclusive per-date lock so an availability check and
// the insert it guards are atomic: two callers racing for the same slot
// cannot both pass the check.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, repo AppointmentRepository) error) error
	WithinDateLock(ctx context.Context, date time.Time, fn func(ctx context.Context, repo AppointmentRepository) error) error
}

type CreateAppointmentInput struct {
	ClientName string
	Phone      string
	Email      string
	ServiceID  string
	Date       time.Time
	Start      appointment.TimeOfDay
	Notes      string
}

type AppointmentCommands interface {
	Create(ctx context.Context, actor user.Actor, in CreateAppointmentInput) (*queries.AppointmentView, error)
	Complete(ctx context.Context, actor user.Actor, id uuid.UUID) (*queries.AppointmentView, error)
	Cancel(ctx context.Context, actor user.Actor, id uuid.UUID) (*queries.AppointmentView, error)
	Delete(ctx context.Context, actor user.Actor, id uuid.UUID) error
}

type appointmentCommandsImpl struct {
	uow     UnitOfWork
	catalog *catalog.Catalog
	hours   appointment.BusinessHours
	clock   clock.Clock
}

func NewAppointmentCommands(
	uow UnitOfWork,
	cat *catalog.Catalog,
	hours appointment.BusinessHours,
	clk clock.Clock,
) AppointmentCommands {
	return &appointmentCommandsImpl{
		uow:     uow,
		catalog: cat,
		hours:   hours,
		clock:   clk,
	}
}

func (c *appointmentCommandsImpl) Create(
	ctx context.Context,
	actor user.Actor,
	in CreateAppointmentInput,
) (*queries.AppointmentView, error) {
	if !access.Can(actor.Role, access.ActionCreate) {
		return nil, errs.ErrPermissionDenied
	}

	svc, err := c.catalog.Resolve(in.ServiceID)
	if err != nil {
		return nil, errs.ErrServiceNotFound
	}

	if err := appointment.ValidateDate(in.Date, clock.Today(c.clock)); err != nil {
		return nil, errs.Mark(err, errs.ErrPastDate)
	}

	ap, err := appointment.NewAppointment(
		svc,
		in.ClientName, in.Phone, in.Email,
		in.Date, in.Start,
		in.Notes,
		actor.ID,
	)
	if err != nil {
		return nil, markDomainErr(err)
	}

	if err := c.hours.Allows(ap.Slot()); err != nil {
		return nil, errs.Mark(err, errs.ErrOutsideBusinessHours)
	}

	err = c.uow.WithinDateLock(ctx, ap.Slot().Date(), func(ctx context.Context, repo AppointmentRepository) error {
		existing, err := repo.ListByDate(ctx, ap.Slot().Date())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if conflict := appointment.FindConflict(ap.Slot(), existing); conflict != nil {
			return errs.ErrSlotConflict
		}
		if err := repo.Create(ctx, ap); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return queries.NewAppointmentView(ap), nil
}

func (c *appointmentCommandsImpl) Complete(ctx context.Context, actor user.Actor, id uuid.UUID) (*queries.AppointmentView, error) {
	return c.transition(ctx, actor, id, access.ActionComplete, (*appointment.Appointment).Complete)
}

func (c *appointmentCommandsImpl) Cancel(ctx context.Context, actor user.Actor, id uuid.UUID) (*queries.AppointmentView, error) {
	return c.transition(ctx, actor, id, access.ActionCancel, (*appointment.Appointment).Cancel)
}

func (c *appointmentCommandsImpl) transition(
	ctx context.Context,
	actor user.Actor,
	id uuid.UUID,
	action access.Action,
	apply func(*appointment.Appointment) error,
) (*queries.AppointmentView, error) {
	if !access.Can(actor.Role, action) {
		return nil, errs.ErrPermissionDenied
	}

	var view *queries.AppointmentView
	err := c.uow.Within(ctx, func(ctx context.Context, repo AppointmentRepository) error {
		ap, err := repo.FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrAppointmentNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := apply(ap); err != nil {
			return errs.Mark(err, errs.ErrAlreadyFinalized)
		}

		if err := repo.UpdateStatus(ctx, ap); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		view = queries.NewAppointmentView(ap)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Delete removes the record outright regardless of lifecycle state; it is
// not a transition.
func (c *appointmentCommandsImpl) Delete(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	if !access.Can(actor.Role, access.ActionDelete) {
		return errs.ErrPermissionDenied
	}

	return c.uow.Within(ctx, func(ctx context.Context, repo AppointmentRepository) error {
		if _, err := repo.FindByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrAppointmentNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func markDomainErr(err error) error {
	if errors.Is(err, appointment.ErrClientNameRequired) {
		return errs.Mark(err, errs.ErrClientNameRequired)
	}
	return errs.Mark(err, errs.ErrValidation)
}
