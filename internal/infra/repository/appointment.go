package repository

import (
	"context"
	"errors"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx so the same repository
// code serves pooled reads and transactional writes.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const pgErrCodeUniqueViolation = "23505"

type AppointmentRepository struct {
	db DBTX
}

func NewAppointmentRepository(db DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const appointmentColumns = `id, client_name, phone, email, service_id, service_name,
	date, start_min, duration_min, price_cents, status, created_by, notes,
	created_at, updated_at`

func (r *AppointmentRepository) Create(ctx context.Context, ap *appointment.Appointment) error {
	slot := ap.Slot()
	_, err := r.db.Exec(ctx,
		`INSERT INTO appointments
		   (id, client_name, phone, email, service_id, service_name,
		    date, start_min, duration_min, price_cents, status, created_by, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		ap.ID(), ap.ClientName(), ap.Phone(), ap.Email(), ap.ServiceID(), ap.ServiceName(),
		slot.Date(), slot.Start().Minutes(), int(slot.Duration()/time.Minute),
		ap.PriceCents(), ap.Status().String(), ap.CreatedBy(), ap.Notes(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)

	ap, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by ID", err)
	}
	return ap, nil
}

func (r *AppointmentRepository) ListAll(ctx context.Context) ([]*appointment.Appointment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+appointmentColumns+` FROM appointments ORDER BY date, start_min`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentRepository) ListByDate(ctx context.Context, date time.Time) ([]*appointment.Appointment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE date = $1 ORDER BY start_min`, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments by date", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, ap *appointment.Appointment) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE appointments SET status = $2, updated_at = now() WHERE id = $1`,
		ap.ID(), ap.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

func collectAppointments(rows pgx.Rows) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for rows.Next() {
		ap, err := scanAppointment(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment row", err)
		}
		out = append(out, ap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointment rows", err)
	}
	return out, nil
}

func scanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var (
		id                   uuid.UUID
		clientName           string
		phone, email         string
		serviceID, svcName   string
		date                 time.Time
		startMin, durMin     int
		priceCents           int
		status               string
		createdBy            uuid.UUID
		notes                string
		createdAt, updatedAt time.Time
	)

	err := row.Scan(
		&id, &clientName, &phone, &email, &serviceID, &svcName,
		&date, &startMin, &durMin, &priceCents, &status, &createdBy, &notes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	start, err := appointment.TimeOfDayFromMinutes(startMin)
	if err != nil {
		return nil, err
	}
	slot, err := appointment.NewSlot(date, start, time.Duration(durMin)*time.Minute)
	if err != nil {
		return nil, err
	}

	return appointment.ReconstructAppointment(
		id, clientName, phone, email, serviceID, svcName,
		slot, priceCents, appointment.Status(status), createdBy, notes,
		createdAt, updatedAt,
	), nil
}
