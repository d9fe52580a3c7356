package appointment

import (
	"errors"
	"strings"
	"time"

	"salon-scheduler/internal/domain/catalog"

	"github.com/google/uuid"
)

var (
	ErrClientNameRequired = errors.New("client name is required")
	ErrAlreadyFinalized   = errors.New("appointment is already completed or cancelled")
)

// Appointment is a booked salon slot. Duration and price are snapshots of
// the catalog entry at creation time, never live references.
type Appointment struct {
	id          uuid.UUID
	clientName  string
	phone       string
	email       string
	serviceID   string
	serviceName string
	slot        Slot
	priceCents  int
	status      Status
	createdBy   uuid.UUID
	notes       string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewAppointment(
	svc catalog.Service,
	clientName, phone, email string,
	date time.Time,
	start TimeOfDay,
	notes string,
	createdBy uuid.UUID,
) (*Appointment, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, ErrClientNameRequired
	}

	slot, err := NewSlot(date, start, svc.Duration())
	if err != nil {
		return nil, err
	}

	return &Appointment{
		id:          uuid.New(),
		clientName:  clientName,
		phone:       phone,
		email:       email,
		serviceID:   svc.ID,
		serviceName: svc.Name,
		slot:        slot,
		priceCents:  svc.PriceCents,
		status:      StatusPending,
		createdBy:   createdBy,
		notes:       notes,
	}, nil
}

func ReconstructAppointment(
	id uuid.UUID,
	clientName, phone, email, serviceID, serviceName string,
	slot Slot,
	priceCents int,
	status Status,
	createdBy uuid.UUID,
	notes string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:          id,
		clientName:  clientName,
		phone:       phone,
		email:       email,
		serviceID:   serviceID,
		serviceName: serviceName,
		slot:        slot,
		priceCents:  priceCents,
		status:      status,
		createdBy:   createdBy,
		notes:       notes,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Complete transitions pending → completed. Terminal states reject further
// transitions rather than silently overwriting.
func (a *Appointment) Complete() error {
	if a.status.IsTerminal() {
		return ErrAlreadyFinalized
	}
	a.status = StatusCompleted
	return nil
}

// Cancel transitions pending → cancelled. A cancelled appointment frees its
// slot for new bookings.
func (a *Appointment) Cancel() error {
	if a.status.IsTerminal() {
		return ErrAlreadyFinalized
	}
	a.status = StatusCancelled
	return nil
}

func (a *Appointment) IsPending() bool   { return a.status == StatusPending }
func (a *Appointment) IsCancelled() bool { return a.status == StatusCancelled }

func (a *Appointment) ID() uuid.UUID        { return a.id }
func (a *Appointment) ClientName() string   { return a.clientName }
func (a *Appointment) Phone() string        { return a.phone }
func (a *Appointment) Email() string        { return a.email }
func (a *Appointment) ServiceID() string    { return a.serviceID }
func (a *Appointment) ServiceName() string  { return a.serviceName }
func (a *Appointment) Slot() Slot           { return a.slot }
func (a *Appointment) PriceCents() int      { return a.priceCents }
func (a *Appointment) Status() Status       { return a.status }
func (a *Appointment) CreatedBy() uuid.UUID { return a.createdBy }
func (a *Appointment) Notes() string        { return a.notes }
func (a *Appointment) CreatedAt() time.Time { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time { return a.updatedAt }
