//go:build unit

package builder

import (
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	ID         uuid.UUID
	ClientName string
	Phone      string
	Email      string
	Service    catalog.Service
	Date       time.Time
	StartHour  int
	StartMin   int
	Status     appointment.Status
	CreatedBy  uuid.UUID
	Notes      string
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		ID:         uuid.New(),
		ClientName: "Maria Lopez",
		Phone:      "555-0101",
		Email:      "maria@example.com",
		Service:    catalog.Service{ID: "manicure", Name: "Manicure", DurationMin: 30, PriceCents: 2500},
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartHour:  10,
		StartMin:   0,
		Status:     appointment.StatusPending,
		CreatedBy:  uuid.New(),
		Notes:      "",
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(b)
	return b
}

func (b *AppointmentBuilder) BuildDomain() (*appointment.Appointment, error) {
	start, err := appointment.NewTimeOfDay(b.StartHour, b.StartMin)
	if err != nil {
		return nil, err
	}
	slot, err := appointment.NewSlot(b.Date, start, b.Service.Duration())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return appointment.ReconstructAppointment(
		b.ID, b.ClientName, b.Phone, b.Email, b.Service.ID, b.Service.Name,
		slot, b.Service.PriceCents, b.Status, b.CreatedBy, b.Notes,
		now, now,
	), nil
}

func (b *AppointmentBuilder) BuildSlot() (appointment.Slot, error) {
	start, err := appointment.NewTimeOfDay(b.StartHour, b.StartMin)
	if err != nil {
		return appointment.Slot{}, err
	}
	return appointment.NewSlot(b.Date, start, b.Service.Duration())
}

func (b *AppointmentBuilder) BuildReadModel() *queries.AppointmentView {
	ap, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return queries.NewAppointmentView(ap)
}
