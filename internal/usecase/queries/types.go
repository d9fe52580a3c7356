package queries

import (
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/user"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type AppointmentView struct {
	ID          uuid.UUID `json:"id"`
	ClientName  string    `json:"client_name"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	ServiceID   string    `json:"service_id"`
	ServiceName string    `json:"service_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	DurationMin int       `json:"duration_min"`
	PriceCents  int       `json:"price_cents"`
	Status      string    `json:"status"`
	CreatedBy   uuid.UUID `json:"created_by"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AppointmentCounts are aggregate figures over the caller's visible scope,
// never the global set.
type AppointmentCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type AvailabilityView struct {
	Available bool `json:"available"`
}

type ServiceView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DurationMin int    `json:"duration_min"`
	PriceCents  int    `json:"price_cents"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
}

const dateLayout = "2006-01-02"

func NewAppointmentView(ap *appointment.Appointment) *AppointmentView {
	slot := ap.Slot()
	return &AppointmentView{
		ID:          ap.ID(),
		ClientName:  ap.ClientName(),
		Phone:       ap.Phone(),
		Email:       ap.Email(),
		ServiceID:   ap.ServiceID(),
		ServiceName: ap.ServiceName(),
		Date:        slot.Date().Format(dateLayout),
		Time:        slot.Start().String(),
		DurationMin: int(slot.Duration() / time.Minute),
		PriceCents:  ap.PriceCents(),
		Status:      ap.Status().String(),
		CreatedBy:   ap.CreatedBy(),
		Notes:       ap.Notes(),
		CreatedAt:   ap.CreatedAt(),
		UpdatedAt:   ap.UpdatedAt(),
	}
}

func NewServiceView(svc catalog.Service) *ServiceView {
	return &ServiceView{
		ID:          svc.ID,
		Name:        svc.Name,
		DurationMin: svc.DurationMin,
		PriceCents:  svc.PriceCents,
	}
}

func NewAuthorizedUserView(u *user.User) *AuthorizedUserView {
	return &AuthorizedUserView{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
	}
}
