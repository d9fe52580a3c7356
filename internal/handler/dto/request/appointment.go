package request

import (
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/usecase/commands"
)

type CreateAppointmentRequest struct {
	ClientName string `json:"client_name" binding:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	ServiceID  string `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Notes      string `json:"notes"`
}

const dateLayout = "2006-01-02"

func (r *CreateAppointmentRequest) ToInput() (commands.CreateAppointmentInput, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return commands.CreateAppointmentInput{}, err
	}
	start, err := appointment.ParseTimeOfDay(r.Time)
	if err != nil {
		return commands.CreateAppointmentInput{}, err
	}
	return commands.CreateAppointmentInput{
		ClientName: r.ClientName,
		Phone:      r.Phone,
		Email:      r.Email,
		ServiceID:  r.ServiceID,
		Date:       date,
		Start:      start,
		Notes:      r.Notes,
	}, nil
}
